package identity

import (
	"context"
	"errors"
	"time"

	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TokenIssuer mints access tokens for authenticated users.
// The JWT implementation lives in infrastructure/auth.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (token string, expiresAt time.Time, err error)
}

// AuthService handles signup, login and the authenticated profile
type AuthService struct {
	userRepo     identity.UserRepository
	settingsRepo identity.SettingsRepository
	tokens       TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	settingsRepo identity.SettingsRepository,
	tokens TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
	}
}

// Signup registers a new account and seeds its default settings
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewConflictError("An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Name, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	// Settings are created lazily elsewhere too; seeding here just saves
	// the first billing call a round trip
	if err := s.settingsRepo.Save(ctx, identity.DefaultSettings(user.ID)); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) issue(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, "NOT_FOUND")
}
