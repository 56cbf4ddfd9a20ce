package identity

import (
	"time"

	"github.com/fcc/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SignupRequest represents a new account registration
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Name     string `json:"name" binding:"max=200"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a credential check
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CompanyName string     `json:"company_name,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthResponse carries the issued token alongside the user
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UpdateSettingsRequest is a whitelisted partial settings update
type UpdateSettingsRequest struct {
	Currency      *string          `json:"currency" binding:"omitempty,len=3"`
	TaxRate       *decimal.Decimal `json:"tax_rate"`
	Rounding      *string          `json:"rounding" binding:"omitempty,oneof=NONE NEAREST_5 NEAREST_15"`
	Terms         *string          `json:"terms" binding:"omitempty,oneof=NET_7 NET_15 NET_30 DUE_ON_RECEIPT"`
	InvoicePrefix *string          `json:"invoice_prefix" binding:"omitempty,max=20"`
	NextNumber    *int             `json:"next_number" binding:"omitempty,min=1"`
	InvoiceNotes  *string          `json:"invoice_notes" binding:"omitempty,max=2000"`
}

// SettingsResponse represents user settings in API responses
type SettingsResponse struct {
	Currency      string          `json:"currency"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Rounding      string          `json:"rounding"`
	Terms         string          `json:"terms"`
	InvoicePrefix string          `json:"invoice_prefix"`
	NextNumber    int             `json:"next_number"`
	InvoiceNotes  string          `json:"invoice_notes,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToUserResponse converts a domain user to its API shape
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		CompanyName: u.CompanyName,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToSettingsResponse converts domain settings to their API shape
func ToSettingsResponse(s *identity.Settings) SettingsResponse {
	return SettingsResponse{
		Currency:      s.Currency.String(),
		TaxRate:       s.TaxRate,
		Rounding:      s.Rounding.String(),
		Terms:         s.Terms.String(),
		InvoicePrefix: s.InvoicePrefix,
		NextNumber:    s.NextNumber,
		InvoiceNotes:  s.InvoiceNotes,
		UpdatedAt:     s.UpdatedAt,
	}
}
