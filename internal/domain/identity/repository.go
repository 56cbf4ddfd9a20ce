package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists user accounts
type UserRepository interface {
	// FindByEmail looks up a user by normalized email.
	// Returns shared.ErrNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}

// SettingsRepository persists per-user billing settings
type SettingsRepository interface {
	// FindByUser retrieves the settings row for a user.
	// Returns shared.ErrNotFound when none exists yet; callers create
	// defaults lazily.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Settings, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, settings *Settings) error

	// AllocateNextNumber atomically returns the current counter value and
	// advances it by one. Concurrent generations for the same user must
	// never observe the same number.
	AllocateNextNumber(ctx context.Context, userID uuid.UUID) (int, error)
}
