package project

import (
	"context"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectFilter defines filtering options for project queries
type ProjectFilter struct {
	shared.Filter
	ClientID        *uuid.UUID
	Status          *ProjectStatus
	IncludeArchived bool
}

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// FindByIDForUser finds a project by ID scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Project, error)

	// FindAllForUser finds projects for a user with filtering
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter ProjectFilter) ([]Project, error)

	// CountForUser counts projects for a user with filtering
	CountForUser(ctx context.Context, userID uuid.UUID, filter ProjectFilter) (int64, error)

	// Save creates or updates a project
	Save(ctx context.Context, p *Project) error

	// DeleteForUser hard-deletes a project scoped to its owner. The
	// paid-invoice guard belongs to the caller's transaction.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
