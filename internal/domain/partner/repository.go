package partner

import (
	"context"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientFilter defines filtering options for client queries
type ClientFilter struct {
	shared.Filter
	IncludeArchived bool
}

// ClientRepository persists clients
type ClientRepository interface {
	// FindByIDForUser retrieves a client owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Client, error)

	// FindAllForUser lists clients matching the filter
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter ClientFilter) ([]*Client, error)

	// CountForUser counts clients matching the filter
	CountForUser(ctx context.Context, userID uuid.UUID, filter ClientFilter) (int64, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// HasProjects reports whether any project references the client
	HasProjects(ctx context.Context, userID, clientID uuid.UUID) (bool, error)

	// DeleteForUser removes a client. Callers must reject deletion while
	// projects still reference it.
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
