package partner

import (
	"github.com/fcc/backend/internal/domain/shared"
)

// ClientCreatedEvent is raised when a new client is registered
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(client *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("client.created", "Client", client.ID, client.UserID),
		Name:            client.Name,
		Email:           client.Email,
	}
}

// ClientArchivedEvent is raised when a client is archived
type ClientArchivedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewClientArchivedEvent creates a new ClientArchivedEvent
func NewClientArchivedEvent(client *Client) *ClientArchivedEvent {
	return &ClientArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("client.archived", "Client", client.ID, client.UserID),
		Name:            client.Name,
	}
}
