package project

import (
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectCreatedEvent is raised when a new project is created
type ProjectCreatedEvent struct {
	shared.BaseDomainEvent
	ProjectID   uuid.UUID   `json:"project_id"`
	ClientID    uuid.UUID   `json:"client_id"`
	Name        string      `json:"name"`
	BillingType BillingType `json:"billing_type"`
}

// EventType returns the event type name
func (e *ProjectCreatedEvent) EventType() string {
	return "ProjectCreated"
}

// NewProjectCreatedEvent creates a new ProjectCreatedEvent
func NewProjectCreatedEvent(p *Project) *ProjectCreatedEvent {
	return &ProjectCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProjectCreated", "Project", p.ID, p.UserID),
		ProjectID:       p.ID,
		ClientID:        p.ClientID,
		Name:            p.Name,
		BillingType:     p.BillingType,
	}
}

// ProjectStatusChangedEvent is raised when a project moves between
// operational states
type ProjectStatusChangedEvent struct {
	shared.BaseDomainEvent
	ProjectID      uuid.UUID     `json:"project_id"`
	PreviousStatus ProjectStatus `json:"previous_status"`
	NewStatus      ProjectStatus `json:"new_status"`
	IsArchived     bool          `json:"is_archived"`
}

// EventType returns the event type name
func (e *ProjectStatusChangedEvent) EventType() string {
	return "ProjectStatusChanged"
}

// NewProjectStatusChangedEvent creates a new ProjectStatusChangedEvent
func NewProjectStatusChangedEvent(p *Project, previous ProjectStatus) *ProjectStatusChangedEvent {
	return &ProjectStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProjectStatusChanged", "Project", p.ID, p.UserID),
		ProjectID:       p.ID,
		PreviousStatus:  previous,
		NewStatus:       p.Status,
		IsArchived:      p.IsArchived,
	}
}

// ProjectCancelledEvent is raised when a project is cancelled by either party
type ProjectCancelledEvent struct {
	shared.BaseDomainEvent
	ProjectID      uuid.UUID     `json:"project_id"`
	PreviousStatus ProjectStatus `json:"previous_status"`
	CancelledBy    CancelledBy   `json:"cancelled_by"`
}

// EventType returns the event type name
func (e *ProjectCancelledEvent) EventType() string {
	return "ProjectCancelled"
}

// NewProjectCancelledEvent creates a new ProjectCancelledEvent
func NewProjectCancelledEvent(p *Project, previous ProjectStatus) *ProjectCancelledEvent {
	by := CancelledByClient
	if p.CancelledBy != nil {
		by = *p.CancelledBy
	}
	return &ProjectCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProjectCancelled", "Project", p.ID, p.UserID),
		ProjectID:       p.ID,
		PreviousStatus:  previous,
		CancelledBy:     by,
	}
}
