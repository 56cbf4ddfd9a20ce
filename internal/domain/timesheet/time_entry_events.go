package timesheet

import (
	"time"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TimerStartedEvent is raised when a user starts a running timer
type TimerStartedEvent struct {
	shared.BaseDomainEvent
	EntryID   uuid.UUID `json:"entry_id"`
	ProjectID uuid.UUID `json:"project_id"`
	StartedAt time.Time `json:"started_at"`
}

// EventType returns the event type name
func (e *TimerStartedEvent) EventType() string {
	return "TimerStarted"
}

// NewTimerStartedEvent creates a new TimerStartedEvent
func NewTimerStartedEvent(entry *TimeEntry) *TimerStartedEvent {
	return &TimerStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TimerStarted", "TimeEntry", entry.ID, entry.UserID),
		EntryID:         entry.ID,
		ProjectID:       entry.ProjectID,
		StartedAt:       entry.StartedAt,
	}
}

// TimerStoppedEvent is raised when a running timer is stopped
type TimerStoppedEvent struct {
	shared.BaseDomainEvent
	EntryID     uuid.UUID `json:"entry_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	DurationMin int       `json:"duration_min"`
}

// EventType returns the event type name
func (e *TimerStoppedEvent) EventType() string {
	return "TimerStopped"
}

// NewTimerStoppedEvent creates a new TimerStoppedEvent
func NewTimerStoppedEvent(entry *TimeEntry) *TimerStoppedEvent {
	dur := 0
	if entry.DurationMin != nil {
		dur = *entry.DurationMin
	}
	return &TimerStoppedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TimerStopped", "TimeEntry", entry.ID, entry.UserID),
		EntryID:         entry.ID,
		ProjectID:       entry.ProjectID,
		DurationMin:     dur,
	}
}

// TimeEntryBilledEvent is raised when an entry is consumed by an invoice
type TimeEntryBilledEvent struct {
	shared.BaseDomainEvent
	EntryID   uuid.UUID `json:"entry_id"`
	ProjectID uuid.UUID `json:"project_id"`
	InvoiceID uuid.UUID `json:"invoice_id"`
}

// EventType returns the event type name
func (e *TimeEntryBilledEvent) EventType() string {
	return "TimeEntryBilled"
}

// NewTimeEntryBilledEvent creates a new TimeEntryBilledEvent
func NewTimeEntryBilledEvent(entry *TimeEntry) *TimeEntryBilledEvent {
	invoiceID := uuid.Nil
	if entry.InvoiceID != nil {
		invoiceID = *entry.InvoiceID
	}
	return &TimeEntryBilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("TimeEntryBilled", "TimeEntry", entry.ID, entry.UserID),
		EntryID:         entry.ID,
		ProjectID:       entry.ProjectID,
		InvoiceID:       invoiceID,
	}
}
