package timesheet

import (
	"math"
	"time"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultManualMinutes is the duration assumed for a manual entry when the
// caller provides neither an end time nor a duration.
const DefaultManualMinutes = 60

// TimeEntry represents one tracked work session. An entry with a nil EndedAt
// is a running timer; at most one such entry may exist per user.
type TimeEntry struct {
	shared.OwnedAggregateRoot
	ProjectID   uuid.UUID  `json:"project_id"`
	Description string     `json:"description"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`     // nil while the timer runs
	DurationMin *int       `json:"duration_min"` // set on stop or provided manually
	Billed      bool       `json:"billed"`
	InvoiceID   *uuid.UUID `json:"invoice_id"` // set when consumed by an invoice
}

// StartEntry creates a running time entry starting now.
// The single-running-timer check belongs to the caller's transaction;
// this constructor only validates its own inputs.
func StartEntry(userID, projectID uuid.UUID, description string) (*TimeEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, shared.NewValidationError("Project ID is required")
	}

	entry := &TimeEntry{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		ProjectID:          projectID,
		Description:        description,
		StartedAt:          time.Now(),
	}

	entry.AddDomainEvent(NewTimerStartedEvent(entry))

	return entry, nil
}

// NewManualEntry creates a finished entry from user-supplied times.
// Duration is derived from start/end when not given; when nothing but the
// project is given the entry defaults to one hour starting now.
func NewManualEntry(userID, projectID uuid.UUID, description string, start, end *time.Time, durationMin *int) (*TimeEntry, error) {
	if userID == uuid.Nil {
		return nil, shared.ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, shared.NewValidationError("Project ID is required")
	}
	if durationMin != nil && *durationMin <= 0 {
		return nil, shared.NewValidationError("Duration must be positive")
	}

	dur := durationMin
	if dur == nil && start != nil && end != nil {
		ms := end.Sub(*start)
		if ms <= 0 {
			return nil, shared.NewValidationError("End must be after start")
		}
		d := int(math.Round(ms.Minutes()))
		if d < 1 {
			d = 1
		}
		dur = &d
	}

	startAt := time.Now()
	if start != nil {
		startAt = *start
	}
	if dur == nil && end == nil {
		d := DefaultManualMinutes
		dur = &d
	}

	endAt := end
	if endAt == nil && dur != nil {
		e := startAt.Add(time.Duration(*dur) * time.Minute)
		endAt = &e
	}

	entry := &TimeEntry{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(userID),
		ProjectID:          projectID,
		Description:        description,
		StartedAt:          startAt,
		EndedAt:            endAt,
		DurationMin:        dur,
	}

	return entry, nil
}

// IsRunning reports whether the entry is a live timer
func (e *TimeEntry) IsRunning() bool {
	return e.EndedAt == nil
}

// Stop finishes a running entry. A stopped timer always bills at least one
// minute.
func (e *TimeEntry) Stop(at time.Time) error {
	if !e.IsRunning() {
		return shared.NewConflictError("Time entry is not running")
	}
	if at.Before(e.StartedAt) {
		at = e.StartedAt
	}

	dur := int(math.Round(at.Sub(e.StartedAt).Minutes()))
	if dur < 1 {
		dur = 1
	}

	e.EndedAt = &at
	e.DurationMin = &dur
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewTimerStoppedEvent(e))

	return nil
}

// BillableMinutes returns the entry's raw duration in minutes. Finished
// entries without an explicit duration fall back to end-start; running
// entries contribute nothing.
func (e *TimeEntry) BillableMinutes() int {
	if e.DurationMin != nil {
		if *e.DurationMin < 0 {
			return 0
		}
		return *e.DurationMin
	}
	if e.EndedAt == nil {
		return 0
	}
	d := int(math.Round(e.EndedAt.Sub(e.StartedAt).Minutes()))
	if d < 0 {
		return 0
	}
	return d
}

// MarkBilled links the entry to the invoice that consumed it.
// A billed entry always carries its invoice reference, and vice versa.
func (e *TimeEntry) MarkBilled(invoiceID uuid.UUID) error {
	if invoiceID == uuid.Nil {
		return shared.NewValidationError("Invoice ID is required")
	}
	if e.Billed {
		return shared.NewConflictError("Time entry is already billed")
	}

	e.Billed = true
	e.InvoiceID = &invoiceID
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewTimeEntryBilledEvent(e))

	return nil
}

// Unlink returns the entry to the unbilled pool, e.g. when its invoice is
// deleted. The stored duration is untouched.
func (e *TimeEntry) Unlink() {
	e.Billed = false
	e.InvoiceID = nil
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// CanDelete reports whether the entry may be removed from the ledger.
// Billed entries are never deleted directly; their invoice unlinks them first.
func (e *TimeEntry) CanDelete() bool {
	return !e.Billed
}
