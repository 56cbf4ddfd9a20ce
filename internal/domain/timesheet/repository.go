package timesheet

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateRange bounds a query by entry start time: [From, To).
// Either bound may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// TimeEntryRepository defines the interface for time entry persistence
type TimeEntryRepository interface {
	// FindByIDForUser finds an entry by ID scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*TimeEntry, error)

	// FindRunningForUser finds the user's running entry (end IS NULL).
	// Returns shared.ErrNotFound when no timer is running.
	FindRunningForUser(ctx context.Context, userID uuid.UUID) (*TimeEntry, error)

	// FindUnbilledForProject finds unbilled entries for a project within the
	// given range, ordered by start ascending
	FindUnbilledForProject(ctx context.Context, userID, projectID uuid.UUID, rng DateRange) ([]TimeEntry, error)

	// FindRecentForUser lists the user's entries newest-first
	FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]TimeEntry, error)

	// FindFinishedInRange finds finished entries (end IS NOT NULL) within the
	// given range, newest-first; used by summaries
	FindFinishedInRange(ctx context.Context, userID uuid.UUID, rng DateRange) ([]TimeEntry, error)

	// FindByInvoice finds all entries linked to an invoice
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]TimeEntry, error)

	// Save creates or updates a time entry
	Save(ctx context.Context, entry *TimeEntry) error

	// MarkBilled flips the given entries to billed and links them to the
	// invoice in one statement
	MarkBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error

	// UnlinkByInvoice returns every entry referencing the invoice to the
	// unbilled pool
	UnlinkByInvoice(ctx context.Context, invoiceID uuid.UUID) error

	// DeleteForUser deletes an entry scoped to its owner
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error

	// CountRunningForUser counts running entries for the user
	CountRunningForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
