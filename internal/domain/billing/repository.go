package billing

import (
	"context"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Status    *InvoiceStatus // Filter by stored status
	ProjectID *uuid.UUID     // Filter by project
	ClientID  *uuid.UUID     // Filter by client
	Overdue   *bool          // Derived filter: unpaid and past due date
}

// InvoiceRepository defines the interface for invoice persistence.
// Invoices load and save as whole aggregates: items and payments included.
type InvoiceRepository interface {
	// FindByIDForUser finds an invoice with its items and payments,
	// scoped to its owner
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Invoice, error)

	// FindAllForUser finds invoices for a user with filtering,
	// newest issue date first
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// FindByProjectWithStatuses finds a project's invoices currently in any
	// of the given stored statuses; used by the cancellation cascade
	FindByProjectWithStatuses(ctx context.Context, userID, projectID uuid.UUID, statuses []InvoiceStatus) ([]Invoice, error)

	// CountForUser counts invoices for a user with filtering
	CountForUser(ctx context.Context, userID uuid.UUID, filter InvoiceFilter) (int64, error)

	// MaxNumberForUser returns the highest invoice number allocated for the
	// user, 0 when none exist; the numbering fallback when no counter exists
	MaxNumberForUser(ctx context.Context, userID uuid.UUID) (int, error)

	// Save creates or updates an invoice together with its items and
	// payments
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock updates the invoice row only if its stored version still
	// matches the version the aggregate was loaded at. A miss returns
	// shared.ErrConcurrencyConflict; the caller retries from a fresh read.
	// Items and payments are not written; new payments go through AddPayment.
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// AddPayment inserts a single payment row. Payments are append-only.
	AddPayment(ctx context.Context, payment *Payment) error

	// Delete removes the invoice and its items, guarded by the aggregate's
	// loaded version so a concurrently recorded payment aborts the delete.
	// Callers must have already verified the no-payments guard and unlinked
	// time entries within the same transaction.
	Delete(ctx context.Context, invoice *Invoice) error

	// HasInvoicesWithPayments reports whether any invoice on the project
	// carries at least one payment; guards project hard-deletion
	HasInvoicesWithPayments(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
}
