package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// idempotencyTTL bounds how long a payment retry is recognized as a replay
const idempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers request keys so that retried payment
// submissions do not double-book money. Implementations live in
// infrastructure/cache.
type IdempotencyStore interface {
	// Get returns the stored value for the key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores the value under the key for the given TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// InvoiceService handles invoice generation, payments and status transitions
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	settingsRepo identity.SettingsRepository
	idempotency  IdempotencyStore
	txScope      TransactionScope
}

// NewInvoiceService creates a new InvoiceService. The idempotency store may
// be nil; payment recording then skips replay detection.
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	settingsRepo identity.SettingsRepository,
	idempotency IdempotencyStore,
	txScope TransactionScope,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		settingsRepo: settingsRepo,
		idempotency:  idempotency,
		txScope:      txScope,
	}
}

// Generate turns a project's billable value into a draft invoice. For hourly
// projects it consumes the project's unbilled time entries; for fixed-fee
// projects it bills the fee. Number allocation, invoice insertion and entry
// marking commit as one transaction.
func (s *InvoiceService) Generate(ctx context.Context, userID uuid.UUID, req GenerateInvoiceRequest) (*InvoiceResponse, error) {
	var response *InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		proj, err := repos.ProjectRepo().FindByIDForUser(ctx, userID, req.ProjectID)
		if err != nil {
			return err
		}
		if proj.Status.IsCancelled() {
			return shared.NewConflictError("Cannot invoice a cancelled project")
		}

		settings, err := s.loadOrCreateSettings(ctx, repos.SettingsRepo(), userID)
		if err != nil {
			return err
		}

		var (
			items    []billing.InvoiceItem
			consumed []uuid.UUID
		)
		switch proj.BillingType {
		case project.BillingHourly:
			items, consumed, err = buildHourlyItems(ctx, repos.EntryRepo(), userID, proj, timesheet.DateRange{From: req.From, To: req.To})
		case project.BillingFixed:
			items, err = buildFixedItems(proj)
		default:
			err = shared.NewValidationError("Unknown billing type")
		}
		if err != nil {
			return err
		}

		number, err := s.allocateNumber(ctx, repos, userID)
		if err != nil {
			return err
		}

		invoice, err := billing.NewInvoice(
			userID, number, proj.ClientID, &proj.ID,
			settings.Currency, settings.TaxRate, settings.Terms,
			time.Now(), items,
		)
		if err != nil {
			return err
		}
		invoice.Notes = req.Notes
		if invoice.Notes == "" {
			invoice.Notes = settings.InvoiceNotes
		}

		if err := repos.InvoiceRepo().Save(ctx, invoice); err != nil {
			return err
		}
		if len(consumed) > 0 {
			if err := repos.EntryRepo().MarkBilled(ctx, consumed, invoice.ID); err != nil {
				return err
			}
		}

		r := ToInvoiceResponse(invoice, settings.InvoicePrefix)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// buildHourlyItems folds a project's unbilled entries into one line item.
// Raw minutes sum as stored: the rounding policy shapes summaries only, and
// the invoice bills the ledger's ground truth.
func buildHourlyItems(
	ctx context.Context,
	entryRepo timesheet.TimeEntryRepository,
	userID uuid.UUID,
	proj *project.Project,
	rng timesheet.DateRange,
) ([]billing.InvoiceItem, []uuid.UUID, error) {
	if proj.HourlyRate == nil || proj.HourlyRate.LessThanOrEqual(decimal.Zero) {
		return nil, nil, billing.ErrEmptyInvoice
	}

	entries, err := entryRepo.FindUnbilledForProject(ctx, userID, proj.ID, rng)
	if err != nil {
		return nil, nil, err
	}

	totalMinutes := 0
	consumed := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		raw := entries[i].BillableMinutes()
		if raw == 0 {
			continue
		}
		totalMinutes += raw
		consumed = append(consumed, entries[i].ID)
	}
	if totalMinutes == 0 {
		return nil, nil, billing.ErrEmptyInvoice
	}

	hours := decimal.NewFromInt(int64(totalMinutes)).Div(decimal.NewFromInt(60)).Round(2)
	description := fmt.Sprintf("%s — %sh @ $%s/h", proj.Name, hours.String(), proj.HourlyRate.String())
	item, err := billing.NewInvoiceItem(description, hours, *proj.HourlyRate)
	if err != nil {
		return nil, nil, err
	}
	return []billing.InvoiceItem{item}, consumed, nil
}

// buildFixedItems bills a fixed-fee project's fee as a single line
func buildFixedItems(proj *project.Project) ([]billing.InvoiceItem, error) {
	if proj.FixedFee == nil || proj.FixedFee.LessThanOrEqual(decimal.Zero) {
		return nil, billing.ErrEmptyInvoice
	}

	description := fmt.Sprintf("%s — Fixed fee", proj.Name)
	item, err := billing.NewInvoiceItem(description, decimal.NewFromInt(1), *proj.FixedFee)
	if err != nil {
		return nil, err
	}
	return []billing.InvoiceItem{item}, nil
}

// allocateNumber draws the next invoice number from the settings counter.
// Falls back to max(existing)+1 when no counter row exists.
func (s *InvoiceService) allocateNumber(ctx context.Context, repos TransactionalRepositories, userID uuid.UUID) (int, error) {
	number, err := repos.SettingsRepo().AllocateNextNumber(ctx, userID)
	if err == nil {
		return number, nil
	}
	if !isNotFound(err) {
		return 0, err
	}

	maxNumber, err := repos.InvoiceRepo().MaxNumberForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return maxNumber + 1, nil
}

// Get retrieves an invoice with its items and payments
func (s *InvoiceService) Get(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice, s.invoicePrefix(ctx, userID))
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID, req ListInvoicesRequest) ([]InvoiceListItemResponse, int64, error) {
	filter := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.Status != nil {
		status := billing.InvoiceStatus(*req.Status)
		if !status.IsValid() && status != billing.InvoiceStatusOverdue {
			return nil, 0, shared.NewValidationError("Unknown invoice status filter")
		}
		if status == billing.InvoiceStatusOverdue {
			overdue := true
			filter.Overdue = &overdue
		} else {
			filter.Status = &status
		}
	}
	filter.ProjectID = req.ProjectID
	filter.ClientID = req.ClientID
	if req.Overdue != nil {
		filter.Overdue = req.Overdue
	}

	invoices, err := s.invoiceRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToInvoiceListItemResponses(invoices, s.invoicePrefix(ctx, userID)), total, nil
}

// RecordPayment books money against an invoice. The payment insert and the
// recomputed totals commit as one transaction, and the invoice row is saved
// with a version check so two concurrent payments cannot persist a stale
// total; the loser gets a concurrency conflict and retries from a fresh
// read. When an idempotency key is supplied, a replayed request returns the
// invoice unchanged instead of double-booking the amount.
func (s *InvoiceService) RecordPayment(ctx context.Context, userID, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	idemKey := ""
	if s.idempotency != nil && req.IdempotencyKey != "" {
		idemKey = fmt.Sprintf("payment:%s:%s:%s", userID, invoiceID, req.IdempotencyKey)
		if _, seen, err := s.idempotency.Get(ctx, idemKey); err == nil && seen {
			return s.Get(ctx, userID, invoiceID)
		}
	}

	var (
		response  *InvoiceResponse
		paymentID uuid.UUID
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUser(ctx, userID, invoiceID)
		if err != nil {
			return err
		}

		payment, err := invoice.RecordPayment(req.Amount, req.Method, req.Note)
		if err != nil {
			return err
		}
		if err := repos.InvoiceRepo().AddPayment(ctx, payment); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		paymentID = payment.ID
		r := ToInvoiceResponse(invoice, s.invoicePrefix(ctx, userID))
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if idemKey != "" {
		// Best effort; a failed store write only risks a duplicate-detection miss
		_ = s.idempotency.Set(ctx, idemKey, paymentID.String(), idempotencyTTL)
	}

	return response, nil
}

// MarkSent transitions the invoice to SENT
func (s *InvoiceService) MarkSent(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, func(inv *billing.Invoice) error {
		return inv.MarkSent()
	})
}

// MarkVoid writes the invoice off; blocked while payments exist
func (s *InvoiceService) MarkVoid(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, userID, invoiceID, func(inv *billing.Invoice) error {
		return inv.MarkVoid()
	})
}

// MarkPaid settles the invoice in full. The synthesized auto-settlement
// payment and the status flip commit as one version-checked transaction.
func (s *InvoiceService) MarkPaid(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	var response *InvoiceResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUser(ctx, userID, invoiceID)
		if err != nil {
			return err
		}

		settlement, err := invoice.SettleRemaining()
		if err != nil {
			return err
		}
		if settlement != nil {
			if err := repos.InvoiceRepo().AddPayment(ctx, settlement); err != nil {
				return err
			}
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		r := ToInvoiceResponse(invoice, s.invoicePrefix(ctx, userID))
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (s *InvoiceService) transition(ctx context.Context, userID, invoiceID uuid.UUID, fn func(*billing.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForUser(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := fn(invoice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice, s.invoicePrefix(ctx, userID))
	return &response, nil
}

// Delete removes an unpaid invoice and returns its consumed time entries to
// the unbilled pool, atomically. The invoice row is deleted with a version
// check: a payment that commits between the no-payments read and the delete
// bumps the version, the delete misses, and the whole transaction rolls back
// instead of silently dropping the new payment.
func (s *InvoiceService) Delete(ctx context.Context, userID, invoiceID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUser(ctx, userID, invoiceID)
		if err != nil {
			return err
		}
		if !invoice.CanDelete() {
			return shared.NewConflictError("Cannot delete an invoice with payments. Void it instead")
		}

		if err := repos.EntryRepo().UnlinkByInvoice(ctx, invoice.ID); err != nil {
			return err
		}
		return repos.InvoiceRepo().Delete(ctx, invoice)
	})
}

// loadOrCreateSettings implements lazy settings creation on first access
func (s *InvoiceService) loadOrCreateSettings(ctx context.Context, repo identity.SettingsRepository, userID uuid.UUID) (*identity.Settings, error) {
	settings, err := repo.FindByUser(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	settings = identity.DefaultSettings(userID)
	if err := repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// invoicePrefix fetches the user's display prefix, tolerating missing settings
func (s *InvoiceService) invoicePrefix(ctx context.Context, userID uuid.UUID) string {
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if err != nil {
		return ""
	}
	return settings.InvoicePrefix
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, "NOT_FOUND")
}
