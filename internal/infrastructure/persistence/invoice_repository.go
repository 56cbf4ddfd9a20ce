package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
// Invoices load and save as whole aggregates with items and payments.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForUser finds an invoice with its items and payments, scoped to
// its owner
func (r *GormInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at ASC")
		}).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser finds invoices for a user with filtering, newest issue
// date first
func (r *GormInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("user_id = ?", userID), filter, true)

	if err := query.Preload("Items").Preload("Payments").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// FindByProjectWithStatuses finds a project's invoices currently in any of
// the given stored statuses
func (r *GormInvoiceRepository) FindByProjectWithStatuses(ctx context.Context, userID, projectID uuid.UUID, statuses []billing.InvoiceStatus) ([]billing.Invoice, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = s.String()
	}

	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("user_id = ? AND project_id = ? AND status IN ?", userID, projectID, statusStrings).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = *invoiceModels[i].ToDomain()
	}
	return invoices, nil
}

// CountForUser counts invoices for a user with filtering
func (r *GormInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("user_id = ?", userID), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxNumberForUser returns the highest invoice number allocated for the
// user, 0 when none exist
func (r *GormInvoiceRepository) MaxNumberForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var maxNumber int
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	return maxNumber, nil
}

// Save creates or updates an invoice together with its items and payments
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// SaveWithLock updates the invoice row only while its stored version matches
// the version the aggregate was loaded at. Items and payments are left alone.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]interface{}{
			"amount_paid": invoice.AmountPaid,
			"status":      invoice.Status.String(),
			"notes":       invoice.Notes,
			"version":     invoice.Version,
			"updated_at":  invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// AddPayment inserts one payment row
func (r *GormInvoiceRepository) AddPayment(ctx context.Context, payment *billing.Payment) error {
	model := models.PaymentModel{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		Note:      payment.Note,
		PaidAt:    payment.PaidAt,
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// Delete removes the invoice and its items. The invoice row delete carries
// the aggregate's loaded version; a racing payment bumps the row version,
// the delete misses, and the transaction rolls back.
func (r *GormInvoiceRepository) Delete(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND version = ?", invoice.ID, invoice.Version).Delete(&models.InvoiceModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// HasInvoicesWithPayments reports whether any invoice on the project carries
// at least one payment
func (r *GormInvoiceRepository) HasInvoicesWithPayments(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PaymentModel{}).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("invoices.user_id = ? AND invoices.project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filtering, ordering and pagination
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter, paginate bool) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Overdue != nil && *filter.Overdue {
		// OVERDUE is derived, never stored: unpaid, past due, not void
		query = query.Where("status IN ? AND due_date < ?",
			[]string{
				billing.InvoiceStatusSent.String(),
				billing.InvoiceStatusPartial.String(),
			}, time.Now())
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issue_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
