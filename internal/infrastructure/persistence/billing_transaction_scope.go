package persistence

import (
	"context"

	appbilling "github.com/fcc/backend/internal/application/billing"
	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/timesheet"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing TransactionScope using
// GORM transactions. Invoice generation allocates a number, writes the
// invoice and marks entries billed as one unit.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormBillingRepositories{tx: tx})
	})
}

type gormBillingRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormBillingRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// EntryRepo returns the time entry repository scoped to the current transaction
func (r *gormBillingRepositories) EntryRepo() timesheet.TimeEntryRepository {
	return NewGormTimeEntryRepository(r.tx)
}

// ProjectRepo returns the project repository scoped to the current transaction
func (r *gormBillingRepositories) ProjectRepo() project.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

// SettingsRepo returns the settings repository scoped to the current transaction
func (r *gormBillingRepositories) SettingsRepo() identity.SettingsRepository {
	return NewGormSettingsRepository(r.tx)
}

var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
