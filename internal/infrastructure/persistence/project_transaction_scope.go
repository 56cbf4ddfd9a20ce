package persistence

import (
	"context"

	appproject "github.com/fcc/backend/internal/application/project"
	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/project"
	"gorm.io/gorm"
)

// GormProjectTransactionScope implements the project TransactionScope using
// GORM transactions. The cancellation cascade voids invoices and flips the
// project status as one unit.
type GormProjectTransactionScope struct {
	db *gorm.DB
}

// NewGormProjectTransactionScope creates a new GormProjectTransactionScope
func NewGormProjectTransactionScope(db *gorm.DB) *GormProjectTransactionScope {
	return &GormProjectTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormProjectTransactionScope) Execute(ctx context.Context, fn func(repos appproject.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProjectRepositories{tx: tx})
	})
}

type gormProjectRepositories struct {
	tx *gorm.DB
}

// ProjectRepo returns the project repository scoped to the current transaction
func (r *gormProjectRepositories) ProjectRepo() project.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

// InvoiceRepo returns the invoice repository scoped to the current transaction
func (r *gormProjectRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

var _ appproject.TransactionScope = (*GormProjectTransactionScope)(nil)
var _ appproject.TransactionalRepositories = (*gormProjectRepositories)(nil)
