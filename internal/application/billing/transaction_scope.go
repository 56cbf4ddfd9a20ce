package billing

import (
	"context"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/timesheet"
)

// TransactionScope provides transactional access to billing repositories.
// Invoice generation spans three aggregates (settings counter, invoice,
// consumed time entries) and must commit or roll back as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a billing
// operation touches, all sharing the same underlying transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
	// EntryRepo returns the time entry repository scoped to the current transaction
	EntryRepo() timesheet.TimeEntryRepository
	// ProjectRepo returns the project repository scoped to the current transaction
	ProjectRepo() project.ProjectRepository
	// SettingsRepo returns the settings repository scoped to the current transaction
	SettingsRepo() identity.SettingsRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing.
type NoOpTransactionScope struct {
	invoiceRepo  billing.InvoiceRepository
	entryRepo    timesheet.TimeEntryRepository
	projectRepo  project.ProjectRepository
	settingsRepo identity.SettingsRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	invoiceRepo billing.InvoiceRepository,
	entryRepo timesheet.TimeEntryRepository,
	projectRepo project.ProjectRepository,
	settingsRepo identity.SettingsRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:  invoiceRepo,
		entryRepo:    entryRepo,
		projectRepo:  projectRepo,
		settingsRepo: settingsRepo,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// EntryRepo returns the time entry repository.
func (s *NoOpTransactionScope) EntryRepo() timesheet.TimeEntryRepository {
	return s.entryRepo
}

// ProjectRepo returns the project repository.
func (s *NoOpTransactionScope) ProjectRepo() project.ProjectRepository {
	return s.projectRepo
}

// SettingsRepo returns the settings repository.
func (s *NoOpTransactionScope) SettingsRepo() identity.SettingsRepository {
	return s.settingsRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
