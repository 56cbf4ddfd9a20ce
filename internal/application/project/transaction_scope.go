package project

import (
	"context"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/project"
)

// TransactionScope provides transactional access to project repositories.
// The freelancer-cancellation cascade voids invoices and flips the project
// status as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a lifecycle
// operation touches, all sharing the same underlying transaction.
type TransactionalRepositories interface {
	// ProjectRepo returns the project repository scoped to the current transaction
	ProjectRepo() project.ProjectRepository
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing.
type NoOpTransactionScope struct {
	projectRepo project.ProjectRepository
	invoiceRepo billing.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	projectRepo project.ProjectRepository,
	invoiceRepo billing.InvoiceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProjectRepo returns the project repository.
func (s *NoOpTransactionScope) ProjectRepo() project.ProjectRepository {
	return s.projectRepo
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
