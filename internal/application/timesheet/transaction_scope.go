package timesheet

import (
	"context"

	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/timesheet"
)

// TransactionScope provides transactional access to timesheet repositories.
// The single-running-timer check and the insert that follows it must share
// one transaction, or two concurrent starts can both pass the check.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories a timer
// operation touches, all sharing the same underlying transaction.
type TransactionalRepositories interface {
	// EntryRepo returns the time entry repository scoped to the current transaction
	EntryRepo() timesheet.TimeEntryRepository
	// ProjectRepo returns the project repository scoped to the current transaction
	ProjectRepo() project.ProjectRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for testing.
type NoOpTransactionScope struct {
	entryRepo   timesheet.TimeEntryRepository
	projectRepo project.ProjectRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	entryRepo timesheet.TimeEntryRepository,
	projectRepo project.ProjectRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// EntryRepo returns the time entry repository.
func (s *NoOpTransactionScope) EntryRepo() timesheet.TimeEntryRepository {
	return s.entryRepo
}

// ProjectRepo returns the project repository.
func (s *NoOpTransactionScope) ProjectRepo() project.ProjectRepository {
	return s.projectRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
