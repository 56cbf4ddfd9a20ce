package persistence

import (
	"context"

	apptimesheet "github.com/fcc/backend/internal/application/timesheet"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/timesheet"
	"gorm.io/gorm"
)

// GormTimesheetTransactionScope implements the timesheet TransactionScope
// using GORM transactions. The start-timer check-then-insert runs inside it.
type GormTimesheetTransactionScope struct {
	db *gorm.DB
}

// NewGormTimesheetTransactionScope creates a new GormTimesheetTransactionScope
func NewGormTimesheetTransactionScope(db *gorm.DB) *GormTimesheetTransactionScope {
	return &GormTimesheetTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTimesheetTransactionScope) Execute(ctx context.Context, fn func(repos apptimesheet.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTimesheetRepositories{tx: tx})
	})
}

type gormTimesheetRepositories struct {
	tx *gorm.DB
}

// EntryRepo returns the time entry repository scoped to the current transaction
func (r *gormTimesheetRepositories) EntryRepo() timesheet.TimeEntryRepository {
	return NewGormTimeEntryRepository(r.tx)
}

// ProjectRepo returns the project repository scoped to the current transaction
func (r *gormTimesheetRepositories) ProjectRepo() project.ProjectRepository {
	return NewGormProjectRepository(r.tx)
}

var _ apptimesheet.TransactionScope = (*GormTimesheetTransactionScope)(nil)
var _ apptimesheet.TransactionalRepositories = (*gormTimesheetRepositories)(nil)
