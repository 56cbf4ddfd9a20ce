package persistence

import (
	"context"
	"errors"

	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/fcc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTimeEntryRepository implements TimeEntryRepository using GORM
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewGormTimeEntryRepository creates a new GormTimeEntryRepository
func NewGormTimeEntryRepository(db *gorm.DB) *GormTimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// FindByIDForUser finds an entry by ID scoped to its owner
func (r *GormTimeEntryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*timesheet.TimeEntry, error) {
	var model models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRunningForUser finds the user's running entry
func (r *GormTimeEntryRepository) FindRunningForUser(ctx context.Context, userID uuid.UUID) (*timesheet.TimeEntry, error) {
	var model models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnbilledForProject finds unbilled entries for a project within the
// given range, ordered by start ascending
func (r *GormTimeEntryRepository) FindUnbilledForProject(ctx context.Context, userID, projectID uuid.UUID, rng timesheet.DateRange) ([]timesheet.TimeEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeEntryModel{}).
		Where("user_id = ? AND project_id = ? AND billed = false AND ended_at IS NOT NULL", userID, projectID)
	query = applyDateRange(query, rng)

	var entryModels []models.TimeEntryModel
	if err := query.Order("started_at ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindRecentForUser lists the user's entries newest-first
func (r *GormTimeEntryRepository) FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]timesheet.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindFinishedInRange finds finished entries within the given range,
// newest-first
func (r *GormTimeEntryRepository) FindFinishedInRange(ctx context.Context, userID uuid.UUID, rng timesheet.DateRange) ([]timesheet.TimeEntry, error) {
	query := r.db.WithContext(ctx).Model(&models.TimeEntryModel{}).
		Where("user_id = ? AND ended_at IS NOT NULL", userID)
	query = applyDateRange(query, rng)

	var entryModels []models.TimeEntryModel
	if err := query.Order("started_at DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindByInvoice finds all entries linked to an invoice
func (r *GormTimeEntryRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]timesheet.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("started_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Save creates or updates a time entry
func (r *GormTimeEntryRepository) Save(ctx context.Context, entry *timesheet.TimeEntry) error {
	model := models.TimeEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// MarkBilled flips the given entries to billed and links them to the invoice
// in one statement
func (r *GormTimeEntryRepository) MarkBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.TimeEntryModel{}).
		Where("id IN ?", entryIDs).
		Updates(map[string]interface{}{
			"billed":     true,
			"invoice_id": invoiceID,
		}).Error
}

// UnlinkByInvoice returns every entry referencing the invoice to the
// unbilled pool
func (r *GormTimeEntryRepository) UnlinkByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.TimeEntryModel{}).
		Where("invoice_id = ?", invoiceID).
		Updates(map[string]interface{}{
			"billed":     false,
			"invoice_id": nil,
		}).Error
}

// DeleteForUser deletes an entry scoped to its owner
func (r *GormTimeEntryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.TimeEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountRunningForUser counts running entries for the user
func (r *GormTimeEntryRepository) CountRunningForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TimeEntryModel{}).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// applyDateRange bounds a query by entry start time: [From, To)
func applyDateRange(query *gorm.DB, rng timesheet.DateRange) *gorm.DB {
	if rng.From != nil {
		query = query.Where("started_at >= ?", *rng.From)
	}
	if rng.To != nil {
		query = query.Where("started_at < ?", *rng.To)
	}
	return query
}

func toDomainEntries(entryModels []models.TimeEntryModel) []timesheet.TimeEntry {
	entries := make([]timesheet.TimeEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries
}

var _ timesheet.TimeEntryRepository = (*GormTimeEntryRepository)(nil)
