package persistence

import (
	"context"
	"errors"

	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingsRepository implements SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByUser retrieves the settings row for a user
func (r *GormSettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*identity.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a settings row
func (r *GormSettingsRepository) Save(ctx context.Context, settings *identity.Settings) error {
	model := models.SettingsModelFromDomain(settings)
	return r.db.WithContext(ctx).Save(model).Error
}

// AllocateNextNumber atomically returns the current counter value and
// advances it by one. The single UPDATE with RETURNING makes concurrent
// allocations for the same user serialize on the row lock.
func (r *GormSettingsRepository) AllocateNextNumber(ctx context.Context, userID uuid.UUID) (int, error) {
	var allocated int
	err := r.db.WithContext(ctx).
		Raw(`UPDATE user_settings
			SET next_number = next_number + 1, updated_at = NOW()
			WHERE user_id = ?
			RETURNING next_number - 1`, userID).
		Scan(&allocated).Error
	if err != nil {
		return 0, err
	}
	if allocated == 0 {
		// RETURNING produced no row: no settings row exists yet
		return 0, shared.ErrNotFound
	}
	return allocated, nil
}

var _ identity.SettingsRepository = (*GormSettingsRepository)(nil)
