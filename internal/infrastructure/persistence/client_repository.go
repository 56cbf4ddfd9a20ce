package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/fcc/backend/internal/domain/partner"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByIDForUser retrieves a client owned by the given user
func (r *GormClientRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
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

// FindAllForUser finds all clients for a user matching the filter
func (r *GormClientRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter partner.ClientFilter) ([]*partner.Client, error) {
	var clientModels []models.ClientModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("user_id = ?", userID), filter, true)

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]*partner.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return clients, nil
}

// CountForUser counts clients for a user matching the filter
func (r *GormClientRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter partner.ClientFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientModel{}).Where("user_id = ?", userID), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// HasProjects reports whether any project references the client
func (r *GormClientRepository) HasProjects(ctx context.Context, userID, clientID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Where("user_id = ? AND client_id = ?", userID, clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteForUser deletes a client scoped to its owner
func (r *GormClientRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.ClientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies search, archive visibility, ordering and pagination
func (r *GormClientRepository) applyFilter(query *gorm.DB, filter partner.ClientFilter, paginate bool) *gorm.DB {
	if !filter.IncludeArchived {
		query = query.Where("is_archived = false")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR company ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ClientSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	if orderBy == "name" && filter.OrderBy == "" {
		orderDir = "ASC"
	}
	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

var _ partner.ClientRepository = (*GormClientRepository)(nil)
