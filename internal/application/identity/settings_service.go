package identity

import (
	"context"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
)

// SettingsService handles the per-user billing defaults
type SettingsService struct {
	settingsRepo identity.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo identity.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, creating the default row on first access
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*SettingsResponse, error) {
	settings, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToSettingsResponse(settings)
	return &response, nil
}

// Update applies a whitelisted partial update
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	settings, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := identity.SettingsUpdate{
		TaxRate:       req.TaxRate,
		InvoicePrefix: req.InvoicePrefix,
		NextNumber:    req.NextNumber,
		InvoiceNotes:  req.InvoiceNotes,
	}
	if req.Currency != nil {
		c := valueobject.Currency(*req.Currency)
		update.Currency = &c
	}
	if req.Rounding != nil {
		r := timesheet.RoundingPolicy(*req.Rounding)
		update.Rounding = &r
	}
	if req.Terms != nil {
		t := billing.PaymentTerms(*req.Terms)
		update.Terms = &t
	}

	if err := settings.Apply(update); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	response := ToSettingsResponse(settings)
	return &response, nil
}

func (s *SettingsService) loadOrCreate(ctx context.Context, userID uuid.UUID) (*identity.Settings, error) {
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	settings = identity.DefaultSettings(userID)
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
