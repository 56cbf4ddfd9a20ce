package identity

import (
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings holds per-user billing defaults and the invoice number counter.
// Created lazily on first access and mutated only through whitelisted
// partial updates; never deleted independently of the user.
type Settings struct {
	shared.BaseEntity
	UserID        uuid.UUID                `json:"user_id"`
	Currency      valueobject.Currency     `json:"currency"`
	TaxRate       decimal.Decimal          `json:"tax_rate"` // percent
	Rounding      timesheet.RoundingPolicy `json:"rounding"`
	Terms         billing.PaymentTerms     `json:"terms"`
	InvoicePrefix string                   `json:"invoice_prefix"`
	NextNumber    int                      `json:"next_number"` // monotonic counter
	InvoiceNotes  string                   `json:"invoice_notes,omitempty"`
}

// DefaultSettings returns the settings a user starts with
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Currency:   valueobject.DefaultCurrency,
		TaxRate:    decimal.Zero,
		Rounding:   timesheet.RoundingNone,
		Terms:      billing.TermsNet15,
		NextNumber: 1,
	}
}

// SettingsUpdate carries a whitelisted partial update. Nil fields are left
// unchanged.
type SettingsUpdate struct {
	Currency      *valueobject.Currency
	TaxRate       *decimal.Decimal
	Rounding      *timesheet.RoundingPolicy
	Terms         *billing.PaymentTerms
	InvoicePrefix *string
	NextNumber    *int
	InvoiceNotes  *string
}

// Apply validates and applies the partial update
func (s *Settings) Apply(update SettingsUpdate) error {
	if update.Currency != nil && !update.Currency.IsValid() {
		return shared.NewValidationError("Unsupported currency code")
	}
	if update.TaxRate != nil && (update.TaxRate.IsNegative() || update.TaxRate.GreaterThan(decimal.NewFromInt(100))) {
		return shared.NewValidationError("Tax rate must be between 0 and 100")
	}
	if update.Rounding != nil && !update.Rounding.IsValid() {
		return shared.NewValidationError("Rounding policy must be NONE, NEAREST_5 or NEAREST_15")
	}
	if update.Terms != nil && !update.Terms.IsValid() {
		return shared.NewValidationError("Payment terms must be NET_7, NET_15, NET_30 or DUE_ON_RECEIPT")
	}
	if update.InvoicePrefix != nil && len(*update.InvoicePrefix) > 20 {
		return shared.NewValidationError("Invoice prefix cannot exceed 20 characters")
	}
	if update.NextNumber != nil && *update.NextNumber < 1 {
		return shared.NewValidationError("Next invoice number must be at least 1")
	}

	if update.Currency != nil {
		s.Currency = *update.Currency
	}
	if update.TaxRate != nil {
		s.TaxRate = *update.TaxRate
	}
	if update.Rounding != nil {
		s.Rounding = *update.Rounding
	}
	if update.Terms != nil {
		s.Terms = *update.Terms
	}
	if update.InvoicePrefix != nil {
		s.InvoicePrefix = *update.InvoicePrefix
	}
	if update.NextNumber != nil {
		s.NextNumber = *update.NextNumber
	}
	if update.InvoiceNotes != nil {
		s.InvoiceNotes = *update.InvoiceNotes
	}

	s.UpdatedAt = time.Now()

	return nil
}
