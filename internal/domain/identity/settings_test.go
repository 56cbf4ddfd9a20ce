package identity

import (
	"testing"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/shared/valueobject"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	userID := uuid.New()

	s := DefaultSettings(userID)

	assert.Equal(t, userID, s.UserID)
	assert.Equal(t, valueobject.USD, s.Currency)
	assert.True(t, s.TaxRate.IsZero())
	assert.Equal(t, timesheet.RoundingNone, s.Rounding)
	assert.Equal(t, billing.TermsNet15, s.Terms)
	assert.Equal(t, 1, s.NextNumber)
}

func TestSettingsApply(t *testing.T) {
	t.Run("applies only provided fields", func(t *testing.T) {
		s := DefaultSettings(uuid.New())
		rate := decimal.RequireFromString("13")
		rounding := timesheet.RoundingNearest15

		err := s.Apply(SettingsUpdate{TaxRate: &rate, Rounding: &rounding})

		require.NoError(t, err)
		assert.True(t, s.TaxRate.Equal(rate))
		assert.Equal(t, timesheet.RoundingNearest15, s.Rounding)
		assert.Equal(t, valueobject.USD, s.Currency)
		assert.Equal(t, billing.TermsNet15, s.Terms)
	})

	t.Run("counter can be moved forward manually", func(t *testing.T) {
		s := DefaultSettings(uuid.New())
		next := 100

		err := s.Apply(SettingsUpdate{NextNumber: &next})

		require.NoError(t, err)
		assert.Equal(t, 100, s.NextNumber)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		s := DefaultSettings(uuid.New())

		bad := valueobject.Currency("JPY")
		assert.Error(t, s.Apply(SettingsUpdate{Currency: &bad}))

		negRate := decimal.RequireFromString("-1")
		assert.Error(t, s.Apply(SettingsUpdate{TaxRate: &negRate}))

		overRate := decimal.RequireFromString("101")
		assert.Error(t, s.Apply(SettingsUpdate{TaxRate: &overRate}))

		badRounding := timesheet.RoundingPolicy("NEAREST_10")
		assert.Error(t, s.Apply(SettingsUpdate{Rounding: &badRounding}))

		badTerms := billing.PaymentTerms("NET_90")
		assert.Error(t, s.Apply(SettingsUpdate{Terms: &badTerms}))

		zero := 0
		assert.Error(t, s.Apply(SettingsUpdate{NextNumber: &zero}))
	})

	t.Run("invalid update leaves settings untouched", func(t *testing.T) {
		s := DefaultSettings(uuid.New())
		bad := valueobject.Currency("XXX")
		goodRate := decimal.RequireFromString("10")

		err := s.Apply(SettingsUpdate{Currency: &bad, TaxRate: &goodRate})

		assert.Error(t, err)
		assert.Equal(t, valueobject.USD, s.Currency)
		assert.True(t, s.TaxRate.IsZero())
	})
}
