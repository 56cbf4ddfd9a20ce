package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSettingsRepository creates a GormSettingsRepository with a mocked SQL connection
func newMockSettingsRepository(t *testing.T) (*GormSettingsRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSettingsRepository(gormDB), mock, mockDB
}

func TestGormSettingsRepository_FindByUser(t *testing.T) {
	t.Run("finds existing settings", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "user_id", "currency", "tax_rate", "rounding", "terms", "next_number"}).
			AddRow(uuid.New(), userID, "EUR", "13", "NEAREST_15", "NET_30", 7)

		mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		settings, err := repo.FindByUser(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, userID, settings.UserID)
		assert.Equal(t, "EUR", settings.Currency.String())
		assert.Equal(t, "13", settings.TaxRate.String())
		assert.Equal(t, 7, settings.NextNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing settings map to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByUser(context.Background(), userID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSettingsRepository_AllocateNextNumber(t *testing.T) {
	t.Run("returns the pre-increment counter value", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		rows := sqlmock.NewRows([]string{"next_number"}).AddRow(42)

		mock.ExpectQuery(`(?s)UPDATE user_settings.*SET next_number = next_number \+ 1.*RETURNING next_number - 1`).
			WithArgs(userID).
			WillReturnRows(rows)

		allocated, err := repo.AllocateNextNumber(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, 42, allocated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing settings row maps to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		mock.ExpectQuery(`(?s)UPDATE user_settings.*SET next_number = next_number \+ 1.*RETURNING next_number - 1`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"next_number"}))

		_, err := repo.AllocateNextNumber(context.Background(), userID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
