package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepository creates a GormInvoiceRepository with a mocked SQL connection
func newMockInvoiceRepository(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func lockedInvoice(t *testing.T, userID uuid.UUID) *billing.Invoice {
	t.Helper()
	item, err := billing.NewInvoiceItem("Fee", decimal.NewFromInt(1), decimal.NewFromInt(200))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(userID, 1, uuid.New(), nil, "USD", decimal.Zero,
		billing.TermsNet15, time.Now(), []billing.InvoiceItem{item})
	require.NoError(t, err)
	return inv
}

func TestGormInvoiceRepository_SaveWithLock(t *testing.T) {
	t.Run("writes only the matching version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		inv := lockedInvoice(t, uuid.New())
		_, err := inv.RecordPayment(decimal.NewFromInt(50), "wire", "")
		require.NoError(t, err)

		// Loaded at version 1, RecordPayment bumped the aggregate to 2
		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WithArgs(sqlmock.AnyArg(), "", "PARTIAL", sqlmock.AnyArg(), 2, inv.ID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), inv)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("version miss maps to concurrency conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		inv := lockedInvoice(t, uuid.New())
		_, err := inv.RecordPayment(decimal.NewFromInt(50), "wire", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WithArgs(sqlmock.AnyArg(), "", "PARTIAL", sqlmock.AnyArg(), 2, inv.ID, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), inv)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Delete(t *testing.T) {
	t.Run("deletes the aggregate at its loaded version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		inv := lockedInvoice(t, uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "invoice_items" WHERE invoice_id = \$1`).
			WithArgs(inv.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(inv.ID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "invoices" WHERE id = \$1 AND version = \$2`).
			WithArgs(inv.ID, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), inv)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the row version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepository(t)
		defer mockDB.Close()

		inv := lockedInvoice(t, uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "invoice_items" WHERE invoice_id = \$1`).
			WithArgs(inv.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(inv.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "invoices" WHERE id = \$1 AND version = \$2`).
			WithArgs(inv.ID, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), inv)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
