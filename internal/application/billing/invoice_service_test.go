package billing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByProjectWithStatuses(ctx context.Context, userID, projectID uuid.UUID, statuses []billing.InvoiceStatus) ([]billing.Invoice, error) {
	args := m.Called(ctx, userID, projectID, statuses)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter billing.InvoiceFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) MaxNumberForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) AddPayment(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) HasInvoicesWithPayments(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, projectID)
	return args.Bool(0), args.Error(1)
}

// MockTimeEntryRepository is a mock implementation of TimeEntryRepository
type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*timesheet.TimeEntry, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindRunningForUser(ctx context.Context, userID uuid.UUID) (*timesheet.TimeEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindUnbilledForProject(ctx context.Context, userID, projectID uuid.UUID, rng timesheet.DateRange) ([]timesheet.TimeEntry, error) {
	args := m.Called(ctx, userID, projectID, rng)
	return args.Get(0).([]timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindRecentForUser(ctx context.Context, userID uuid.UUID, limit int) ([]timesheet.TimeEntry, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindFinishedInRange(ctx context.Context, userID uuid.UUID, rng timesheet.DateRange) ([]timesheet.TimeEntry, error) {
	args := m.Called(ctx, userID, rng)
	return args.Get(0).([]timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]timesheet.TimeEntry, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]timesheet.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) Save(ctx context.Context, entry *timesheet.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) MarkBilled(ctx context.Context, entryIDs []uuid.UUID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, entryIDs, invoiceID)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) UnlinkByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTimeEntryRepository) CountRunningForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter project.ProjectFilter) ([]project.Project, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter project.ProjectFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*identity.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *identity.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) AllocateNextNumber(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// memoryIdempotencyStore is a test double for the cache-backed store
type memoryIdempotencyStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{data: make(map[string]string)}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryIdempotencyStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// =============================================================================
// Fixtures
// =============================================================================

type serviceFixture struct {
	userID       uuid.UUID
	invoiceRepo  *MockInvoiceRepository
	entryRepo    *MockTimeEntryRepository
	projectRepo  *MockProjectRepository
	settingsRepo *MockSettingsRepository
	store        *memoryIdempotencyStore
	service      *InvoiceService
}

func newFixture() *serviceFixture {
	f := &serviceFixture{
		userID:       uuid.New(),
		invoiceRepo:  new(MockInvoiceRepository),
		entryRepo:    new(MockTimeEntryRepository),
		projectRepo:  new(MockProjectRepository),
		settingsRepo: new(MockSettingsRepository),
		store:        newMemoryIdempotencyStore(),
	}
	scope := NewNoOpTransactionScope(f.invoiceRepo, f.entryRepo, f.projectRepo, f.settingsRepo)
	f.service = NewInvoiceService(f.invoiceRepo, f.settingsRepo, f.store, scope)
	return f
}

func (f *serviceFixture) hourlyProject(t *testing.T, rate string) *project.Project {
	t.Helper()
	r := decimal.RequireFromString(rate)
	p, err := project.NewProject(f.userID, uuid.New(), "Website redesign", project.BillingHourly, &r, nil)
	require.NoError(t, err)
	return p
}

func (f *serviceFixture) fixedProject(t *testing.T, fee string) *project.Project {
	t.Helper()
	d := decimal.RequireFromString(fee)
	p, err := project.NewProject(f.userID, uuid.New(), "Logo package", project.BillingFixed, nil, &d)
	require.NoError(t, err)
	return p
}

func (f *serviceFixture) settings(taxRate string) *identity.Settings {
	s := identity.DefaultSettings(f.userID)
	s.TaxRate = decimal.RequireFromString(taxRate)
	return s
}

func entryOf(t *testing.T, userID, projectID uuid.UUID, minutes int) timesheet.TimeEntry {
	t.Helper()
	e, err := timesheet.NewManualEntry(userID, projectID, "", nil, nil, &minutes)
	require.NoError(t, err)
	return *e
}

func paidInvoice(t *testing.T, userID uuid.UUID, total string) *billing.Invoice {
	t.Helper()
	item, err := billing.NewInvoiceItem("Fee", decimal.NewFromInt(1), decimal.RequireFromString(total))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(userID, 1, uuid.New(), nil, "USD", decimal.Zero, billing.TermsNet15, time.Now(), []billing.InvoiceItem{item})
	require.NoError(t, err)
	return inv
}

// =============================================================================
// Generate
// =============================================================================

func TestGenerateHourlyInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	proj := f.hourlyProject(t, "85")

	entries := []timesheet.TimeEntry{
		entryOf(t, f.userID, proj.ID, 90),
		entryOf(t, f.userID, proj.ID, 45),
		entryOf(t, f.userID, proj.ID, 30),
	}

	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("13"), nil)
	f.entryRepo.On("FindUnbilledForProject", ctx, f.userID, proj.ID, mock.Anything).Return(entries, nil)
	f.settingsRepo.On("AllocateNextNumber", ctx, f.userID).Return(7, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	f.entryRepo.On("MarkBilled", ctx, mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.Number)
	assert.Equal(t, "DRAFT", resp.Status)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Website redesign — 2.75h @ $85/h", resp.Items[0].Description)
	assert.True(t, resp.Items[0].Quantity.Equal(decimal.RequireFromString("2.75")))
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("233.75")), resp.Subtotal.String())
	assert.True(t, resp.Tax.Equal(decimal.RequireFromString("30.39")), resp.Tax.String())
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("264.14")), resp.Total.String())

	f.entryRepo.AssertCalled(t, "MarkBilled", ctx,
		[]uuid.UUID{entries[0].ID, entries[1].ID, entries[2].ID}, resp.ID)
}

func TestGenerateFixedInvoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	proj := f.fixedProject(t, "1500")

	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)
	f.settingsRepo.On("AllocateNextNumber", ctx, f.userID).Return(1, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Logo package — Fixed fee", resp.Items[0].Description)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("1500")))
	f.entryRepo.AssertNotCalled(t, "MarkBilled", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateEmptyInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("no unbilled time", func(t *testing.T) {
		f := newFixture()
		proj := f.hourlyProject(t, "85")

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)
		f.entryRepo.On("FindUnbilledForProject", ctx, f.userID, proj.ID, mock.Anything).Return([]timesheet.TimeEntry{}, nil)

		_, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

		assert.ErrorIs(t, err, billing.ErrEmptyInvoice)
		f.invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancelled project", func(t *testing.T) {
		f := newFixture()
		proj := f.hourlyProject(t, "85")
		require.NoError(t, proj.Cancel(project.CancelledByClient))

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)

		_, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})
}

func TestGenerateNumberFallback(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	proj := f.fixedProject(t, "1500")

	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)
	f.settingsRepo.On("AllocateNextNumber", ctx, f.userID).Return(0, shared.ErrNotFound)
	f.invoiceRepo.On("MaxNumberForUser", ctx, f.userID).Return(41, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

	require.NoError(t, err)
	assert.Equal(t, 42, resp.Number)
}

func TestGenerateBillsRawMinutes(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	proj := f.hourlyProject(t, "60")

	// The rounding policy shapes summaries only; it must not touch invoicing
	settings := f.settings("0")
	settings.Rounding = timesheet.RoundingNearest15

	entries := []timesheet.TimeEntry{entryOf(t, f.userID, proj.ID, 52)}

	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(settings, nil)
	f.entryRepo.On("FindUnbilledForProject", ctx, f.userID, proj.ID, mock.Anything).Return(entries, nil)
	f.settingsRepo.On("AllocateNextNumber", ctx, f.userID).Return(1, nil)
	f.invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	f.entryRepo.On("MarkBilled", ctx, mock.Anything, mock.Anything).Return(nil)

	resp, err := f.service.Generate(ctx, f.userID, GenerateInvoiceRequest{ProjectID: proj.ID})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Website redesign — 0.87h @ $60/h", resp.Items[0].Description)
	assert.True(t, resp.Items[0].Quantity.Equal(decimal.RequireFromString("0.87")), resp.Items[0].Quantity.String())
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("52.2")), resp.Subtotal.String())
}

// =============================================================================
// Payments
// =============================================================================

func TestRecordPaymentService(t *testing.T) {
	ctx := context.Background()

	t.Run("books the payment", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "264.14")

		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("AddPayment", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
		f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(nil)
		f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)

		resp, err := f.service.RecordPayment(ctx, f.userID, inv.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(100),
		})

		require.NoError(t, err)
		assert.Equal(t, "PARTIAL", resp.Status)
		assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(100)))
	})

	t.Run("replayed idempotency key books once", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "264.14")

		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("AddPayment", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
		f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(nil)
		f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)

		req := RecordPaymentRequest{Amount: decimal.NewFromInt(100), IdempotencyKey: "req-1"}
		_, err := f.service.RecordPayment(ctx, f.userID, inv.ID, req)
		require.NoError(t, err)
		resp, err := f.service.RecordPayment(ctx, f.userID, inv.ID, req)
		require.NoError(t, err)

		assert.True(t, resp.AmountPaid.Equal(decimal.NewFromInt(100)))
		assert.Len(t, inv.Payments, 1)
		f.invoiceRepo.AssertNumberOfCalls(t, "AddPayment", 1)
		f.invoiceRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
	})

	t.Run("stale invoice row surfaces a conflict", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "264.14")

		// A concurrent payment committed between our read and our write: the
		// version check misses and the whole booking rolls back.
		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
		f.invoiceRepo.On("AddPayment", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
		f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.RecordPayment(ctx, f.userID, inv.ID, RecordPaymentRequest{
			Amount: decimal.NewFromInt(100),
		})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.True(t, shared.IsDomainErrorWithCode(err, "CONCURRENCY_CONFLICT"))
	})
}

// =============================================================================
// Transitions and deletion
// =============================================================================

func TestMarkPaidService(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	inv := paidInvoice(t, f.userID, "200")
	_, err := inv.RecordPayment(decimal.NewFromInt(50), "wire", "")
	require.NoError(t, err)

	f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
	f.invoiceRepo.On("AddPayment", ctx, mock.AnythingOfType("*billing.Payment")).Return(nil)
	f.invoiceRepo.On("SaveWithLock", ctx, inv).Return(nil)
	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(f.settings("0"), nil)

	resp, err := f.service.MarkPaid(ctx, f.userID, inv.ID)

	require.NoError(t, err)
	assert.Equal(t, "PAID", resp.Status)
	require.Len(t, resp.Payments, 2)
	assert.True(t, resp.Payments[1].AutoSettlement)
	assert.True(t, resp.Payments[1].Amount.Equal(decimal.NewFromInt(150)))
}

func TestDeleteInvoiceService(t *testing.T) {
	ctx := context.Background()

	t.Run("unlinks entries then deletes", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "200")

		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
		f.entryRepo.On("UnlinkByInvoice", ctx, inv.ID).Return(nil)
		f.invoiceRepo.On("Delete", ctx, inv).Return(nil)

		err := f.service.Delete(ctx, f.userID, inv.ID)

		require.NoError(t, err)
		f.entryRepo.AssertCalled(t, "UnlinkByInvoice", ctx, inv.ID)
		f.invoiceRepo.AssertCalled(t, "Delete", ctx, inv)
	})

	t.Run("racing payment aborts the delete", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "200")

		// CanDelete passed on our read, but a payment committed before the
		// version-checked delete ran; the miss must surface, not be swallowed.
		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)
		f.entryRepo.On("UnlinkByInvoice", ctx, inv.ID).Return(nil)
		f.invoiceRepo.On("Delete", ctx, inv).Return(shared.ErrConcurrencyConflict)

		err := f.service.Delete(ctx, f.userID, inv.ID)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("blocked when payments exist", func(t *testing.T) {
		f := newFixture()
		inv := paidInvoice(t, f.userID, "200")
		_, err := inv.RecordPayment(decimal.NewFromInt(10), "", "")
		require.NoError(t, err)

		f.invoiceRepo.On("FindByIDForUser", ctx, f.userID, inv.ID).Return(inv, nil)

		err = f.service.Delete(ctx, f.userID, inv.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "payments")
		f.invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
