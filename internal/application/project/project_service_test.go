package project

import (
	"context"
	"testing"
	"time"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/partner"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

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

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter partner.ClientFilter) ([]*partner.Client, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*partner.Client), args.Error(1)
}

func (m *MockClientRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter partner.ClientFilter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) HasProjects(ctx context.Context, userID, clientID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

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

// =============================================================================
// Fixtures
// =============================================================================

type projectFixture struct {
	userID      uuid.UUID
	projectRepo *MockProjectRepository
	clientRepo  *MockClientRepository
	invoiceRepo *MockInvoiceRepository
	service     *ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		userID:      uuid.New(),
		projectRepo: new(MockProjectRepository),
		clientRepo:  new(MockClientRepository),
		invoiceRepo: new(MockInvoiceRepository),
	}
	scope := NewNoOpTransactionScope(f.projectRepo, f.invoiceRepo)
	f.service = NewProjectService(f.projectRepo, f.clientRepo, scope)
	return f
}

func (f *projectFixture) activeProject(t *testing.T) *project.Project {
	t.Helper()
	rate := decimal.RequireFromString("85")
	p, err := project.NewProject(f.userID, uuid.New(), "Website redesign", project.BillingHourly, &rate, nil)
	require.NoError(t, err)
	return p
}

func (f *projectFixture) invoiceWithStatus(t *testing.T, projectID uuid.UUID, status billing.InvoiceStatus) billing.Invoice {
	t.Helper()
	item, err := billing.NewInvoiceItem("Fee", decimal.NewFromInt(1), decimal.NewFromInt(100))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(f.userID, 1, uuid.New(), &projectID, "USD", decimal.Zero, billing.TermsNet15, time.Now(), []billing.InvoiceItem{item})
	require.NoError(t, err)
	if status == billing.InvoiceStatusSent {
		require.NoError(t, inv.MarkSent())
	}
	return *inv
}

// =============================================================================
// Tests
// =============================================================================

func TestCreateProjectService(t *testing.T) {
	ctx := context.Background()

	t.Run("creates for an existing client", func(t *testing.T) {
		f := newProjectFixture()
		client, err := partner.NewClient(f.userID, "Acme Corp", "", "")
		require.NoError(t, err)
		rate := decimal.RequireFromString("85")

		f.clientRepo.On("FindByIDForUser", ctx, f.userID, client.ID).Return(client, nil)
		f.projectRepo.On("Save", ctx, mock.AnythingOfType("*project.Project")).Return(nil)

		resp, err := f.service.Create(ctx, f.userID, CreateProjectRequest{
			ClientID:    client.ID,
			Name:        "Website redesign",
			BillingType: "HOURLY",
			HourlyRate:  &rate,
		})

		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Equal(t, "HOURLY", resp.BillingType)
	})

	t.Run("rejects invalid billing parameters", func(t *testing.T) {
		f := newProjectFixture()
		client, err := partner.NewClient(f.userID, "Acme Corp", "", "")
		require.NoError(t, err)

		f.clientRepo.On("FindByIDForUser", ctx, f.userID, client.ID).Return(client, nil)

		_, err = f.service.Create(ctx, f.userID, CreateProjectRequest{
			ClientID:    client.ID,
			Name:        "Website redesign",
			BillingType: "HOURLY",
		})

		assert.Error(t, err)
		f.projectRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSetStatusService(t *testing.T) {
	ctx := context.Background()
	f := newProjectFixture()
	proj := f.activeProject(t)

	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.projectRepo.On("Save", ctx, proj).Return(nil)

	resp, err := f.service.SetStatus(ctx, f.userID, proj.ID, SetStatusRequest{Status: "HANDED_OVER"})

	require.NoError(t, err)
	assert.Equal(t, "HANDED_OVER", resp.Status)
	assert.True(t, resp.IsArchived)
	assert.NotNil(t, resp.HandedOverAt)
}

func TestCancelProjectService(t *testing.T) {
	ctx := context.Background()

	t.Run("freelancer cancel voids draft and sent invoices", func(t *testing.T) {
		f := newProjectFixture()
		proj := f.activeProject(t)
		draft := f.invoiceWithStatus(t, proj.ID, billing.InvoiceStatusDraft)
		sent := f.invoiceWithStatus(t, proj.ID, billing.InvoiceStatusSent)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.invoiceRepo.On("FindByProjectWithStatuses", ctx, f.userID, proj.ID,
			[]billing.InvoiceStatus{billing.InvoiceStatusDraft, billing.InvoiceStatusSent}).
			Return([]billing.Invoice{draft, sent}, nil)
		f.invoiceRepo.On("SaveWithLock", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)
		f.projectRepo.On("Save", ctx, proj).Return(nil)

		resp, err := f.service.Cancel(ctx, f.userID, proj.ID, CancelProjectRequest{CancelledBy: "freelancer"})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED_BY_FREELANCER", resp.Project.Status)
		assert.True(t, resp.Project.IsArchived)
		assert.ElementsMatch(t, []uuid.UUID{draft.ID, sent.ID}, resp.VoidedInvoices)
		f.invoiceRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})

	t.Run("client cancel leaves invoices untouched", func(t *testing.T) {
		f := newProjectFixture()
		proj := f.activeProject(t)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.projectRepo.On("Save", ctx, proj).Return(nil)

		resp, err := f.service.Cancel(ctx, f.userID, proj.ID, CancelProjectRequest{CancelledBy: "client"})

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED_BY_CLIENT", resp.Project.Status)
		assert.Empty(t, resp.VoidedInvoices)
		f.invoiceRepo.AssertNotCalled(t, "FindByProjectWithStatuses", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("double cancel conflicts", func(t *testing.T) {
		f := newProjectFixture()
		proj := f.activeProject(t)
		require.NoError(t, proj.Cancel(project.CancelledByClient))

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)

		_, err := f.service.Cancel(ctx, f.userID, proj.ID, CancelProjectRequest{CancelledBy: "client"})

		assert.Error(t, err)
	})
}

func TestDeleteProjectService(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes when no paid invoices exist", func(t *testing.T) {
		f := newProjectFixture()
		proj := f.activeProject(t)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.invoiceRepo.On("HasInvoicesWithPayments", ctx, f.userID, proj.ID).Return(false, nil)
		f.projectRepo.On("DeleteForUser", ctx, f.userID, proj.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, f.userID, proj.ID))
	})

	t.Run("blocked by paid invoices", func(t *testing.T) {
		f := newProjectFixture()
		proj := f.activeProject(t)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.invoiceRepo.On("HasInvoicesWithPayments", ctx, f.userID, proj.ID).Return(true, nil)

		err := f.service.Delete(ctx, f.userID, proj.ID)

		assert.Error(t, err)
		f.projectRepo.AssertNotCalled(t, "DeleteForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
