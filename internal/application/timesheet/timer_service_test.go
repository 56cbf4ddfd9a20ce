package timesheet

import (
	"context"
	"testing"
	"time"

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

// =============================================================================
// Fixtures
// =============================================================================

type timerFixture struct {
	userID       uuid.UUID
	entryRepo    *MockTimeEntryRepository
	projectRepo  *MockProjectRepository
	settingsRepo *MockSettingsRepository
	service      *TimerService
}

func newTimerFixture() *timerFixture {
	f := &timerFixture{
		userID:       uuid.New(),
		entryRepo:    new(MockTimeEntryRepository),
		projectRepo:  new(MockProjectRepository),
		settingsRepo: new(MockSettingsRepository),
	}
	scope := NewNoOpTransactionScope(f.entryRepo, f.projectRepo)
	f.service = NewTimerService(f.entryRepo, f.projectRepo, f.settingsRepo, scope)
	return f
}

func (f *timerFixture) activeProject(t *testing.T) *project.Project {
	t.Helper()
	rate := decimal.RequireFromString("85")
	p, err := project.NewProject(f.userID, uuid.New(), "Website redesign", project.BillingHourly, &rate, nil)
	require.NoError(t, err)
	return p
}

// =============================================================================
// Tests
// =============================================================================

func TestStartTimerService(t *testing.T) {
	ctx := context.Background()

	t.Run("starts when nothing is running", func(t *testing.T) {
		f := newTimerFixture()
		proj := f.activeProject(t)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.entryRepo.On("CountRunningForUser", ctx, f.userID).Return(int64(0), nil)
		f.entryRepo.On("Save", ctx, mock.AnythingOfType("*timesheet.TimeEntry")).Return(nil)

		resp, err := f.service.StartTimer(ctx, f.userID, StartTimerRequest{ProjectID: proj.ID, Description: "API work"})

		require.NoError(t, err)
		assert.True(t, resp.Running)
		assert.Equal(t, proj.ID, resp.ProjectID)
	})

	t.Run("conflicts when a timer is already running", func(t *testing.T) {
		f := newTimerFixture()
		proj := f.activeProject(t)

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
		f.entryRepo.On("CountRunningForUser", ctx, f.userID).Return(int64(1), nil)

		_, err := f.service.StartTimer(ctx, f.userID, StartTimerRequest{ProjectID: proj.ID})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already running")
		f.entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("refuses cancelled projects", func(t *testing.T) {
		f := newTimerFixture()
		proj := f.activeProject(t)
		require.NoError(t, proj.Cancel(project.CancelledByClient))

		f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)

		_, err := f.service.StartTimer(ctx, f.userID, StartTimerRequest{ProjectID: proj.ID})

		assert.Error(t, err)
	})
}

func TestStopTimerService(t *testing.T) {
	ctx := context.Background()

	t.Run("stops the running entry", func(t *testing.T) {
		f := newTimerFixture()
		entry, err := timesheet.StartEntry(f.userID, uuid.New(), "work")
		require.NoError(t, err)
		entry.StartedAt = time.Now().Add(-30 * time.Minute)

		f.entryRepo.On("FindRunningForUser", ctx, f.userID).Return(entry, nil)
		f.entryRepo.On("Save", ctx, entry).Return(nil)

		resp, err := f.service.StopTimer(ctx, f.userID, StopTimerRequest{})

		require.NoError(t, err)
		assert.False(t, resp.Running)
		require.NotNil(t, resp.DurationMin)
		assert.Equal(t, 30, *resp.DurationMin)
	})

	t.Run("stops the entry named in the request", func(t *testing.T) {
		f := newTimerFixture()
		entry, err := timesheet.StartEntry(f.userID, uuid.New(), "work")
		require.NoError(t, err)
		entry.StartedAt = time.Now().Add(-45 * time.Minute)

		f.entryRepo.On("FindByIDForUser", ctx, f.userID, entry.ID).Return(entry, nil)
		f.entryRepo.On("Save", ctx, entry).Return(nil)

		resp, err := f.service.StopTimer(ctx, f.userID, StopTimerRequest{EntryID: &entry.ID})

		require.NoError(t, err)
		assert.False(t, resp.Running)
		f.entryRepo.AssertNotCalled(t, "FindRunningForUser", mock.Anything, mock.Anything)
	})

	t.Run("no running timer is a conflict", func(t *testing.T) {
		f := newTimerFixture()
		f.entryRepo.On("FindRunningForUser", ctx, f.userID).Return(nil, shared.ErrNotFound)

		_, err := f.service.StopTimer(ctx, f.userID, StopTimerRequest{})

		assert.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, "CONFLICT"))
	})

	t.Run("named entry already finished is a conflict", func(t *testing.T) {
		f := newTimerFixture()
		minutes := 45
		entry, err := timesheet.NewManualEntry(f.userID, uuid.New(), "", nil, nil, &minutes)
		require.NoError(t, err)

		f.entryRepo.On("FindByIDForUser", ctx, f.userID, entry.ID).Return(entry, nil)

		_, err = f.service.StopTimer(ctx, f.userID, StopTimerRequest{EntryID: &entry.ID})

		assert.Error(t, err)
		assert.True(t, shared.IsDomainErrorWithCode(err, "CONFLICT"))
		f.entryRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestGetActiveService(t *testing.T) {
	ctx := context.Background()
	f := newTimerFixture()

	f.entryRepo.On("FindRunningForUser", ctx, f.userID).Return(nil, shared.ErrNotFound)

	resp, err := f.service.GetActive(ctx, f.userID)

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestDeleteEntryService(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes unbilled entries", func(t *testing.T) {
		f := newTimerFixture()
		minutes := 45
		entry, err := timesheet.NewManualEntry(f.userID, uuid.New(), "", nil, nil, &minutes)
		require.NoError(t, err)

		f.entryRepo.On("FindByIDForUser", ctx, f.userID, entry.ID).Return(entry, nil)
		f.entryRepo.On("DeleteForUser", ctx, f.userID, entry.ID).Return(nil)

		require.NoError(t, f.service.DeleteEntry(ctx, f.userID, entry.ID))
	})

	t.Run("refuses billed entries", func(t *testing.T) {
		f := newTimerFixture()
		minutes := 45
		entry, err := timesheet.NewManualEntry(f.userID, uuid.New(), "", nil, nil, &minutes)
		require.NoError(t, err)
		require.NoError(t, entry.MarkBilled(uuid.New()))

		f.entryRepo.On("FindByIDForUser", ctx, f.userID, entry.ID).Return(entry, nil)

		err = f.service.DeleteEntry(ctx, f.userID, entry.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "billed")
		f.entryRepo.AssertNotCalled(t, "DeleteForUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProjectSummaryService(t *testing.T) {
	ctx := context.Background()
	f := newTimerFixture()
	proj := f.activeProject(t)

	settings := identity.DefaultSettings(f.userID)
	settings.Rounding = timesheet.RoundingNearest15

	mkEntry := func(minutes int) timesheet.TimeEntry {
		e, err := timesheet.NewManualEntry(f.userID, proj.ID, "", nil, nil, &minutes)
		require.NoError(t, err)
		return *e
	}
	entries := []timesheet.TimeEntry{mkEntry(52), mkEntry(90)}

	f.settingsRepo.On("FindByUser", ctx, f.userID).Return(settings, nil)
	f.projectRepo.On("FindByIDForUser", ctx, f.userID, proj.ID).Return(proj, nil)
	f.entryRepo.On("FindUnbilledForProject", ctx, f.userID, proj.ID, mock.Anything).Return(entries, nil)

	summary, err := f.service.ProjectSummary(ctx, f.userID, proj.ID, timesheet.DateRange{})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.EntryCount)
	assert.Equal(t, 142, summary.TotalMinutes)
	assert.Equal(t, 135, summary.RoundedMinutes) // 52->45, 90->90
	assert.True(t, summary.Hours.Equal(decimal.RequireFromString("2.25")), summary.Hours.String())
	require.NotNil(t, summary.Amount)
	assert.True(t, summary.Amount.Equal(decimal.RequireFromString("191.25")), summary.Amount.String())
}

func TestListEntriesClampsLimit(t *testing.T) {
	ctx := context.Background()
	f := newTimerFixture()

	f.entryRepo.On("FindRecentForUser", ctx, f.userID, maxListLimit).Return([]timesheet.TimeEntry{}, nil)

	_, err := f.service.ListEntries(ctx, f.userID, ListEntriesRequest{Limit: 10000})

	require.NoError(t, err)
	f.entryRepo.AssertCalled(t, "FindRecentForUser", ctx, f.userID, maxListLimit)
}
