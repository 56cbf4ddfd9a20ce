package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/fcc/backend/internal/domain/identity"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// TimerService handles time tracking operations
type TimerService struct {
	entryRepo    timesheet.TimeEntryRepository
	projectRepo  project.ProjectRepository
	settingsRepo identity.SettingsRepository
	txScope      TransactionScope
}

// NewTimerService creates a new TimerService
func NewTimerService(
	entryRepo timesheet.TimeEntryRepository,
	projectRepo project.ProjectRepository,
	settingsRepo identity.SettingsRepository,
	txScope TransactionScope,
) *TimerService {
	return &TimerService{
		entryRepo:    entryRepo,
		projectRepo:  projectRepo,
		settingsRepo: settingsRepo,
		txScope:      txScope,
	}
}

// StartTimer starts the user's running timer. The running-timer check and
// the insert share one transaction so two concurrent starts cannot both
// slip through; the partial unique index on running entries backstops it.
func (s *TimerService) StartTimer(ctx context.Context, userID uuid.UUID, req StartTimerRequest) (*TimeEntryResponse, error) {
	var response *TimeEntryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		proj, err := repos.ProjectRepo().FindByIDForUser(ctx, userID, req.ProjectID)
		if err != nil {
			return err
		}
		if proj.Status.IsCancelled() {
			return shared.NewConflictError("Cannot track time on a cancelled project")
		}

		running, err := repos.EntryRepo().CountRunningForUser(ctx, userID)
		if err != nil {
			return err
		}
		if running > 0 {
			return shared.NewConflictError("A timer is already running. Stop it first")
		}

		entry, err := timesheet.StartEntry(userID, req.ProjectID, req.Description)
		if err != nil {
			return err
		}
		if err := repos.EntryRepo().Save(ctx, entry); err != nil {
			return err
		}

		r := ToTimeEntryResponse(entry)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// StopTimer stops a running timer: the entry named in the request, or the
// user's sole running entry. Nothing to stop is a state conflict, not a
// missing resource; the caller has no timer to resolve first.
func (s *TimerService) StopTimer(ctx context.Context, userID uuid.UUID, req StopTimerRequest) (*TimeEntryResponse, error) {
	var (
		entry *timesheet.TimeEntry
		err   error
	)
	if req.EntryID != nil {
		entry, err = s.entryRepo.FindByIDForUser(ctx, userID, *req.EntryID)
	} else {
		entry, err = s.entryRepo.FindRunningForUser(ctx, userID)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return nil, shared.NewConflictError("No timer is running")
		}
		return nil, err
	}

	if err := entry.Stop(time.Now()); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToTimeEntryResponse(entry)
	return &response, nil
}

// GetActive returns the user's running timer, or nil when none is running
func (s *TimerService) GetActive(ctx context.Context, userID uuid.UUID) (*TimeEntryResponse, error) {
	entry, err := s.entryRepo.FindRunningForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) || shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
			return nil, nil
		}
		return nil, err
	}
	response := ToTimeEntryResponse(entry)
	return &response, nil
}

// AddManualEntry logs a finished work session directly
func (s *TimerService) AddManualEntry(ctx context.Context, userID uuid.UUID, req ManualEntryRequest) (*TimeEntryResponse, error) {
	var response *TimeEntryResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		proj, err := repos.ProjectRepo().FindByIDForUser(ctx, userID, req.ProjectID)
		if err != nil {
			return err
		}
		if proj.Status.IsCancelled() {
			return shared.NewConflictError("Cannot track time on a cancelled project")
		}

		entry, err := timesheet.NewManualEntry(userID, req.ProjectID, req.Description, req.StartedAt, req.EndedAt, req.DurationMin)
		if err != nil {
			return err
		}
		if err := repos.EntryRepo().Save(ctx, entry); err != nil {
			return err
		}

		r := ToTimeEntryResponse(entry)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListEntries lists the user's entries newest-first
func (s *TimerService) ListEntries(ctx context.Context, userID uuid.UUID, req ListEntriesRequest) ([]TimeEntryResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var entries []timesheet.TimeEntry
	var err error
	if req.From != nil || req.To != nil {
		entries, err = s.entryRepo.FindFinishedInRange(ctx, userID, timesheet.DateRange{From: req.From, To: req.To})
	} else {
		entries, err = s.entryRepo.FindRecentForUser(ctx, userID, limit)
	}
	if err != nil {
		return nil, err
	}
	return ToTimeEntryResponses(entries), nil
}

// DeleteEntry removes an unbilled entry from the ledger
func (s *TimerService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	entry, err := s.entryRepo.FindByIDForUser(ctx, userID, entryID)
	if err != nil {
		return err
	}
	if !entry.CanDelete() {
		return shared.NewConflictError("Cannot delete a billed time entry. Delete its invoice first")
	}
	return s.entryRepo.DeleteForUser(ctx, userID, entryID)
}

// ProjectSummary totals a project's unbilled work. Each entry's raw minutes
// pass through the user's rounding policy before summing, matching what an
// invoice generated right now would bill.
func (s *TimerService) ProjectSummary(ctx context.Context, userID uuid.UUID, projectID uuid.UUID, rng timesheet.DateRange) (*ProjectSummaryResponse, error) {
	var rounding timesheet.RoundingPolicy = timesheet.RoundingNone
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if err == nil {
		rounding = settings.Rounding
	} else if !errors.Is(err, shared.ErrNotFound) && !shared.IsDomainErrorWithCode(err, "NOT_FOUND") {
		return nil, err
	}

	proj, err := s.projectRepo.FindByIDForUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.FindUnbilledForProject(ctx, userID, projectID, rng)
	if err != nil {
		return nil, err
	}

	summary := &ProjectSummaryResponse{ProjectID: projectID}
	for i := range entries {
		raw := entries[i].BillableMinutes()
		if raw == 0 {
			continue
		}
		summary.EntryCount++
		summary.TotalMinutes += raw
		summary.RoundedMinutes += rounding.Apply(raw)
	}
	summary.Hours = decimal.NewFromInt(int64(summary.RoundedMinutes)).
		Div(decimal.NewFromInt(60)).Round(2)

	if proj.BillingType == project.BillingHourly && proj.HourlyRate != nil {
		amount := summary.Hours.Mul(*proj.HourlyRate).Round(2)
		summary.Amount = &amount
	}

	return summary, nil
}
