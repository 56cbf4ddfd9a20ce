package timesheet

import (
	"time"

	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StartTimerRequest represents a request to start the running timer
type StartTimerRequest struct {
	ProjectID   uuid.UUID `json:"project_id" binding:"required"`
	Description string    `json:"description" binding:"max=500"`
}

// StopTimerRequest optionally names the entry to stop. When no ID is given
// the user's sole running entry is stopped.
type StopTimerRequest struct {
	EntryID *uuid.UUID `json:"entry_id"`
}

// ManualEntryRequest represents a request to log a finished work session
type ManualEntryRequest struct {
	ProjectID   uuid.UUID  `json:"project_id" binding:"required"`
	Description string     `json:"description" binding:"max=500"`
	StartedAt   *time.Time `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	DurationMin *int       `json:"duration_min" binding:"omitempty,min=1"`
}

// ListEntriesRequest bounds a listing query
type ListEntriesRequest struct {
	Limit int        `form:"limit"`
	From  *time.Time `form:"from"`
	To    *time.Time `form:"to"`
}

// TimeEntryResponse represents a time entry in API responses
type TimeEntryResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Description string     `json:"description"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty"`
	Running     bool       `json:"running"`
	Billed      bool       `json:"billed"`
	InvoiceID   *uuid.UUID `json:"invoice_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ProjectSummaryResponse aggregates a project's unbilled work
type ProjectSummaryResponse struct {
	ProjectID      uuid.UUID        `json:"project_id"`
	EntryCount     int              `json:"entry_count"`
	TotalMinutes   int              `json:"total_minutes"`   // raw sum
	RoundedMinutes int              `json:"rounded_minutes"` // per-entry rounding applied
	Hours          decimal.Decimal  `json:"hours"`           // rounded minutes / 60 at 2dp
	Amount         *decimal.Decimal `json:"amount,omitempty"` // hourly projects only
}

// ToTimeEntryResponse converts a domain time entry to its API shape
func ToTimeEntryResponse(e *timesheet.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		Description: e.Description,
		StartedAt:   e.StartedAt,
		EndedAt:     e.EndedAt,
		DurationMin: e.DurationMin,
		Running:     e.IsRunning(),
		Billed:      e.Billed,
		InvoiceID:   e.InvoiceID,
		CreatedAt:   e.CreatedAt,
	}
}

// ToTimeEntryResponses converts a slice of entries
func ToTimeEntryResponses(entries []timesheet.TimeEntry) []TimeEntryResponse {
	out := make([]TimeEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToTimeEntryResponse(&entries[i])
	}
	return out
}
