package handler

import (
	"time"

	timesheetapp "github.com/fcc/backend/internal/application/timesheet"
	"github.com/fcc/backend/internal/domain/timesheet"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TimesheetHandler handles the running timer and time entry endpoints
type TimesheetHandler struct {
	BaseHandler
	timerService *timesheetapp.TimerService
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(timerService *timesheetapp.TimerService) *TimesheetHandler {
	return &TimesheetHandler{timerService: timerService}
}

// summaryQuery bounds a project summary request
type summaryQuery struct {
	From *time.Time `form:"from"`
	To   *time.Time `form:"to"`
}

// StartTimer godoc
//
//	@Summary		Start the running timer
//	@Description	Starts a timer on a project; fails if one is already running
//	@Tags			time
//	@Accept			json
//	@Produce		json
//	@Param			request	body		timesheetapp.StartTimerRequest	true	"Timer start request"
//	@Success		201		{object}	APIResponse[timesheetapp.TimeEntryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/timer/start [post]
func (h *TimesheetHandler) StartTimer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req timesheetapp.StartTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.timerService.StartTimer(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// StopTimer godoc
//
//	@Summary		Stop the running timer
//	@Description	Stops the entry named in the body, or the sole running entry; conflicts when nothing is running
//	@Tags			time
//	@Accept			json
//	@Produce		json
//	@Param			request	body		timesheetapp.StopTimerRequest	false	"Entry to stop"
//	@Success		200		{object}	APIResponse[timesheetapp.TimeEntryResponse]
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/timer/stop [post]
func (h *TimesheetHandler) StopTimer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req timesheetapp.StopTimerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	entry, err := h.timerService.StopTimer(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// GetActive godoc
//
//	@Summary		Get the running timer
//	@Tags			time
//	@Produce		json
//	@Success		200	{object}	APIResponse[timesheetapp.TimeEntryResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/timer [get]
func (h *TimesheetHandler) GetActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entry, err := h.timerService.GetActive(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entry)
}

// AddManualEntry godoc
//
//	@Summary		Log a finished work session
//	@Tags			time
//	@Accept			json
//	@Produce		json
//	@Param			request	body		timesheetapp.ManualEntryRequest	true	"Manual entry request"
//	@Success		201		{object}	APIResponse[timesheetapp.TimeEntryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/entries [post]
func (h *TimesheetHandler) AddManualEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req timesheetapp.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.timerService.AddManualEntry(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, entry)
}

// ListEntries godoc
//
//	@Summary		List time entries
//	@Tags			time
//	@Produce		json
//	@Param			limit	query		int		false	"Maximum entries to return"
//	@Param			from	query		string	false	"Lower bound on start time (RFC 3339)"
//	@Param			to		query		string	false	"Upper bound on start time (RFC 3339)"
//	@Success		200		{object}	APIResponse[[]timesheetapp.TimeEntryResponse]
//	@Failure		401		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/entries [get]
func (h *TimesheetHandler) ListEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req timesheetapp.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.timerService.ListEntries(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// DeleteEntry godoc
//
//	@Summary		Delete a time entry
//	@Description	Deletes an unbilled entry
//	@Tags			time
//	@Produce		json
//	@Param			id	path		string	true	"Entry ID"	format(uuid)
//	@Success		204	{object}	nil
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/entries/{id} [delete]
func (h *TimesheetHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	if err := h.timerService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ProjectSummary godoc
//
//	@Summary		Summarize a project's unbilled work
//	@Tags			time
//	@Produce		json
//	@Param			id		path		string	true	"Project ID"	format(uuid)
//	@Param			from	query		string	false	"Lower bound on start time (RFC 3339)"
//	@Param			to		query		string	false	"Upper bound on start time (RFC 3339)"
//	@Success		200		{object}	APIResponse[timesheetapp.ProjectSummaryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/time/projects/{id}/summary [get]
func (h *TimesheetHandler) ProjectSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid project ID format")
		return
	}

	var q summaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.timerService.ProjectSummary(c.Request.Context(), userID, projectID, timesheet.DateRange{
		From: q.From,
		To:   q.To,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
