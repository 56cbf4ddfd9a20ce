package project

import (
	"time"

	"github.com/fcc/backend/internal/domain/project"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest represents a request to create a new project
type CreateProjectRequest struct {
	ClientID    uuid.UUID        `json:"client_id" binding:"required"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	BillingType string           `json:"billing_type" binding:"required,oneof=HOURLY FIXED"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	FixedFee    *decimal.Decimal `json:"fixed_fee"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	HourlyRate  *decimal.Decimal `json:"hourly_rate"`
	FixedFee    *decimal.Decimal `json:"fixed_fee"`
}

// SetStatusRequest moves a project between operational states
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE ON_HOLD COMPLETED HANDED_OVER"`
}

// CancelProjectRequest records which party cancelled
type CancelProjectRequest struct {
	CancelledBy string `json:"cancelled_by" binding:"required,oneof=client freelancer"`
}

// ListProjectsRequest bounds and filters a project listing
type ListProjectsRequest struct {
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
	ClientID        *uuid.UUID `form:"client_id"`
	Status          *string    `form:"status"`
	IncludeArchived bool       `form:"include_archived"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID           uuid.UUID        `json:"id"`
	ClientID     uuid.UUID        `json:"client_id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	BillingType  string           `json:"billing_type"`
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	FixedFee     *decimal.Decimal `json:"fixed_fee,omitempty"`
	Status       string           `json:"status"`
	IsArchived   bool             `json:"is_archived"`
	HandedOverAt *time.Time       `json:"handed_over_at,omitempty"`
	CancelledAt  *time.Time       `json:"cancelled_at,omitempty"`
	CancelledBy  *string          `json:"cancelled_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CancelProjectResponse reports the cancellation and its invoice cascade
type CancelProjectResponse struct {
	Project        ProjectResponse `json:"project"`
	VoidedInvoices []uuid.UUID     `json:"voided_invoices"`
}

// ToProjectResponse converts a domain project to its API shape
func ToProjectResponse(p *project.Project) ProjectResponse {
	var cancelledBy *string
	if p.CancelledBy != nil {
		s := string(*p.CancelledBy)
		cancelledBy = &s
	}
	return ProjectResponse{
		ID:           p.ID,
		ClientID:     p.ClientID,
		Name:         p.Name,
		Description:  p.Description,
		BillingType:  p.BillingType.String(),
		HourlyRate:   p.HourlyRate,
		FixedFee:     p.FixedFee,
		Status:       p.Status.String(),
		IsArchived:   p.IsArchived,
		HandedOverAt: p.HandedOverAt,
		CancelledAt:  p.CancelledAt,
		CancelledBy:  cancelledBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProjectResponses converts a slice of projects
func ToProjectResponses(projects []project.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}
