package project

import (
	"context"

	"github.com/fcc/backend/internal/domain/billing"
	"github.com/fcc/backend/internal/domain/partner"
	"github.com/fcc/backend/internal/domain/project"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProjectService handles project CRUD and the lifecycle machine
type ProjectService struct {
	projectRepo project.ProjectRepository
	clientRepo  partner.ClientRepository
	txScope     TransactionScope
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectRepo project.ProjectRepository,
	clientRepo partner.ClientRepository,
	txScope TransactionScope,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		txScope:     txScope,
	}
}

// Create creates a new active project for an existing client
func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, req CreateProjectRequest) (*ProjectResponse, error) {
	if _, err := s.clientRepo.FindByIDForUser(ctx, userID, req.ClientID); err != nil {
		return nil, err
	}

	p, err := project.NewProject(userID, req.ClientID, req.Name, project.BillingType(req.BillingType), req.HourlyRate, req.FixedFee)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		p.SetDescription(req.Description)
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// Get retrieves a project by ID
func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	response := ToProjectResponse(p)
	return &response, nil
}

// List retrieves projects with filtering and pagination
func (s *ProjectService) List(ctx context.Context, userID uuid.UUID, req ListProjectsRequest) ([]ProjectResponse, int64, error) {
	filter := project.ProjectFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	filter.ClientID = req.ClientID
	filter.IncludeArchived = req.IncludeArchived
	if req.Status != nil {
		status := project.ProjectStatus(*req.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("Unknown project status filter")
		}
		filter.Status = &status
	}

	projects, err := s.projectRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.projectRepo.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToProjectResponses(projects), total, nil
}

// Update applies a partial update to name, description and rates
func (s *ProjectService) Update(ctx context.Context, userID, projectID uuid.UUID, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status.IsCancelled() {
		return nil, shared.NewConflictError("Cannot update a cancelled project")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.SetDescription(*req.Description)
	}
	if req.HourlyRate != nil || req.FixedFee != nil {
		if err := p.UpdateRates(req.HourlyRate, req.FixedFee); err != nil {
			return nil, err
		}
	}

	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}
	response := ToProjectResponse(p)
	return &response, nil
}

// SetStatus moves the project between operational states
func (s *ProjectService) SetStatus(ctx context.Context, userID, projectID uuid.UUID, req SetStatusRequest) (*ProjectResponse, error) {
	p, err := s.projectRepo.FindByIDForUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.SetStatus(project.ProjectStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.projectRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProjectResponse(p)
	return &response, nil
}

// Cancel runs the cancellation cascade. A freelancer cancellation voids the
// project's DRAFT and SENT invoices in the same transaction that flips the
// project status; a client cancellation leaves invoices untouched.
func (s *ProjectService) Cancel(ctx context.Context, userID, projectID uuid.UUID, req CancelProjectRequest) (*CancelProjectResponse, error) {
	by := project.CancelledBy(req.CancelledBy)

	var response *CancelProjectResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		p, err := repos.ProjectRepo().FindByIDForUser(ctx, userID, projectID)
		if err != nil {
			return err
		}

		voided := make([]uuid.UUID, 0)
		if by == project.CancelledByFreelancer {
			invoices, err := repos.InvoiceRepo().FindByProjectWithStatuses(ctx, userID, projectID,
				[]billing.InvoiceStatus{billing.InvoiceStatusDraft, billing.InvoiceStatusSent})
			if err != nil {
				return err
			}
			for i := range invoices {
				if err := invoices[i].ForceVoid(); err != nil {
					return err
				}
				if err := repos.InvoiceRepo().SaveWithLock(ctx, &invoices[i]); err != nil {
					return err
				}
				voided = append(voided, invoices[i].ID)
			}
		}

		if err := p.Cancel(by); err != nil {
			return err
		}
		if err := repos.ProjectRepo().Save(ctx, p); err != nil {
			return err
		}

		response = &CancelProjectResponse{
			Project:        ToProjectResponse(p),
			VoidedInvoices: voided,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Delete hard-deletes a project. Blocked while any of its invoices carries
// a payment; paid history is permanent.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ProjectRepo().FindByIDForUser(ctx, userID, projectID); err != nil {
			return err
		}

		hasPaid, err := repos.InvoiceRepo().HasInvoicesWithPayments(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if hasPaid {
			return shared.NewConflictError("Cannot delete a project with paid invoices")
		}

		return repos.ProjectRepo().DeleteForUser(ctx, userID, projectID)
	})
}
