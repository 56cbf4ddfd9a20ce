package partner

import (
	"context"

	"github.com/fcc/backend/internal/domain/partner"
	"github.com/fcc/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles the client registry
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, userID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(userID, req.Name, req.Email, req.Company)
	if err != nil {
		return nil, err
	}
	if req.Phone != "" || req.Address != "" {
		if err := client.SetContact(req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		client.SetNotes(req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Get retrieves a client by ID
func (s *ClientService) Get(ctx context.Context, userID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForUser(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, userID uuid.UUID, req ListClientsRequest) ([]ClientResponse, int64, error) {
	filter := partner.ClientFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.IncludeArchived = req.IncludeArchived

	clients, err := s.clientRepo.FindAllForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToClientResponses(clients), total, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, userID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForUser(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	name, email, company := client.Name, client.Email, client.Company
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Company != nil {
		company = *req.Company
	}
	if err := client.Update(name, email, company); err != nil {
		return nil, err
	}

	if req.Phone != nil || req.Address != nil {
		phone, address := client.Phone, client.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := client.SetContact(phone, address); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		client.SetNotes(*req.Notes)
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Archive hides a client from active listings
func (s *ClientService) Archive(ctx context.Context, userID, clientID uuid.UUID) (*ClientResponse, error) {
	return s.flipArchive(ctx, userID, clientID, true)
}

// Unarchive restores an archived client
func (s *ClientService) Unarchive(ctx context.Context, userID, clientID uuid.UUID) (*ClientResponse, error) {
	return s.flipArchive(ctx, userID, clientID, false)
}

func (s *ClientService) flipArchive(ctx context.Context, userID, clientID uuid.UUID, archived bool) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForUser(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	if archived {
		err = client.Archive()
	} else {
		err = client.Unarchive()
	}
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client that owns no projects
func (s *ClientService) Delete(ctx context.Context, userID, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByIDForUser(ctx, userID, clientID); err != nil {
		return err
	}

	hasProjects, err := s.clientRepo.HasProjects(ctx, userID, clientID)
	if err != nil {
		return err
	}
	if hasProjects {
		return shared.NewConflictError("Cannot delete a client with projects. Archive it instead")
	}

	return s.clientRepo.DeleteForUser(ctx, userID, clientID)
}
