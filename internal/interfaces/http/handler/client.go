package handler

import (
	partnerapp "github.com/fcc/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClientHandler handles client roster endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create godoc
//
//	@Summary		Register a new client
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		partnerapp.CreateClientRequest	true	"Client creation request"
//	@Success		201		{object}	APIResponse[partnerapp.ClientResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients [post]
func (h *ClientHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, client)
}

// List godoc
//
//	@Summary		List clients
//	@Tags			clients
//	@Produce		json
//	@Param			page				query		int		false	"Page number"
//	@Param			page_size			query		int		false	"Page size"
//	@Param			search				query		string	false	"Search term (name, company, email)"
//	@Param			include_archived	query		bool	false	"Include archived clients"
//	@Success		200					{object}	APIResponse[[]partnerapp.ClientResponse]
//	@Failure		401					{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients [get]
func (h *ClientHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.ListClientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, clients, total, page, pageSize)
}

// GetByID godoc
//
//	@Summary		Get client by ID
//	@Tags			clients
//	@Produce		json
//	@Param			id	path		string	true	"Client ID"	format(uuid)
//	@Success		200	{object}	APIResponse[partnerapp.ClientResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients/{id} [get]
func (h *ClientHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), userID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Update godoc
//
//	@Summary		Update a client
//	@Tags			clients
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Client ID"	format(uuid)
//	@Param			request	body		partnerapp.UpdateClientRequest	true	"Client update request"
//	@Success		200		{object}	APIResponse[partnerapp.ClientResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients/{id} [put]
func (h *ClientHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), userID, clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Archive godoc
//
//	@Summary		Archive a client
//	@Tags			clients
//	@Produce		json
//	@Param			id	path		string	true	"Client ID"	format(uuid)
//	@Success		200	{object}	APIResponse[partnerapp.ClientResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients/{id}/archive [post]
func (h *ClientHandler) Archive(c *gin.Context) {
	h.flipArchive(c, true)
}

// Unarchive godoc
//
//	@Summary		Restore an archived client
//	@Tags			clients
//	@Produce		json
//	@Param			id	path		string	true	"Client ID"	format(uuid)
//	@Success		200	{object}	APIResponse[partnerapp.ClientResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients/{id}/unarchive [post]
func (h *ClientHandler) Unarchive(c *gin.Context) {
	h.flipArchive(c, false)
}

func (h *ClientHandler) flipArchive(c *gin.Context, archived bool) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var client *partnerapp.ClientResponse
	if archived {
		client, err = h.clientService.Archive(c.Request.Context(), userID, clientID)
	} else {
		client, err = h.clientService.Unarchive(c.Request.Context(), userID, clientID)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete godoc
//
//	@Summary		Delete a client
//	@Description	Deletes a client that has no projects
//	@Tags			clients
//	@Produce		json
//	@Param			id	path		string	true	"Client ID"	format(uuid)
//	@Success		204	{object}	nil
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/clients/{id} [delete]
func (h *ClientHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), userID, clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
