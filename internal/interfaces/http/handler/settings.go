package handler

import (
	identityapp "github.com/fcc/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles per-user billing defaults
type SettingsHandler struct {
	BaseHandler
	settingsService *identityapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *identityapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get godoc
//
//	@Summary		Get the user's settings
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	APIResponse[identityapp.SettingsResponse]
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update godoc
//
//	@Summary		Update the user's settings
//	@Tags			settings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.UpdateSettingsRequest	true	"Settings update"
//	@Success		200		{object}	APIResponse[identityapp.SettingsResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, settings)
}
