package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casafin/casafin-backend/internal/service"
)

// OwnerHandler handles owner-related HTTP requests
type OwnerHandler struct {
	ownerService *service.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(ownerService *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// RenameOwnerRequest represents the rename owner request body
type RenameOwnerRequest struct {
	DisplayName string `json:"displayName"`
}

// GetOwners handles GET /owners
func (h *OwnerHandler) GetOwners(c echo.Context) error {
	owners, err := h.ownerService.Owners()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, owners)
}

// RenameOwner handles PUT /owners/:id
func (h *OwnerHandler) RenameOwner(c echo.Context) error {
	var req RenameOwnerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.ownerService.Rename(c.Param("id"), req.DisplayName); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
