package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// ClosingHandler handles month closeout HTTP requests
type ClosingHandler struct {
	closingService *service.ClosingService
	setupService   *service.SetupService
	gate           *service.ConfirmationGate
	publisher      websocket.EventPublisher
}

// NewClosingHandler creates a new ClosingHandler
func NewClosingHandler(closingService *service.ClosingService, setupService *service.SetupService, gate *service.ConfirmationGate, publisher websocket.EventPublisher) *ClosingHandler {
	return &ClosingHandler{
		closingService: closingService,
		setupService:   setupService,
		gate:           gate,
		publisher:      publisher,
	}
}

// CloseMonthRequest represents the close month request body
type CloseMonthRequest struct {
	Note *string `json:"note,omitempty"`
}

// CancelConfirmationRequest represents the cancel pending confirmation body
type CancelConfirmationRequest struct {
	Action string   `json:"action"`
	Months []string `json:"months"`
}

// CloseMonth handles POST /months/:month/close
func (h *ClosingHandler) CloseMonth(c echo.Context) error {
	var req CloseMonthRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	month := c.Param("month")
	if err := h.closingService.Close(month, req.Note); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.MonthClosed(map[string]string{"month": month}))
	return c.NoContent(http.StatusNoContent)
}

// GetMonthStatus handles GET /months/:month/status
func (h *ClosingHandler) GetMonthStatus(c echo.Context) error {
	closed, err := h.closingService.IsClosed(c.Param("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"closed": closed})
}

// GetClosings handles GET /months/closings
func (h *ClosingHandler) GetClosings(c echo.Context) error {
	closings, err := h.closingService.Closings()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, closings)
}

// GetKnownMonths handles GET /months/known
func (h *ClosingHandler) GetKnownMonths(c echo.Context) error {
	months, err := h.closingService.KnownMonths()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, months)
}

// CancelConfirmation handles POST /confirmations/cancel
func (h *ClosingHandler) CancelConfirmation(c echo.Context) error {
	var req CancelConfirmationRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	h.gate.Cancel(service.ActionKind(req.Action), req.Months...)
	return c.NoContent(http.StatusNoContent)
}

// GetFirstRun handles GET /setup/first-run
func (h *ClosingHandler) GetFirstRun(c echo.Context) error {
	firstRun, err := h.setupService.FirstRun()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"firstRun": firstRun})
}
