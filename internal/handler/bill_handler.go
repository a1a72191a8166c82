package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// BillHandler handles bill-related HTTP requests
type BillHandler struct {
	billService *service.BillService
	publisher   websocket.EventPublisher
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *service.BillService, publisher websocket.EventPublisher) *BillHandler {
	return &BillHandler{billService: billService, publisher: publisher}
}

// CreateBillRequest represents the create bill request body
type CreateBillRequest struct {
	OwnerID       string  `json:"ownerId"`
	Name          string  `json:"name"`
	DueDay        *int    `json:"dueDay,omitempty"`
	DefaultAmount *string `json:"defaultAmount,omitempty"`
}

// SetBillActiveRequest represents the activate/deactivate request body
type SetBillActiveRequest struct {
	Active bool `json:"active"`
}

// SetBillPaidRequest represents the bill payment update request body
type SetBillPaidRequest struct {
	Paid       bool    `json:"paid"`
	PaidAmount *string `json:"paidAmount,omitempty"`
	PaidDate   *string `json:"paidDate,omitempty"`
	Note       *string `json:"note,omitempty"`
	Confirmed  bool    `json:"confirmed"`
}

// GetBills handles GET /bills?active=true
func (h *BillHandler) GetBills(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	bills, err := h.billService.Bills(activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, bills)
}

// CreateBill handles POST /bills
func (h *BillHandler) CreateBill(c echo.Context) error {
	var req CreateBillRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var defaultAmount *decimal.Decimal
	if req.DefaultAmount != nil && *req.DefaultAmount != "" {
		parsed, err := decimal.NewFromString(*req.DefaultAmount)
		if err != nil {
			return NewValidationError(c, "Invalid default amount", []ValidationError{
				{Field: "defaultAmount", Message: "Must be a valid decimal number"},
			})
		}
		defaultAmount = &parsed
	}

	bill, err := h.billService.Add(req.OwnerID, req.Name, req.DueDay, defaultAmount)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, bill)
}

// SetBillActive handles PATCH /bills/:id/active
func (h *BillHandler) SetBillActive(c echo.Context) error {
	var req SetBillActiveRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.billService.SetActive(c.Param("id"), req.Active); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetBillsDue handles GET /bills/due/:month
func (h *BillHandler) GetBillsDue(c echo.Context) error {
	due, err := h.billService.BillsDue(c.Param("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, due)
}

// SetBillPaid handles PUT /bills/:id/payments/:month
func (h *BillHandler) SetBillPaid(c echo.Context) error {
	var req SetBillPaidRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	update := &domain.BillPaymentUpdate{
		Paid:     req.Paid,
		PaidDate: req.PaidDate,
		Note:     req.Note,
	}
	if req.PaidAmount != nil && *req.PaidAmount != "" {
		parsed, err := decimal.NewFromString(*req.PaidAmount)
		if err != nil {
			return NewValidationError(c, "Invalid paid amount", []ValidationError{
				{Field: "paidAmount", Message: "Must be a valid decimal number"},
			})
		}
		update.PaidAmount = &parsed
	}

	billID, month := c.Param("id"), c.Param("month")
	if err := h.billService.SetPaid(billID, month, update, req.Confirmed); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.BillPaymentPaid(map[string]interface{}{
		"billId": billID,
		"month":  month,
		"paid":   req.Paid,
	}))
	return c.NoContent(http.StatusNoContent)
}
