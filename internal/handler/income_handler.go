package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// IncomeHandler handles income-related HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
	publisher     websocket.EventPublisher
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *service.IncomeService, publisher websocket.EventPublisher) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService, publisher: publisher}
}

// CreateIncomeRequest represents the create income request body
type CreateIncomeRequest struct {
	Month     string `json:"month"`
	OwnerID   string `json:"ownerId"`
	Source    string `json:"source"`
	Amount    string `json:"amount"`
	Confirmed bool   `json:"confirmed"`
}

// GetIncomes handles GET /income?month=YYYY-MM
func (h *IncomeHandler) GetIncomes(c echo.Context) error {
	incomes, err := h.incomeService.Incomes(c.QueryParam("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, incomes)
}

// CreateIncome handles POST /income
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	var req CreateIncomeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	income, err := h.incomeService.Add(req.Month, req.OwnerID, req.Source, amount, req.Confirmed)
	if err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.IncomeCreated(income))
	return c.JSON(http.StatusCreated, income)
}
