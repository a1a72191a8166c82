package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
	publisher     websocket.EventPublisher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, publisher websocket.EventPublisher) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, publisher: publisher}
}

// UpsertBudgetRequest represents the budget upsert request body
type UpsertBudgetRequest struct {
	Month         string `json:"month"`
	OwnerID       string `json:"ownerId"`
	CategoryID    string `json:"categoryId"`
	PlannedAmount string `json:"plannedAmount"`
	Confirmed     bool   `json:"confirmed"`
}

// GetBudgets handles GET /budgets/:month
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.Budgets(c.Param("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, budgets)
}

// UpsertBudget handles PUT /budgets
func (h *BudgetHandler) UpsertBudget(c echo.Context) error {
	var req UpsertBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	planned, err := decimal.NewFromString(req.PlannedAmount)
	if err != nil {
		return NewValidationError(c, "Invalid planned amount", []ValidationError{
			{Field: "plannedAmount", Message: "Must be a valid decimal number"},
		})
	}

	if err := h.budgetService.Upsert(req.Month, req.OwnerID, req.CategoryID, planned, req.Confirmed); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.BudgetUpdated(map[string]string{
		"month":      req.Month,
		"ownerId":    req.OwnerID,
		"categoryId": req.CategoryID,
	}))
	return c.NoContent(http.StatusNoContent)
}

// GetPlannedVsActual handles GET /reports/planned-vs-actual/:month
func (h *BudgetHandler) GetPlannedVsActual(c echo.Context) error {
	rows, err := h.budgetService.PlannedVsActual(c.Param("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
