package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// AccountHandler handles debt account HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
	publisher      websocket.EventPublisher
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService, publisher websocket.EventPublisher) *AccountHandler {
	return &AccountHandler{accountService: accountService, publisher: publisher}
}

// CreateAccountRequest represents the create account request body
type CreateAccountRequest struct {
	OwnerID      string  `json:"ownerId"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	APR          *string `json:"apr,omitempty"`
	CreditLimit  *string `json:"creditLimit,omitempty"`
	StartBalance *string `json:"startBalance,omitempty"`
}

// UpsertSnapshotRequest represents the snapshot upsert request body
type UpsertSnapshotRequest struct {
	AccountID string `json:"accountId"`
	Month     string `json:"month"`
	Balance   string `json:"balance"`
	Payment   string `json:"payment"`
	Confirmed bool   `json:"confirmed"`
}

func parseOptionalDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// GetAccounts handles GET /accounts?active=true
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	accounts, err := h.accountService.Accounts(activeOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	apr, err := parseOptionalDecimal(req.APR)
	if err != nil {
		return NewValidationError(c, "Invalid apr", []ValidationError{
			{Field: "apr", Message: "Must be a valid decimal number"},
		})
	}
	creditLimit, err := parseOptionalDecimal(req.CreditLimit)
	if err != nil {
		return NewValidationError(c, "Invalid creditLimit", []ValidationError{
			{Field: "creditLimit", Message: "Must be a valid decimal number"},
		})
	}
	startBalance, err := parseOptionalDecimal(req.StartBalance)
	if err != nil {
		return NewValidationError(c, "Invalid startBalance", []ValidationError{
			{Field: "startBalance", Message: "Must be a valid decimal number"},
		})
	}

	account, err := h.accountService.Add(req.OwnerID, req.Name, domain.AccountType(req.Type), apr, creditLimit, startBalance)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// GetSnapshots handles GET /snapshots
func (h *AccountHandler) GetSnapshots(c echo.Context) error {
	snapshots, err := h.accountService.Snapshots()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, snapshots)
}

// UpsertSnapshot handles PUT /snapshots
func (h *AccountHandler) UpsertSnapshot(c echo.Context) error {
	var req UpsertSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	balance, err := decimal.NewFromString(req.Balance)
	if err != nil {
		return NewValidationError(c, "Invalid balance", []ValidationError{
			{Field: "balance", Message: "Must be a valid decimal number"},
		})
	}
	payment, err := decimal.NewFromString(req.Payment)
	if err != nil {
		return NewValidationError(c, "Invalid payment", []ValidationError{
			{Field: "payment", Message: "Must be a valid decimal number"},
		})
	}

	if err := h.accountService.UpsertSnapshot(req.AccountID, req.Month, balance, payment, req.Confirmed); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.SnapshotUpdated(map[string]string{
		"accountId": req.AccountID,
		"month":     req.Month,
	}))
	return c.NoContent(http.StatusNoContent)
}

// GetDebtProgress handles GET /reports/debt-progress/:month
func (h *AccountHandler) GetDebtProgress(c echo.Context) error {
	rows, err := h.accountService.DebtProgress(c.Param("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
