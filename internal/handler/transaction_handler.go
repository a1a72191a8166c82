package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/util"
	"github.com/casafin/casafin-backend/internal/websocket"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
	csvService         *service.CSVService
	publisher          websocket.EventPublisher
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService, csvService *service.CSVService, publisher websocket.EventPublisher) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		csvService:         csvService,
		publisher:          publisher,
	}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	TxnDate     string `json:"txnDate"`
	OwnerID     string `json:"ownerId"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Confirmed   bool   `json:"confirmed"`
}

// GetTransactions handles GET /transactions?month=YYYY-MM
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	rows, err := h.transactionService.Transactions(c.QueryParam("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}
	if !amount.IsPositive() {
		return respondError(c, domain.ErrInvalidAmount)
	}

	transaction, err := h.transactionService.Add(req.TxnDate, req.OwnerID, req.CategoryID, req.Description, amount, req.Confirmed)
	if err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.TransactionCreated(transaction))
	return c.JSON(http.StatusCreated, transaction)
}

// DeleteTransaction handles DELETE /transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")
	if err := h.transactionService.Delete(id); err != nil {
		return respondError(c, err)
	}

	h.publisher.Publish(websocket.TransactionDeleted(map[string]string{"id": id}))
	return c.NoContent(http.StatusNoContent)
}

// ImportTransactions handles POST /transactions/import?confirmed=true
// The request body is the CSV file itself.
func (h *TransactionHandler) ImportTransactions(c echo.Context) error {
	confirmed := c.QueryParam("confirmed") == "true"

	result, err := h.csvService.Import(c.Request().Body, confirmed)
	if err != nil {
		return respondError(c, err)
	}
	if len(result.Errors) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, result)
	}

	if result.Imported > 0 {
		h.publisher.Publish(websocket.TransactionBatchCreated(result))
	}
	return c.JSON(http.StatusOK, result)
}

// ExportTransactions handles GET /transactions/export?month=YYYY-MM
func (h *TransactionHandler) ExportTransactions(c echo.Context) error {
	month := c.QueryParam("month")
	if month != "" && !util.ValidMonth(month) {
		return respondError(c, domain.ErrInvalidMonth)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="transactions.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.csvService.Export(c.Response(), month)
}
