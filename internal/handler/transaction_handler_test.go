package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/testutil"
	"github.com/casafin/casafin-backend/internal/websocket"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTransactionHandlerFixture() (*TransactionHandler, *testutil.MockTransactionRepository, *testutil.MockCategoryRepository, *testutil.MockClosingRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(ownerRepo, categoryRepo)
	closingRepo := testutil.NewMockClosingRepository()
	gate := service.NewConfirmationGate(closingRepo)
	transactionService := service.NewTransactionService(transactionRepo, ownerRepo, categoryRepo, gate)
	csvService := service.NewCSVService(transactionRepo, ownerRepo, categoryRepo, gate)
	h := NewTransactionHandler(transactionService, csvService, &websocket.NoOpPublisher{})
	return h, transactionRepo, categoryRepo, closingRepo
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	h, transactionRepo, categoryRepo, _ := newTransactionHandlerFixture()
	categoryRepo.AddCategory("cat-groceries", "Groceries")

	body := `{"txnDate":"2026-02-01","ownerId":"owner-shared","categoryId":"cat-groceries","description":"milk","amount":"4.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.TxnDate != "2026-02-01" {
		t.Errorf("Expected txnDate '2026-02-01', got %s", response.TxnDate)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestCreateTransaction_InvalidAmount(t *testing.T) {
	e := echo.New()
	h, transactionRepo, categoryRepo, _ := newTransactionHandlerFixture()
	categoryRepo.AddCategory("cat-groceries", "Groceries")

	body := `{"txnDate":"2026-02-01","ownerId":"owner-shared","categoryId":"cat-groceries","amount":"-5"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Error("No transaction should be stored")
	}
}

func TestCreateTransaction_ClosedMonthConflict(t *testing.T) {
	e := echo.New()
	h, transactionRepo, categoryRepo, closingRepo := newTransactionHandlerFixture()
	categoryRepo.AddCategory("cat-groceries", "Groceries")
	closingRepo.CloseMonth("2026-01")

	body := `{"txnDate":"2026-01-15","ownerId":"owner-shared","categoryId":"cat-groceries","amount":"4.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeConfirmationRequired {
		t.Errorf("Expected confirmation-required problem type, got %s", problem.Type)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Error("No transaction should be stored without confirmation")
	}

	// Confirmed retry lands exactly once
	body = `{"txnDate":"2026-01-15","ownerId":"owner-shared","categoryId":"cat-groceries","amount":"4.50","confirmed":true}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	if err := h.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestImportTransactions_RowErrors(t *testing.T) {
	e := echo.New()
	h, transactionRepo, _, _ := newTransactionHandlerFixture()

	csv := "date,owner,category,amount\n01/02/2026,Shared,Groceries,10.00\n"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ImportTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Error("No rows should be imported")
	}
}

func TestExportTransactions_CSV(t *testing.T) {
	e := echo.New()
	h, transactionRepo, categoryRepo, _ := newTransactionHandlerFixture()
	categoryRepo.AddCategory("cat-groceries", "Groceries")
	transactionRepo.Create(&domain.Transaction{
		ID: "txn-1", TxnDate: "2026-01-10", OwnerID: "owner-shared",
		CategoryID: "cat-groceries", Description: "milk", Amount: dec("4.50"),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/export?month=2026-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ExportTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "date,owner,category,amount,description") {
		t.Errorf("Unexpected CSV header: %q", body)
	}
	if !strings.Contains(body, "2026-01-10,Shared,Groceries,4.50,milk") {
		t.Errorf("Expected transaction row in CSV, got %q", body)
	}
}
