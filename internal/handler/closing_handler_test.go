package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/testutil"
	"github.com/casafin/casafin-backend/internal/websocket"
)

func newClosingHandlerFixture() (*ClosingHandler, *testutil.MockClosingRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(ownerRepo, categoryRepo)
	billRepo := testutil.NewMockBillRepository(ownerRepo)
	accountRepo := testutil.NewMockAccountRepository(ownerRepo)
	closingRepo := testutil.NewMockClosingRepository()
	gate := service.NewConfirmationGate(closingRepo)
	closingService := service.NewClosingService(closingRepo, billRepo, 36)
	setupService := service.NewSetupService(categoryRepo, billRepo, accountRepo, transactionRepo)
	h := NewClosingHandler(closingService, setupService, gate, &websocket.NoOpPublisher{})
	return h, closingRepo
}

func TestCloseMonth_Success(t *testing.T) {
	e := echo.New()
	h, closingRepo := newClosingHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/months/2026-01/close", strings.NewReader(`{"note":"done"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("month")
	c.SetParamValues("2026-01")

	if err := h.CloseMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(closingRepo.Closings) != 1 {
		t.Errorf("Expected 1 closing, got %d", len(closingRepo.Closings))
	}
}

func TestCloseMonth_InvalidMonth(t *testing.T) {
	e := echo.New()
	h, _ := newClosingHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/months/bogus/close", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("month")
	c.SetParamValues("bogus")

	if err := h.CloseMonth(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetMonthStatus(t *testing.T) {
	e := echo.New()
	h, closingRepo := newClosingHandlerFixture()
	closingRepo.CloseMonth("2026-01")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/months/2026-01/status", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("month")
	c.SetParamValues("2026-01")

	if err := h.GetMonthStatus(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response["closed"] {
		t.Error("Expected closed=true")
	}
}

func TestGetFirstRun(t *testing.T) {
	e := echo.New()
	h, _ := newClosingHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/setup/first-run", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetFirstRun(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response["firstRun"] {
		t.Error("Expected firstRun=true on an empty ledger")
	}
}
