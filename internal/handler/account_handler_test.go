package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/casafin/casafin-backend/internal/domain"
	"github.com/casafin/casafin-backend/internal/service"
	"github.com/casafin/casafin-backend/internal/testutil"
	"github.com/casafin/casafin-backend/internal/websocket"
)

func newAccountHandlerFixture() (*AccountHandler, *testutil.MockAccountRepository) {
	ownerRepo := testutil.NewMockOwnerRepository()
	accountRepo := testutil.NewMockAccountRepository(ownerRepo)
	closingRepo := testutil.NewMockClosingRepository()
	gate := service.NewConfirmationGate(closingRepo)
	accountService := service.NewAccountService(accountRepo, ownerRepo, gate)
	h := NewAccountHandler(accountService, &websocket.NoOpPublisher{})
	return h, accountRepo
}

func TestCreateAccount_Success(t *testing.T) {
	e := echo.New()
	h, accountRepo := newAccountHandlerFixture()

	body := `{"ownerId":"owner-shared","name":"Visa","type":"CREDIT_CARD","apr":"19.99","creditLimit":"500"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response domain.Account
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CreditLimit == nil || response.CreditLimit.String() != "500" {
		t.Errorf("Expected creditLimit 500, got %v", response.CreditLimit)
	}
	if len(accountRepo.Accounts) != 1 {
		t.Errorf("Expected 1 stored account, got %d", len(accountRepo.Accounts))
	}
}

func TestCreateAccount_InvalidDecimalField(t *testing.T) {
	e := echo.New()
	h, accountRepo := newAccountHandlerFixture()

	for _, body := range []string{
		`{"ownerId":"owner-shared","name":"Visa","type":"CREDIT_CARD","apr":"not-a-number"}`,
		`{"ownerId":"owner-shared","name":"Visa","type":"CREDIT_CARD","creditLimit":"oops"}`,
		`{"ownerId":"owner-shared","name":"Car loan","type":"LOAN","startBalance":"12,000"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.CreateAccount(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", rec.Code)
		}

		var problem ProblemDetails
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if problem.Type != ErrorTypeValidation {
			t.Errorf("Expected validation problem type, got %s", problem.Type)
		}
	}

	if len(accountRepo.Accounts) != 0 {
		t.Errorf("No account should be stored, got %d", len(accountRepo.Accounts))
	}
}
