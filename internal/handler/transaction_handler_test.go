package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/centsible/centsible-backend/internal/domain"
	"github.com/centsible/centsible-backend/internal/service"
	"github.com/centsible/centsible-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type transactionHandlerFixture struct {
	handler         *TransactionHandler
	budgetRepo      *testutil.MockBudgetRepository
	transactionRepo *testutil.MockTransactionRepository
}

func newTransactionHandlerFixture() *transactionHandlerFixture {
	budgetRepo := testutil.NewMockBudgetRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	transactionService := service.NewTransactionService(transactionRepo, budgetRepo)
	return &transactionHandlerFixture{
		handler:         NewTransactionHandler(transactionService),
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	body := `{"budgetId":1,"type":"expense","amount":"50","description":"groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.BudgetID != 1 {
		t.Errorf("Expected budget ID 1, got %d", response.BudgetID)
	}
	if response.Type != "expense" {
		t.Errorf("Expected type 'expense', got %s", response.Type)
	}
	if response.Amount != "50.00" {
		t.Errorf("Expected amount '50.00', got %s", response.Amount)
	}
	if response.Description != "groceries" {
		t.Errorf("Expected description 'groceries', got %s", response.Description)
	}
}

func TestCreateTransaction_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing budget ID", `{"type":"expense","amount":"50","description":"groceries"}`},
		{"missing type", `{"budgetId":1,"amount":"50","description":"groceries"}`},
		{"missing amount", `{"budgetId":1,"type":"expense","description":"groceries"}`},
		{"missing description", `{"budgetId":1,"type":"expense","amount":"50"}`},
		{"blank description", `{"budgetId":1,"type":"expense","amount":"50","description":"   "}`},
		{"unknown type", `{"budgetId":1,"type":"transfer","amount":"50","description":"groceries"}`},
		{"negative amount", `{"budgetId":1,"type":"expense","amount":"-5","description":"groceries"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			f := newTransactionHandlerFixture()
			userID := uuid.New()

			f.budgetRepo.AddBudget(&domain.Budget{
				ID: 1, UserID: userID, Month: 3, Year: 2024,
				PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

			if err := f.handler.CreateTransaction(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var response ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response.Success {
				t.Error("Expected success=false")
			}

			if len(f.transactionRepo.Transactions) != 0 {
				t.Errorf("Expected no stored transactions, got %d", len(f.transactionRepo.Transactions))
			}
		})
	}
}

func TestCreateTransaction_ForeignBudget(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()

	owner := uuid.New()
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: owner, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	body := `{"budgetId":1,"type":"expense","amount":"50","description":"groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|other", "other@example.com", "Other", uuid.New())

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
	if len(f.transactionRepo.Transactions) != 0 {
		t.Errorf("Expected no stored transactions, got %d", len(f.transactionRepo.Transactions))
	}
}

func TestCreateTransaction_Unauthenticated(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()

	body := `{"budgetId":1,"type":"expense","amount":"50","description":"groceries"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := f.handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetTransactionsByBudget_Success(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID: 1, UserID: userID, BudgetID: 1,
		Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(120), Description: "refund",
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID: 2, UserID: userID, BudgetID: 1,
		Type: domain.TransactionTypeExpense, Amount: decimal.RequireFromString("19.99"), Description: "subscription",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("budgetId")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.GetTransactionsByBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(response))
	}
	if response[0].ID != 1 || response[1].ID != 2 {
		t.Errorf("Expected insertion order [1 2], got [%d %d]", response[0].ID, response[1].ID)
	}
	if response[1].Amount != "19.99" {
		t.Errorf("Expected amount '19.99', got %s", response[1].Amount)
	}
}

func TestGetTransactionsByBudget_ForeignBudget(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()

	owner := uuid.New()
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: owner, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("budgetId")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|other", "other@example.com", "Other", uuid.New())

	if err := f.handler.GetTransactionsByBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetTransactionsByBudget_EmptyBudget(t *testing.T) {
	e := echo.New()
	f := newTransactionHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("budgetId")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.GetTransactionsByBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 0 {
		t.Errorf("Expected empty list, got %d items", len(response))
	}
}
