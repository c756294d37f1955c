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

type budgetHandlerFixture struct {
	handler         *BudgetHandler
	budgetRepo      *testutil.MockBudgetRepository
	transactionRepo *testutil.MockTransactionRepository
}

func newBudgetHandlerFixture() *budgetHandlerFixture {
	budgetRepo := testutil.NewMockBudgetRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo.Transactions = transactionRepo
	budgetService := service.NewBudgetService(budgetRepo)
	reconciliationService := service.NewReconciliationService(budgetRepo, transactionRepo)
	return &budgetHandlerFixture{
		handler:         NewBudgetHandler(budgetService, reconciliationService),
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
	}
}

func TestCreateBudget_Success(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	body := `{"month":3,"year":2024,"income":1000,"expenses":{"rent":"500","food":"150.5"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Month != 3 || response.Year != 2024 {
		t.Errorf("Expected period 3/2024, got %d/%d", response.Month, response.Year)
	}
	if response.PlannedExpenses != "650.50" {
		t.Errorf("Expected planned expenses '650.50', got %s", response.PlannedExpenses)
	}
	if response.RecordedExpenses != "0.00" {
		t.Errorf("Expected recorded expenses '0.00', got %s", response.RecordedExpenses)
	}
	if response.PlannedIncome == nil || *response.PlannedIncome != "1000.00" {
		t.Errorf("Expected planned income '1000.00', got %v", response.PlannedIncome)
	}
}

func TestCreateBudget_DuplicatePeriod(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 3, Year: 2024,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	body := `{"month":3,"year":2024,"expenses":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Success {
		t.Error("Expected success=false")
	}
	if response.Message == "" {
		t.Error("Expected a message")
	}
}

func TestCreateBudget_InvalidMonth(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()

	body := `{"month":13,"year":2024,"expenses":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", uuid.New())

	if err := f.handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateBudget_Unauthenticated(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/budgets", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := f.handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetBudget_ReconciledDetail(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	plannedIncome := decimal.NewFromInt(1000)
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 3, Year: 2024,
		PlannedIncome:    &plannedIncome,
		PlannedExpenses:  decimal.RequireFromString("650.50"),
		RecordedExpenses: decimal.Zero,
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID: 1, UserID: userID, BudgetID: 1,
		Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(50), Description: "extra",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.GetBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ReconciledBudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ActualExpenses != "700.50" {
		t.Errorf("Expected actual expenses '700.50', got %s", response.ActualExpenses)
	}
	if response.TransactionExpenseSum != "50.00" {
		t.Errorf("Expected transaction expense sum '50.00', got %s", response.TransactionExpenseSum)
	}
	if response.ActualIncome != "0.00" {
		t.Errorf("Expected actual income '0.00', got %s", response.ActualIncome)
	}
	if response.Balance != "-700.50" {
		t.Errorf("Expected balance '-700.50', got %s", response.Balance)
	}
}

func TestGetBudget_NotFound(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", uuid.New())

	if err := f.handler.GetBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetBudgets_ListMatchesDetail(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	recordedIncome := decimal.NewFromInt(1500)
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 2, Year: 2025,
		RecordedIncome:   &recordedIncome,
		PlannedExpenses:  decimal.RequireFromString("400.40"),
		RecordedExpenses: decimal.Zero,
	})
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID: 1, UserID: userID, BudgetID: 1,
		Type: domain.TransactionTypeIncome, Amount: decimal.RequireFromString("33.33"), Description: "bonus",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var list []ReconciledBudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to unmarshal list response: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 budget, got %d", len(list))
	}

	// fetch the same budget through the detail endpoint
	detailReq := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/1", nil)
	detailRec := httptest.NewRecorder()
	detailCtx := e.NewContext(detailReq, detailRec)
	detailCtx.SetParamNames("id")
	detailCtx.SetParamValues("1")
	setupAuthContextWithUser(detailCtx, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.GetBudget(detailCtx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var detail ReconciledBudgetResponse
	if err := json.Unmarshal(detailRec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("Failed to unmarshal detail response: %v", err)
	}

	if list[0] != detail {
		t.Errorf("List and detail views disagree:\nlist:   %+v\ndetail: %+v", list[0], detail)
	}
	if detail.ActualIncome != "1533.33" {
		t.Errorf("Expected actual income '1533.33', got %s", detail.ActualIncome)
	}
	if detail.Balance != "1132.93" {
		t.Errorf("Expected balance '1132.93', got %s", detail.Balance)
	}
}

func TestUpdateBudget_ForeignOwner(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()

	owner := uuid.New()
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: owner, Month: 4, Year: 2025,
		PlannedExpenses: decimal.RequireFromString("300"), RecordedExpenses: decimal.Zero,
	})

	body := `{"plannedExpenses":"999"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|other", "other@example.com", "Other", uuid.New())

	if err := f.handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	unchanged, err := f.budgetRepo.GetByID(owner, 1)
	if err != nil {
		t.Fatalf("Budget should still exist: %v", err)
	}
	if unchanged.PlannedExpenses.StringFixed(2) != "300.00" {
		t.Errorf("Expected planned expenses unchanged at '300.00', got %s", unchanged.PlannedExpenses.StringFixed(2))
	}
}

func TestUpdateBudget_Success(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 4, Year: 2025,
		PlannedExpenses: decimal.RequireFromString("300"), RecordedExpenses: decimal.Zero,
	})

	body := `{"recordedIncome":"2000","plannedExpenses":350.25,"recordedExpenses":"100"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/budgets/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.UpdateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.RecordedIncome == nil || *response.RecordedIncome != "2000.00" {
		t.Errorf("Expected recorded income '2000.00', got %v", response.RecordedIncome)
	}
	if response.PlannedExpenses != "350.25" {
		t.Errorf("Expected planned expenses '350.25', got %s", response.PlannedExpenses)
	}
	if response.RecordedExpenses != "100.00" {
		t.Errorf("Expected recorded expenses '100.00', got %s", response.RecordedExpenses)
	}
}

func TestDeleteBudget_Success(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()
	userID := uuid.New()

	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: userID, Month: 7, Year: 2025,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|test", "test@example.com", "Test User", userID)

	if err := f.handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response ConfirmationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Success {
		t.Error("Expected success=true")
	}

	if _, err := f.budgetRepo.GetByID(userID, 1); err == nil {
		t.Error("Expected budget to be gone")
	}
}

func TestDeleteBudget_ForeignOwner(t *testing.T) {
	e := echo.New()
	f := newBudgetHandlerFixture()

	owner := uuid.New()
	f.budgetRepo.AddBudget(&domain.Budget{
		ID: 1, UserID: owner, Month: 7, Year: 2025,
		PlannedExpenses: decimal.Zero, RecordedExpenses: decimal.Zero,
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/budgets/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithUser(c, "auth0|other", "other@example.com", "Other", uuid.New())

	if err := f.handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	if _, err := f.budgetRepo.GetByID(owner, 1); err != nil {
		t.Errorf("Budget should still exist: %v", err)
	}
}
