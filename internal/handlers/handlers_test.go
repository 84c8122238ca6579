package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/hrms_ledger/internal/apperrors"
	"github.com/SscSPs/hrms_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
	"github.com/SscSPs/hrms_ledger/internal/dto"
	"github.com/SscSPs/hrms_ledger/internal/handlers"
	"github.com/SscSPs/hrms_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID *string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetSummary(ctx context.Context, month, year int) (*domain.MonthlySummary, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlySummary), args.Error(1)
}

// --- Mock ReferenceService ---
type MockReferenceService struct {
	mock.Mock
}

var _ portssvc.ReferenceSvcFacade = (*MockReferenceService)(nil)

func (m *MockReferenceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockReferenceService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockReferenceService) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockReferenceService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID *string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockReferenceService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID *string) (*domain.Category, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockReferenceService) CreateVendor(ctx context.Context, req dto.CreateVendorRequest, userID *string) (*domain.Vendor, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

// --- Test Suite ---
type AccountingHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	txnSvc    *MockTransactionService
	refSvc    *MockReferenceService
	jwtSecret string
	userID    string
}

func (suite *AccountingHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *AccountingHandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = "hr-admin-7"
	suite.txnSvc = new(MockTransactionService)
	suite.refSvc = new(MockReferenceService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, "hrms-test"))
	handlers.RegisterAccountingRoutes(v1, suite.txnSvc, suite.refSvc)
}

// generateTestToken creates a signed JWT for the given subject.
func (suite *AccountingHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "hrms-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountingHandlerTestSuite) do(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountingHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const balancedBody = `{"date":"2024-03-15","description":"March rent","entries":[
	{"accountId":1,"categoryId":3,"debit":1000},
	{"accountId":2,"credit":"1000"}]}`

func (suite *AccountingHandlerTestSuite) TestCreateTransaction_Created() {
	suite.txnSvc.On("CreateTransaction", mock.Anything,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Date == "2024-03-15" && len(req.Entries) == 2 &&
				req.Entries[0].Debit.Equal(decimal.NewFromInt(1000)) &&
				req.Entries[1].Credit.Equal(decimal.NewFromInt(1000))
		}),
		mock.MatchedBy(func(uid *string) bool { return uid != nil && *uid == suite.userID }),
	).Return(&domain.Transaction{ID: 42, Number: "TXN-000042"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/transactions", balancedBody)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal(true, body["success"])
	suite.Equal(float64(42), body["transactionId"])
	suite.Equal("TXN-000042", body["number"])
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *AccountingHandlerTestSuite) TestCreateTransaction_BindingErrors() {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"date":`},
		{name: "bad date", body: `{"date":"15/03/2024","entries":[{"accountId":1,"debit":1}]}`},
		{name: "no entries", body: `{"date":"2024-03-15","entries":[]}`},
		{name: "unknown status", body: `{"date":"2024-03-15","status":"void","entries":[{"accountId":1,"debit":1}]}`},
		{name: "missing account", body: `{"date":"2024-03-15","entries":[{"debit":1}]}`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounting/transactions", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.txnSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestCreateTransaction_ErrorMapping() {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
		integrity bool
	}{
		{
			name:      "unbalanced",
			err:       fmt.Errorf("%w: debits 1000 do not equal credits 900", apperrors.ErrUnbalancedTransaction),
			wantCode:  http.StatusBadRequest,
			wantError: "validation error: unbalanced transaction: debits 1000 do not equal credits 900",
		},
		{
			name:     "invalid entry",
			err:      fmt.Errorf("%w: entry 2 has both debit and credit", apperrors.ErrInvalidEntry),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "duplicate number",
			err:      apperrors.Persistence("save transaction", apperrors.ErrDuplicate),
			wantCode: http.StatusConflict,
		},
		{
			name:      "partial write",
			err:       fmt.Errorf("%w: entries failed", apperrors.ErrPartialWriteFailed),
			wantCode:  http.StatusInternalServerError,
			integrity: true,
		},
		{
			name:      "persistence",
			err:       apperrors.Persistence("create transaction", errors.New("connection refused")),
			wantCode:  http.StatusInternalServerError,
			wantError: "persistence failed: create transaction: connection refused",
		},
		{
			name:      "unexpected",
			err:       errors.New("boom"),
			wantCode:  http.StatusInternalServerError,
			wantError: "Internal server error",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.txnSvc.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/accounting/transactions", balancedBody)

			suite.Equal(tt.wantCode, w.Code)
			body := suite.decode(w)
			if tt.wantError != "" {
				suite.Equal(tt.wantError, body["error"])
			}
			_, hasIntegrity := body["integrity"]
			suite.Equal(tt.integrity, hasIntegrity)
		})
	}
}

func (suite *AccountingHandlerTestSuite) TestCreateTransaction_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounting/transactions", strings.NewReader(balancedBody))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.txnSvc.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestGetTransaction() {
	desc := "Payroll"
	txn := &domain.Transaction{
		ID:          9,
		Number:      "TXN-000009",
		Date:        time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Description: &desc,
		Status:      domain.Posted,
		TotalAmount: decimal.RequireFromString("2500.50"),
		Entries: []domain.Entry{
			{ID: 1, TransactionID: 9, AccountID: 5, Debit: decimal.RequireFromString("2500.50")},
			{ID: 2, TransactionID: 9, AccountID: 1, Credit: decimal.RequireFromString("2500.50")},
		},
	}
	suite.txnSvc.On("GetTransaction", mock.Anything, int64(9)).Return(txn, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/transactions/9", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-03-31", resp.Date)
	suite.Equal("posted", resp.Status)
	suite.Len(resp.Entries, 2)
	suite.True(resp.TotalAmount.Equal(decimal.RequireFromString("2500.5")))
}

func (suite *AccountingHandlerTestSuite) TestGetTransaction_NotFoundAndBadID() {
	suite.txnSvc.On("GetTransaction", mock.Anything, int64(404)).
		Return(nil, apperrors.NewNotFoundError("transaction 404 not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/transactions/404", "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounting/transactions/abc", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountingHandlerTestSuite) TestListTransactions_PassesFilters() {
	suite.txnSvc.On("ListTransactions", mock.Anything, dto.ListTransactionsParams{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-31",
		Status:    "posted",
		Limit:     20,
	}).Return([]domain.Transaction{{ID: 1, Status: domain.Posted}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/transactions?startDate=2024-03-01&endDate=2024-03-31&status=posted&limit=20", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.NotNil(resp[0].Entries)
	suite.txnSvc.AssertExpectations(suite.T())
}

func (suite *AccountingHandlerTestSuite) TestListTransactions_InvalidQuery() {
	for _, q := range []string{"limit=501", "offset=-1", "status=void", "startDate=2024-13-01"} {
		w := suite.do(http.MethodGet, "/api/v1/accounting/transactions?"+q, "")
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
	suite.txnSvc.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestGetSummary() {
	rent := int64(3)
	summary := &domain.MonthlySummary{
		Month:             3,
		Year:              2024,
		TotalTransactions: 2,
		TotalAmount:       decimal.NewFromInt(1250),
		Categories:        []domain.CategoryTotal{{ID: &rent, Name: "Rent", Total: decimal.NewFromInt(1000)}},
		TopCategories:     []domain.CategoryTotal{{ID: &rent, Name: "Rent", Total: decimal.NewFromInt(1000)}},
	}
	suite.txnSvc.On("GetSummary", mock.Anything, 3, 2024).Return(summary, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/summary?month=3&year=2024", "")

	suite.Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal(float64(2), body["totalTransactions"])
	suite.Equal("1250", body["totalAmount"])
	suite.Len(body["topCategories"], 1)
}

func (suite *AccountingHandlerTestSuite) TestGetSummary_InvalidPeriod() {
	for _, q := range []string{"month=13&year=2024", "month=0&year=2024", "year=2024", "month=2&year=99"} {
		w := suite.do(http.MethodGet, "/api/v1/accounting/summary?"+q, "")
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
	suite.txnSvc.AssertNotCalled(suite.T(), "GetSummary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountingHandlerTestSuite) TestReferenceListings() {
	suite.refSvc.On("ListAccounts", mock.Anything).Return([]domain.Account{{ID: 1, Code: "1000", Name: "Cash", Type: domain.Asset, IsActive: true}}, nil).Once()
	suite.refSvc.On("ListCategories", mock.Anything).Return([]domain.Category{}, nil).Once()
	suite.refSvc.On("ListVendors", mock.Anything).Return(nil, apperrors.Persistence("list vendors", errors.New("timeout"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounting/accounts", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"code":"1000"`)

	w = suite.do(http.MethodGet, "/api/v1/accounting/categories", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/accounting/vendors", "")
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func (suite *AccountingHandlerTestSuite) TestCreateAccount() {
	suite.refSvc.On("CreateAccount", mock.Anything,
		dto.CreateAccountRequest{Code: "6100", Name: "Office Rent", Type: domain.Expense},
		mock.Anything,
	).Return(&domain.Account{ID: 12, Code: "6100", Name: "Office Rent", Type: domain.Expense, IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/accounts", `{"code":"6100","name":"Office Rent","type":"expense"}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounting/accounts", `{"code":"6100","name":"Office Rent","type":"income"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.refSvc.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Persistence("save account", apperrors.ErrDuplicate)).Once()
	w = suite.do(http.MethodPost, "/api/v1/accounting/accounts", `{"code":"6100","name":"Dup","type":"expense"}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountingHandlerTestSuite) TestCreateCategoryAndVendor() {
	suite.refSvc.On("CreateCategory", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Category{ID: 4, Name: "Travel", IsActive: true}, nil).Once()
	suite.refSvc.On("CreateVendor", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Vendor{ID: 2, Name: "Acme", IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounting/categories", `{"name":"Travel"}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounting/vendors", `{"name":"Acme","email":"not-an-email"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/accounting/vendors", `{"name":"Acme","email":"ap@acme.test"}`)
	suite.Equal(http.StatusCreated, w.Code)
}

// --- Run Test Suite ---
func TestAccountingHandler(t *testing.T) {
	suite.Run(t, new(AccountingHandlerTestSuite))
}
