package service

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer_machine/internal/app"
	"beer_machine/internal/config"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
	"beer_machine/internal/pkg/auth"
	"beer_machine/internal/pkg/logger"
	"beer_machine/internal/pkg/security"
	"beer_machine/internal/pkg/session"
	"beer_machine/internal/storage/mocks"
)

func testRequest(t *testing.T, ts *httptest.Server, method, path string, requestBody []byte) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewBuffer(requestBody))
	require.NoError(t, err)

	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func testRequestWithAuth(t *testing.T, ts *httptest.Server, method, path string, requestBody []byte, token string) (*http.Response, string) {
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewBuffer(requestBody))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func newTestServer(t *testing.T) (*mocks.MockStorage, *httptest.Server) {
	l, err := logger.CreateLogger(config.LogLevel)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockDB := mocks.NewMockStorage(ctrl)

	appInstance := app.NewApp(mockDB, session.NewMemoryStore(), nil, l)

	service := NewService(appInstance, config.ServerRunAddress, l)
	testServer := httptest.NewServer(service.NewRouter())
	t.Cleanup(testServer.Close)

	return mockDB, testServer
}

func TestLoginHandler_Gomock(t *testing.T) {
	mockDB, testServer := newTestServer(t)

	hashedPassword := security.HashPassword("correct_password")

	type expectedData struct {
		expectedContentType string
		expectedStatusCode  int
		expectedBody        string
	}

	testCases := []struct {
		name        string
		requestBody []byte
		setupMock   func()
		expected    expectedData
	}{
		{
			name:        "Invalid JSON",
			requestBody: []byte("some body"),
			setupMock:   func() {},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusBadRequest,
				expectedBody:        "{\"errors\":\"invalid character 's' looking for beginning of value\"}\n",
			},
		},
		{
			name:        "Missing username",
			requestBody: []byte(`{"username": "", "password": "pass"}`),
			setupMock:   func() {},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusBadRequest,
				expectedBody:        "{\"errors\":\"missing username or password\"}\n",
			},
		},
		{
			name:        "Unknown user",
			requestBody: []byte(`{"username": "ghost", "password": "pass"}`),
			setupMock: func() {
				mockDB.EXPECT().GetUserByUsername(gomock.Any(), "ghost").
					Return(nil, ledger.ErrUserNotFound)
			},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusUnauthorized,
				expectedBody:        "{\"errors\":\"invalid username or password\"}\n",
			},
		},
		{
			name:        "Member without password cannot log in",
			requestBody: []byte(`{"username": "member", "password": "pass"}`),
			setupMock: func() {
				mockDB.EXPECT().GetUserByUsername(gomock.Any(), "member").
					Return(&models.User{ID: 7, Username: "member", UserType: models.UserTypeMember, IsActive: true}, nil)
			},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusUnauthorized,
				expectedBody:        "{\"errors\":\"invalid username or password\"}\n",
			},
		},
		{
			name:        "Incorrect password",
			requestBody: []byte(`{"username": "admin", "password": "wrongpass"}`),
			setupMock: func() {
				mockDB.EXPECT().GetUserByUsername(gomock.Any(), "admin").
					Return(&models.User{ID: 1, Username: "admin", Password: &hashedPassword, UserType: models.UserTypeAdmin, IsActive: true}, nil)
			},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusUnauthorized,
				expectedBody:        "{\"errors\":\"invalid username or password\"}\n",
			},
		},
		{
			name:        "Successful login",
			requestBody: []byte(`{"username": "admin", "password": "correct_password"}`),
			setupMock: func() {
				mockDB.EXPECT().GetUserByUsername(gomock.Any(), "admin").
					Return(&models.User{ID: 1, Username: "admin", Password: &hashedPassword, UserType: models.UserTypeAdmin, IsActive: true}, nil)
			},
			expected: expectedData{
				expectedContentType: "application/json",
				expectedStatusCode:  http.StatusOK,
				expectedBody:        "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			resp, body := testRequest(t, testServer, http.MethodPost, "/api/auth/login", tc.requestBody)
			assert.Equal(t, tc.expected.expectedStatusCode, resp.StatusCode)
			assert.Equal(t, tc.expected.expectedContentType, resp.Header.Get("Content-Type"))

			if tc.expected.expectedStatusCode == http.StatusOK {
				var loginResp models.LoginResponse
				err := json.Unmarshal([]byte(body), &loginResp)
				require.NoError(t, err)
				assert.NotEmpty(t, loginResp.Token, "token should not be empty")
				assert.Equal(t, "admin", loginResp.User.Username)
			} else {
				assert.Equal(t, tc.expected.expectedBody, body)
			}
		})
	}
}

func TestSellHandler_Gomock(t *testing.T) {
	mockDB, testServer := newTestServer(t)

	sellerToken, err := auth.GenerateToken(1, "seller", models.UserTypeSeller)
	require.NoError(t, err)
	memberToken, err := auth.GenerateToken(9, "member", models.UserTypeMember)
	require.NoError(t, err)

	type expectedData struct {
		expectedStatusCode int
		expectedBody       string
	}

	testCases := []struct {
		name        string
		requestBody []byte
		token       string
		setupMock   func()
		expected    expectedData
	}{
		{
			name:        "Missing token",
			requestBody: []byte(`{"userId": 2, "drinkId": 3}`),
			token:       "",
			setupMock:   func() {},
			expected: expectedData{
				expectedStatusCode: http.StatusUnauthorized,
				expectedBody:       "{\"errors\":\"missing auth header\"}\n",
			},
		},
		{
			name:        "Member token is rejected",
			requestBody: []byte(`{"userId": 2, "drinkId": 3}`),
			token:       memberToken,
			setupMock:   func() {},
			expected: expectedData{
				expectedStatusCode: http.StatusForbidden,
				expectedBody:       "{\"errors\":\"insufficient permissions\"}\n",
			},
		},
		{
			name:        "Missing user or drink id",
			requestBody: []byte(`{"userId": 2}`),
			token:       sellerToken,
			setupMock:   func() {},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"user id and drink id are required\"}\n",
			},
		},
		{
			name:        "Buyer not found",
			requestBody: []byte(`{"userId": 99, "drinkId": 3}`),
			token:       sellerToken,
			setupMock: func() {
				mockDB.EXPECT().SellDrink(gomock.Any(), int32(99), int32(3), 0, int32(1)).
					Return(nil, ledger.ErrUserNotFound)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusNotFound,
				expectedBody:       "{\"errors\":\"user not found\"}\n",
			},
		},
		{
			name:        "Drink out of stock",
			requestBody: []byte(`{"userId": 2, "drinkId": 3}`),
			token:       sellerToken,
			setupMock: func() {
				mockDB.EXPECT().SellDrink(gomock.Any(), int32(2), int32(3), 0, int32(1)).
					Return(nil, ledger.ErrDrinkUnavailable)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"drink is unavailable or out of stock\"}\n",
			},
		},
		{
			name:        "Insufficient credits includes both sides",
			requestBody: []byte(`{"userId": 2, "drinkId": 3, "quantity": 2}`),
			token:       sellerToken,
			setupMock: func() {
				mockDB.EXPECT().SellDrink(gomock.Any(), int32(2), int32(3), 2, int32(1)).
					Return(nil, &ledger.InsufficientCreditsError{Required: 10, Available: 5})
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"ledger: insufficient credits: required 10, available 5\",\"required\":10,\"available\":5}\n",
			},
		},
		{
			name:        "Concurrent spend rejected by constraint",
			requestBody: []byte(`{"userId": 2, "drinkId": 3}`),
			token:       sellerToken,
			setupMock: func() {
				mockDB.EXPECT().SellDrink(gomock.Any(), int32(2), int32(3), 0, int32(1)).
					Return(nil, &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "users_credits_check"})
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"sale cannot be performed\"}\n",
			},
		},
		{
			name:        "Successful sale",
			requestBody: []byte(`{"userId": 2, "drinkId": 3, "quantity": 2}`),
			token:       sellerToken,
			setupMock: func() {
				mockDB.EXPECT().SellDrink(gomock.Any(), int32(2), int32(3), 2, int32(1)).
					Return(&models.SaleResult{
						TransactionID: 42,
						User:          models.SaleUser{ID: 2, Username: "buyer", RemainingCredits: 10},
						Drink:         models.SaleDrink{ID: 3, Name: "Pils", RemainingStock: 1},
						Quantity:      2,
						TotalCost:     10,
						Admin:         models.AdminBrief{ID: 1, Username: "seller"},
					}, nil)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusOK,
				expectedBody:       "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			resp, body := testRequestWithAuth(t, testServer, http.MethodPost, "/api/sales/sell", tc.requestBody, tc.token)
			assert.Equal(t, tc.expected.expectedStatusCode, resp.StatusCode)

			if tc.expected.expectedStatusCode == http.StatusOK {
				var saleResult models.SaleResult
				err := json.Unmarshal([]byte(body), &saleResult)
				require.NoError(t, err)
				assert.Equal(t, int64(42), saleResult.TransactionID)
				assert.Equal(t, 10, saleResult.TotalCost)
				assert.Equal(t, 10, saleResult.User.RemainingCredits)
			} else {
				assert.Equal(t, tc.expected.expectedBody, body)
			}
		})
	}
}

func TestUndoHandler_Gomock(t *testing.T) {
	mockDB, testServer := newTestServer(t)

	adminToken, err := auth.GenerateToken(1, "admin", models.UserTypeAdmin)
	require.NoError(t, err)

	type expectedData struct {
		expectedStatusCode int
		expectedBody       string
	}

	testCases := []struct {
		name      string
		path      string
		setupMock func()
		expected  expectedData
	}{
		{
			name:      "Invalid transaction id",
			path:      "/api/sales/undo/abc",
			setupMock: func() {},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"invalid transaction id provided\"}\n",
			},
		},
		{
			name: "Transaction not found",
			path: "/api/sales/undo/404",
			setupMock: func() {
				mockDB.EXPECT().UndoTransaction(gomock.Any(), int64(404), int32(1)).
					Return(nil, ledger.ErrTransactionNotFound)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusNotFound,
				expectedBody:       "{\"errors\":\"transaction not found\"}\n",
			},
		},
		{
			name: "Unsupported transaction type",
			path: "/api/sales/undo/7",
			setupMock: func() {
				mockDB.EXPECT().UndoTransaction(gomock.Any(), int64(7), int32(1)).
					Return(nil, ledger.ErrUnsupportedTransactionType)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"transaction type cannot be undone\"}\n",
			},
		},
		{
			name: "Undoing a credit addition may fail on spent credits",
			path: "/api/sales/undo/8",
			setupMock: func() {
				mockDB.EXPECT().UndoTransaction(gomock.Any(), int64(8), int32(1)).
					Return(nil, &ledger.InsufficientCreditsError{Required: 20, Available: 15})
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"ledger: insufficient credits: required 20, available 15\",\"required\":20,\"available\":15}\n",
			},
		},
		{
			name: "Successful undo",
			path: "/api/sales/undo/42",
			setupMock: func() {
				mockDB.EXPECT().UndoTransaction(gomock.Any(), int64(42), int32(1)).
					Return(&models.UndoResult{
						Transaction: models.UndoTransactionInfo{ID: 42, Type: models.TransactionSale},
						User:        models.UndoUser{ID: 2, Username: "buyer", NewCredits: 20},
						UndoneBy:    models.AdminBrief{ID: 1, Username: "admin"},
					}, nil)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusOK,
				expectedBody:       "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			resp, body := testRequestWithAuth(t, testServer, http.MethodDelete, tc.path, nil, adminToken)
			assert.Equal(t, tc.expected.expectedStatusCode, resp.StatusCode)

			if tc.expected.expectedStatusCode == http.StatusOK {
				var undoResult models.UndoResult
				err := json.Unmarshal([]byte(body), &undoResult)
				require.NoError(t, err)
				assert.Equal(t, int64(42), undoResult.Transaction.ID)
				assert.Equal(t, 20, undoResult.User.NewCredits)
			} else {
				assert.Equal(t, tc.expected.expectedBody, body)
			}
		})
	}
}

func TestAddCreditsHandler_Gomock(t *testing.T) {
	mockDB, testServer := newTestServer(t)

	adminToken, err := auth.GenerateToken(1, "admin", models.UserTypeAdmin)
	require.NoError(t, err)

	type expectedData struct {
		expectedStatusCode int
		expectedBody       string
	}

	testCases := []struct {
		name        string
		path        string
		requestBody []byte
		setupMock   func()
		expected    expectedData
	}{
		{
			name:        "Amount must be a multiple of 10",
			path:        "/api/users/2/add-credits",
			requestBody: []byte(`{"amount": 5}`),
			setupMock: func() {
				mockDB.EXPECT().AddUserCredits(gomock.Any(), int32(2), 5, int32(1)).
					Return(nil, ledger.ErrInvalidAmount)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"amount must be a positive multiple of 10\"}\n",
			},
		},
		{
			name:        "Negative amount rejected",
			path:        "/api/users/2/add-credits",
			requestBody: []byte(`{"amount": -10}`),
			setupMock: func() {
				mockDB.EXPECT().AddUserCredits(gomock.Any(), int32(2), -10, int32(1)).
					Return(nil, ledger.ErrInvalidAmount)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusBadRequest,
				expectedBody:       "{\"errors\":\"amount must be a positive multiple of 10\"}\n",
			},
		},
		{
			name:        "Unknown user",
			path:        "/api/users/99/add-credits",
			requestBody: []byte(`{"amount": 20}`),
			setupMock: func() {
				mockDB.EXPECT().AddUserCredits(gomock.Any(), int32(99), 20, int32(1)).
					Return(nil, ledger.ErrUserNotFound)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusNotFound,
				expectedBody:       "{\"errors\":\"user not found\"}\n",
			},
		},
		{
			name:        "Successful top-up",
			path:        "/api/users/2/add-credits",
			requestBody: []byte(`{"amount": 20}`),
			setupMock: func() {
				mockDB.EXPECT().AddUserCredits(gomock.Any(), int32(2), 20, int32(1)).
					Return(&models.User{ID: 2, Username: "buyer", Credits: 30, UserType: models.UserTypeMember, IsActive: true}, nil)
			},
			expected: expectedData{
				expectedStatusCode: http.StatusOK,
				expectedBody:       "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMock()
			resp, body := testRequestWithAuth(t, testServer, http.MethodPost, tc.path, tc.requestBody, adminToken)
			assert.Equal(t, tc.expected.expectedStatusCode, resp.StatusCode)

			if tc.expected.expectedStatusCode == http.StatusOK {
				var user models.User
				err := json.Unmarshal([]byte(body), &user)
				require.NoError(t, err)
				assert.Equal(t, 30, user.Credits)
			} else {
				assert.Equal(t, tc.expected.expectedBody, body)
			}
		})
	}
}

func TestLeaderboardHandler_Gomock(t *testing.T) {
	mockDB, testServer := newTestServer(t)

	memberToken, err := auth.GenerateToken(2, "buyer", models.UserTypeMember)
	require.NoError(t, err)

	mockDB.EXPECT().GetMonthlyLeaderboard(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]models.LeaderboardEntry{
			{Rank: 1, UserID: 2, Username: "buyer", UserType: models.UserTypeMember, TransactionCount: 3, TotalDrinks: 7, TotalSpent: 35},
		}, nil)

	resp, body := testRequestWithAuth(t, testServer, http.MethodGet, "/api/leaderboard/monthly?year=2026&month=7", nil, memberToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var leaderboard models.LeaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(body), &leaderboard))
	require.Len(t, leaderboard.Leaderboard, 1)
	assert.Equal(t, "buyer", leaderboard.Leaderboard[0].Username)
	assert.Equal(t, 7, leaderboard.Leaderboard[0].TotalDrinks)
	assert.Equal(t, "July", leaderboard.Period.MonthName)

	// Second read within the cache TTL must not touch storage again.
	resp, _ = testRequestWithAuth(t, testServer, http.MethodGet, "/api/leaderboard/monthly?year=2026&month=7", nil, memberToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
