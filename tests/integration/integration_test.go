package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/suite"

	"beer_machine/internal/app"
	"beer_machine/internal/models"
	"beer_machine/internal/pkg/logger"
	"beer_machine/internal/pkg/security"
	"beer_machine/internal/pkg/session"
	"beer_machine/internal/service"
	"beer_machine/internal/storage"
)

var testDatabaseURI, testServerPort string

func init() {
	if err := godotenv.Load("../integration/.env"); err != nil {
		log.Println("No .env file found, using default values")
	}

	testDatabaseURI = os.Getenv("TEST_DATABASE_URI")
	testServerPort = os.Getenv("TEST_SERVER_PORT")
}

type IntegrationTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *http.Client
	db     *storage.PostgreSQL
	admin  *models.User
	token  string
}

func (s *IntegrationTestSuite) SetupSuite() {
	if testDatabaseURI == "" {
		s.T().Skip("TEST_DATABASE_URI is not set")
	}

	var l *logger.Logger
	var err error
	if l, err = logger.CreateLogger("info"); err != nil {
		log.Fatal("Failed to create logger:", err)
	}

	s.db, err = storage.NewPostgreSQL(testDatabaseURI, l)
	s.Require().NoError(err, "Error connecting to test database")

	appInstance := app.NewApp(s.db, session.NewMemoryStore(), nil, l)
	serviceInstance := service.NewService(appInstance, "localhost:"+testServerPort, l)

	s.server = httptest.NewServer(serviceInstance.NewRouter())
	s.client = s.server.Client()

	password := security.HashPassword("password")
	s.admin, err = s.db.CreateUser(context.Background(), &models.User{
		Username: uniqueName("it_admin"),
		Password: &password,
		UserType: models.UserTypeAdmin,
		IsActive: true,
	})
	s.Require().NoError(err, "Error creating test admin")

	s.token = s.login(s.admin.Username, "password")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func (s *IntegrationTestSuite) login(username, password string) string {
	reqBody, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	s.Require().NoError(err, "Error marshaling login request")

	resp, err := s.client.Post(s.server.URL+"/api/auth/login", "application/json", bytes.NewBuffer(reqBody))
	s.Require().NoError(err, "Error sending login request")
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for login")

	var loginResp models.LoginResponse
	err = json.NewDecoder(resp.Body).Decode(&loginResp)
	resp.Body.Close()
	s.Require().NoError(err, "Error decoding login response")
	s.Require().NotEmpty(loginResp.Token, "Token should not be empty")

	return loginResp.Token
}

func (s *IntegrationTestSuite) do(method, path string, payload any) *http.Response {
	var body *bytes.Buffer
	if payload != nil {
		reqBody, err := json.Marshal(payload)
		s.Require().NoError(err, "Error marshaling request body")
		body = bytes.NewBuffer(reqBody)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err, "Error creating request")
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err, "Error executing request")
	return resp
}

func (s *IntegrationTestSuite) createMember(credits int) *models.User {
	user, err := s.db.CreateUser(context.Background(), &models.User{
		Username: uniqueName("it_member"),
		Credits:  credits,
		UserType: models.UserTypeMember,
		IsActive: true,
	})
	s.Require().NoError(err, "Error creating test member")
	return user
}

func (s *IntegrationTestSuite) createDrink(price, stock int) *models.Drink {
	drink, err := s.db.CreateDrink(context.Background(), &models.Drink{
		Name:  uniqueName("it_pils"),
		Price: price,
		Stock: stock,
	})
	s.Require().NoError(err, "Error creating test drink")
	return drink
}

func (s *IntegrationTestSuite) TestSellAndUndo() {
	member := s.createMember(20)
	drink := s.createDrink(5, 3)

	resp := s.do(http.MethodPost, "/api/sales/sell", models.SellRequest{UserID: member.ID, DrinkID: drink.ID, Quantity: 2})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for sale")

	var saleResult models.SaleResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&saleResult))
	resp.Body.Close()

	s.Equal(10, saleResult.TotalCost)
	s.Equal(10, saleResult.User.RemainingCredits)
	s.Equal(1, saleResult.Drink.RemainingStock)

	resp = s.do(http.MethodDelete, fmt.Sprintf("/api/sales/undo/%d", saleResult.TransactionID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for undo")

	var undoResult models.UndoResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&undoResult))
	resp.Body.Close()

	s.Equal(20, undoResult.User.NewCredits)
	s.Require().NotNil(undoResult.Drink, "Sale undo should report restored stock")
	s.Equal(3, undoResult.Drink.NewStock)

	// The compensated entry is gone: undoing it again must fail.
	resp = s.do(http.MethodDelete, fmt.Sprintf("/api/sales/undo/%d", saleResult.TransactionID), nil)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode, "Expected status 404 for a second undo")
	resp.Body.Close()
}

func (s *IntegrationTestSuite) TestCreditAdditionUndo() {
	member := s.createMember(0)

	resp := s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/add-credits", member.ID), models.AddCreditsRequest{Amount: 20})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for credit top-up")
	resp.Body.Close()

	resp = s.do(http.MethodGet, fmt.Sprintf("/api/sales/history?userId=%d&type=credit_addition", member.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for history")

	var history models.TransactionsResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&history))
	resp.Body.Close()
	s.Require().Len(history.Transactions, 1, "Expected exactly one credit addition")

	// Spend some of the credits, then undoing the addition must fail and
	// leave everything unchanged.
	drink := s.createDrink(5, 3)
	resp = s.do(http.MethodPost, "/api/sales/sell", models.SellRequest{UserID: member.ID, DrinkID: drink.ID, Quantity: 3})
	s.Require().Equal(http.StatusOK, resp.StatusCode, "Expected status 200 for sale")
	resp.Body.Close()

	resp = s.do(http.MethodDelete, fmt.Sprintf("/api/sales/undo/%d", history.Transactions[0].ID), nil)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode, "Expected status 400 for undoing spent credits")

	var errorResp models.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errorResp))
	resp.Body.Close()
	s.Equal(20, errorResp.Required)
	s.Equal(5, errorResp.Available)

	current, err := s.db.GetUserByID(context.Background(), member.ID)
	s.Require().NoError(err)
	s.Equal(5, current.Credits, "Failed undo must not change the balance")
}

func (s *IntegrationTestSuite) TestConcurrentSellsOnLastItem() {
	memberA := s.createMember(100)
	memberB := s.createMember(100)
	drink := s.createDrink(5, 1)

	var wg sync.WaitGroup
	statuses := make([]int, 2)
	buyers := []*models.User{memberA, memberB}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := s.do(http.MethodPost, "/api/sales/sell", models.SellRequest{UserID: buyers[i].ID, DrinkID: drink.ID, Quantity: 1})
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, status := range statuses {
		if status == http.StatusOK {
			succeeded++
		}
	}
	s.Equal(1, succeeded, "Exactly one concurrent sale must win the last item")

	current, err := s.db.GetDrinkByID(context.Background(), drink.ID)
	s.Require().NoError(err)
	s.Equal(0, current.Stock, "Stock must never go negative")
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
