// Package app provides the core business logic of the beer machine: staff
// authentication, the sale and undo operations, credit top-ups, stock
// management, user and drink administration, leaderboards, and CSV member
// import/export. The package integrates with the storage layer for
// persistence, the session store for short-lived ceremony state, and the
// auth package for token generation.
package app

import (
	"context"
	"errors"
	"time"

	"beer_machine/internal/models"
	"beer_machine/internal/pkg/auth"
	"beer_machine/internal/pkg/logger"
	"beer_machine/internal/pkg/passkey"
	"beer_machine/internal/pkg/security"
	"beer_machine/internal/pkg/session"
	"beer_machine/internal/storage"
)

// Predefined errors for invalid requests detected before touching storage.
var (
	// ErrMissingUsernameOrPassword indicates a login attempt without credentials.
	ErrMissingUsernameOrPassword = errors.New("app: missing username or password")
	// ErrInvalidCredentials indicates a login by an unknown, inactive, or
	// non-staff account. Deliberately indistinguishable from a bad password.
	ErrInvalidCredentials = errors.New("app: invalid credentials or unauthorized user")
	// ErrMissingUserOrDrink indicates a sale request without both ids.
	ErrMissingUserOrDrink = errors.New("app: user id and drink id are required")
	// ErrMissingUsername indicates a user creation without a username.
	ErrMissingUsername = errors.New("app: username is required")
	// ErrInvalidUserType indicates a member creation with a type other than
	// member or non_member.
	ErrInvalidUserType = errors.New("app: invalid user type")
	// ErrCannotModifyAdmin indicates an attempt to edit an admin through the
	// member-management endpoints.
	ErrCannotModifyAdmin = errors.New("app: cannot modify admin users")
	// ErrMissingNameOrPrice indicates a drink creation without name or price.
	ErrMissingNameOrPrice = errors.New("app: name and price are required")
	// ErrInvalidPrice indicates a non-positive drink price.
	ErrInvalidPrice = errors.New("app: price must be greater than 0")
	// ErrPasswordTooShort indicates a staff password below the minimum length.
	ErrPasswordTooShort = errors.New("app: password must be at least 6 characters")
	// ErrCurrentPasswordRequired indicates a password change without the old one.
	ErrCurrentPasswordRequired = errors.New("app: current password required to change password")
	// ErrOwnAccount indicates an admin-management action aimed at the caller
	// itself, which must go through the profile endpoint instead.
	ErrOwnAccount = errors.New("app: use the profile endpoint for your own account")
	// ErrLastActiveAdmin indicates a deactivation that would leave the system
	// without any active admin.
	ErrLastActiveAdmin = errors.New("app: cannot deactivate the last active admin")
	// ErrAdminNotFound indicates an admin-management action against an
	// account that is not an admin.
	ErrAdminNotFound = errors.New("app: admin not found")
)

// App encapsulates the application logic and dependencies required to
// process requests.
type App struct {
	db       storage.Storage // Database storage layer for persistent data operations.
	sessions session.Store   // Expiring store for WebAuthn ceremony state and response caching.
	webauthn *passkey.WebAuthn
	log      *logger.Logger
}

// NewApp creates and returns a new App with the provided dependencies.
// The webauthn handle may be nil, which disables the passkey operations.
func NewApp(db storage.Storage, sessions session.Store, webauthn *passkey.WebAuthn, log *logger.Logger) *App {
	return &App{db: db, sessions: sessions, webauthn: webauthn, log: log}
}

// ProcessLogin authenticates a staff account by password and issues a token.
// Members and non-members carry no password and can never log in.
func (app *App) ProcessLogin(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingUsernameOrPassword
	}

	user, err := app.db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrInvalidCredentials
	}

	if err = security.CheckPassword(*user.Password, req.Password); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User: models.UserBrief{
			ID:       user.ID,
			Username: user.Username,
			UserType: user.UserType,
			Credits:  user.Credits,
		},
	}, nil
}

// ProcessCurrentUser resolves the account behind a validated token.
func (app *App) ProcessCurrentUser(ctx context.Context, userID int32) (*models.UserBrief, error) {
	user, err := app.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserBrief{
		ID:       user.ID,
		Username: user.Username,
		UserType: user.UserType,
		Credits:  user.Credits,
	}, nil
}

// ProcessSell performs an atomic sale on behalf of the operating staff
// account. All accounting checks happen inside the storage unit of work.
func (app *App) ProcessSell(ctx context.Context, req models.SellRequest, adminID int32) (*models.SaleResult, error) {
	if req.UserID == 0 || req.DrinkID == 0 {
		return nil, ErrMissingUserOrDrink
	}

	return app.db.SellDrink(ctx, req.UserID, req.DrinkID, req.Quantity, adminID)
}

// ProcessUndo reverses a previously recorded transaction as one atomic unit.
func (app *App) ProcessUndo(ctx context.Context, transactionID int64, adminID int32) (*models.UndoResult, error) {
	return app.db.UndoTransaction(ctx, transactionID, adminID)
}

// ProcessAddCredits tops up a user's balance and records the ledger entry.
func (app *App) ProcessAddCredits(ctx context.Context, userID int32, amount int, adminID int32) (*models.User, error) {
	return app.db.AddUserCredits(ctx, userID, amount, adminID)
}

// ProcessHistory returns a page of ledger history.
func (app *App) ProcessHistory(ctx context.Context, filter models.TransactionFilter) (*models.TransactionsResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	transactions, total, err := app.db.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.TransactionsResponse{
		Transactions: transactions,
		Pagination:   paginate(total, filter.Page, filter.Limit),
	}, nil
}

// ProcessStats aggregates the ledger over an optional date range.
func (app *App) ProcessStats(ctx context.Context, startDate, endDate *time.Time) (*models.SalesStats, error) {
	return app.db.GetSalesStats(ctx, startDate, endDate)
}

func normalizePage(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = 50
	}
	if *limit > 100 {
		*limit = 100
	}
}

func paginate(total, page, limit int) models.Pagination {
	pages := (total + limit - 1) / limit
	return models.Pagination{Total: total, Page: page, Pages: pages, Limit: limit}
}
