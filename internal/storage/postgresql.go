// Package storage provides primitives for connecting to and interacting with
// the relational store behind the beer machine. It defines the Storage
// interface along with a PostgreSQL implementation that owns persistence of
// users, drinks, ledger transactions, and passkeys, and that executes the
// sale and undo coordinators as single atomic units of work.
package storage

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"beer_machine/internal/models"
	"beer_machine/internal/pkg/logger"
)

// Storage defines the methods required for data storage operations.
type Storage interface {
	// Close closes the database connection.
	Close()

	// User methods.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int32) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	CountActiveAdmins(ctx context.Context) (int, error)

	// AddUserCredits performs a checked credit top-up and records the
	// credit_addition ledger entry inside one transaction.
	AddUserCredits(ctx context.Context, userID int32, amount int, adminID int32) (*models.User, error)

	// Drink methods.
	CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error)
	GetDrinkByID(ctx context.Context, drinkID int32) (*models.Drink, error)
	UpdateDrink(ctx context.Context, drink *models.Drink) error
	ListDrinks(ctx context.Context, filter models.DrinkFilter) ([]models.Drink, int, error)
	AddDrinkStock(ctx context.Context, drinkID int32, quantity int) (*models.Drink, error)
	DeactivateDrink(ctx context.Context, drinkID int32) error

	// Sale and undo coordinators. Each runs as one atomic unit of work: all
	// reads and writes apply together or not at all.
	SellDrink(ctx context.Context, buyerID, drinkID int32, quantity int, adminID int32) (*models.SaleResult, error)
	UndoTransaction(ctx context.Context, transactionID int64, adminID int32) (*models.UndoResult, error)

	// Ledger history and aggregates.
	ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error)
	GetSalesStats(ctx context.Context, startDate, endDate *time.Time) (*models.SalesStats, error)
	GetMonthlyLeaderboard(ctx context.Context, startDate, endDate time.Time) ([]models.LeaderboardEntry, error)

	// Passkey methods.
	CreatePasskey(ctx context.Context, passkey *models.Passkey) (*models.Passkey, error)
	GetPasskeysByUser(ctx context.Context, userID int32) ([]models.Passkey, error)
	GetPasskeyByCredentialID(ctx context.Context, credentialID string) (*models.Passkey, error)
	UpdatePasskeySignCount(ctx context.Context, credentialID string, counter uint32) error
	DeletePasskey(ctx context.Context, userID, passkeyID int32) error
}

// PostgreSQL implements the Storage interface using a PostgreSQL database.
type PostgreSQL struct {
	db  *sql.DB        // Connection to the database.
	log *logger.Logger // Logger for recording events and errors.
}

// NewPostgreSQL creates a new PostgreSQL instance with the provided
// connection string and logger. It opens the connection and pings the
// database to ensure connectivity.
func NewPostgreSQL(configDBString string, l *logger.Logger) (*PostgreSQL, error) {
	db, err := sql.Open("pgx", configDBString)
	if err != nil {
		l.Sugar().Errorf("Failed to open a database: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	const defaultTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		l.Sugar().Errorf("Database ping failed: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	return &PostgreSQL{db: db, log: l}, nil
}

// Close closes the database connection if it is open.
func (postgresql *PostgreSQL) Close() {
	if postgresql.db != nil {
		postgresql.db.Close()
	}
}
