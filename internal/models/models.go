// Package models defines the data structures used throughout the application:
// the User, Drink, Transaction, and Passkey entities persisted by the storage
// layer, and the request/response payloads exchanged with the HTTP API.
package models

import "time"

// User types. Only admin and seller accounts carry a password and can
// authenticate; member and non_member are ledger-only accounts.
const (
	UserTypeAdmin     = "admin"
	UserTypeSeller    = "seller"
	UserTypeMember    = "member"
	UserTypeNonMember = "non_member"
)

// Transaction types recorded in the ledger.
const (
	TransactionSale           = "sale"
	TransactionCreditAddition = "credit_addition"
)

// User represents an account in the system. Credits never go below zero.
// Password is nil for accounts that cannot log in.
type User struct {
	ID          int32      `json:"id"`
	Username    string     `json:"username"`
	Password    *string    `json:"-"`
	Credits     int        `json:"credits"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	UserType    string     `json:"userType"`
	IsActive    bool       `json:"isActive"`
}

/// CanLogin reports whether the account is allowed to authenticate:
// an active admin or seller with a password set.
func (u *User) CanLogin() bool {
	return (u.UserType == UserTypeAdmin || u.UserType == UserTypeSeller) &&
		u.Password != nil && u.IsActive
}

// Drink represents a sellable item. Stock never goes below zero and the
// price is always at least one credit.
type Drink struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	IsActive    bool   `json:"isActive"`
	Category    string `json:"category"`
}

// Transaction is an immutable ledger entry. It is created exactly once per
// sale or credit addition and deleted only by the undo operation, which also
// reverses its financial and stock effect. DrinkID is nil for credit
// additions.
type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int32     `json:"userId"`
	DrinkID         *int32    `json:"drinkId,omitempty"`
	AdminID         int32     `json:"adminId"`
	Type            string    `json:"type"`
	Amount          int       `json:"amount"`
	Quantity        int       `json:"quantity"`
	Description     string    `json:"description,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`

	// Joined display fields, populated by history queries.
	Username      string  `json:"username,omitempty"`
	AdminUsername string  `json:"adminUsername,omitempty"`
	DrinkName     *string `json:"drinkName,omitempty"`
}

// Passkey is a stored WebAuthn credential belonging to a staff account.
type Passkey struct {
	ID           int32      `json:"id"`
	UserID       int32      `json:"userId"`
	CredentialID string     `json:"credentialId"`
	PublicKey    []byte     `json:"-"`
	Counter      uint32     `json:"counter"`
	Transports   []string   `json:"transports"`
	DeviceName   string     `json:"deviceName,omitempty"`
	LastUsedAt   *time.Time `json:"lastUsedAt,omitempty"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated account.
type LoginResponse struct {
	Token string    `json:"token"`
	User  UserBrief `json:"user"`
}

// UserBrief is the compact user representation embedded in responses.
type UserBrief struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
	UserType string `json:"userType,omitempty"`
	Credits  int    `json:"credits"`
}

// ErrorResponse is the generic error payload. Required and Available are set
// only for insufficient-credits failures so the client can render both sides.
type ErrorResponse struct {
	Errors    string `json:"errors"`
	Required  int    `json:"required,omitempty"`
	Available int    `json:"available,omitempty"`
}

// SellRequest is the payload for the sale operation. Quantity defaults to 1.
type SellRequest struct {
	UserID   int32 `json:"userId"`
	DrinkID  int32 `json:"drinkId"`
	Quantity int   `json:"quantity"`
}

// SaleResult reports a completed sale: the created ledger entry, the buyer's
// remaining credits, the drink's remaining stock, and the operator.
type SaleResult struct {
	TransactionID int64      `json:"transactionId"`
	User          SaleUser   `json:"user"`
	Drink         SaleDrink  `json:"drink"`
	Quantity      int        `json:"quantity"`
	TotalCost     int        `json:"totalCost"`
	Admin         AdminBrief `json:"admin"`
}

// SaleUser is the buyer's state after a sale.
type SaleUser struct {
	ID               int32  `json:"id"`
	Username         string `json:"username"`
	RemainingCredits int    `json:"remainingCredits"`
}

// SaleDrink is the drink's state after a sale.
type SaleDrink struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	RemainingStock int    `json:"remainingStock"`
}

// AdminBrief identifies the operator who performed an operation.
type AdminBrief struct {
	ID       int32  `json:"id"`
	Username string `json:"username"`
}

// UndoResult reports a reversed transaction. Drink is nil when the undone
// entry was a credit addition or its drink no longer exists.
type UndoResult struct {
	Transaction UndoTransactionInfo `json:"transaction"`
	User        UndoUser            `json:"user"`
	Drink       *UndoDrink          `json:"drink"`
	UndoneBy    AdminBrief          `json:"undoneBy"`
}

// UndoTransactionInfo describes the ledger entry that was removed.
type UndoTransactionInfo struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Amount   int    `json:"amount"`
	Quantity int    `json:"quantity"`
}

// UndoUser is the subject's state after the undo.
type UndoUser struct {
	ID         int32  `json:"id"`
	Username   string `json:"username"`
	NewCredits int    `json:"newCredits"`
}

// UndoDrink is the drink's state after a sale undo restored its stock.
type UndoDrink struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	NewStock int    `json:"newStock"`
}

// AddCreditsRequest is the payload for a credit top-up.
type AddCreditsRequest struct {
	Amount int `json:"amount"`
}

// AddStockRequest is the payload for a stock addition.
type AddStockRequest struct {
	Quantity int `json:"quantity"`
}

// CreateUserRequest is the payload for creating a member account. The date
// of birth, when present, uses the YYYY-MM-DD layout.
type CreateUserRequest struct {
	Username    string  `json:"username"`
	Credits     int     `json:"credits"`
	DateOfBirth *string `json:"dateOfBirth"`
	UserType    string  `json:"userType"`
}

// UpdateUserRequest is the partial-update payload for a member account.
// Absent fields keep their current values.
type UpdateUserRequest struct {
	Username    *string `json:"username"`
	DateOfBirth *string `json:"dateOfBirth"`
	UserType    *string `json:"userType"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateDrinkRequest is the partial-update payload for a drink.
type UpdateDrinkRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Stock       *int    `json:"stock"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"isActive"`
}

// AdminRequest is the payload for creating or updating a staff account.
type AdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileRequest is the payload for a staff account updating itself. A
// password change requires proving the current password.
type ProfileRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
}

// UserFilter narrows and paginates user listings.
type UserFilter struct {
	UserType string
	Search   string
	Page     int
	Limit    int
}

// DrinkFilter narrows and paginates drink listings.
type DrinkFilter struct {
	Search   string
	Category string
	InStock  bool
	Page     int
	Limit    int
}

// TransactionFilter narrows and paginates ledger history.
type TransactionFilter struct {
	UserID    int32
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Pagination describes a page of a larger result set.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// UsersResponse is a page of users.
type UsersResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// DrinksResponse is a page of drinks.
type DrinksResponse struct {
	Drinks     []Drink    `json:"drinks"`
	Pagination Pagination `json:"pagination"`
}

// TransactionsResponse is a page of ledger history.
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Pagination   Pagination    `json:"pagination"`
}

// SalesStats aggregates the ledger for the stats endpoint.
type SalesStats struct {
	TotalSales           int        `json:"totalSales"`
	TotalRevenue         int        `json:"totalRevenue"`
	TotalItemsSold       int        `json:"totalItemsSold"`
	TotalCreditAdditions int        `json:"totalCreditAdditions"`
	TotalCreditsAdded    int        `json:"totalCreditsAdded"`
	TopDrinks            []TopDrink `json:"topDrinks"`
}

// TopDrink is one row of the best-sellers ranking.
type TopDrink struct {
	DrinkID       int32  `json:"drinkId"`
	Name          string `json:"name"`
	SalesCount    int    `json:"salesCount"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalRevenue  int    `json:"totalRevenue"`
}

// LeaderboardEntry is one ranked row of the monthly consumption leaderboard.
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           int32  `json:"userId"`
	Username         string `json:"username"`
	UserType         string `json:"userType"`
	TransactionCount int    `json:"transactionCount"`
	TotalDrinks      int    `json:"totalDrinks"`
	TotalSpent       int    `json:"totalSpent"`
}

// LeaderboardResponse is the monthly leaderboard with its period.
type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	Period      LeaderboardPeriod  `json:"period"`
}

// LeaderboardPeriod describes the month a leaderboard covers.
type LeaderboardPeriod struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"monthName"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// RankInfo is a single user's position within a monthly leaderboard.
type RankInfo struct {
	Rank        int `json:"rank"`
	TotalDrinks int `json:"totalDrinks"`
	TotalUsers  int `json:"totalUsers"`
}

// CSVImportResult summarizes a member import run.
type CSVImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}
