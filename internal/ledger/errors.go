// Package ledger holds the business rules of the beer machine accounting
// core: credit balance mutations, stock mutations, and the error taxonomy of
// both. Functions here update model values in memory and report rule
// violations; persisting the result is the storage layer's responsibility, so
// every mutation stays a pure value update inside one unit of work.
package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for rule violations detected by the ledger core.
var (
	// ErrInvalidAmount indicates a credit top-up that is not a positive
	// multiple of ten. Top-ups model physical payment denominations.
	ErrInvalidAmount = errors.New("ledger: credits can only be added in blocks of 10")
	// ErrInvalidQuantity indicates a non-positive stock addition.
	ErrInvalidQuantity = errors.New("ledger: stock quantity must be positive")
	// ErrInsufficientStock indicates a deduction larger than the current stock.
	ErrInsufficientStock = errors.New("ledger: insufficient stock")
	// ErrDrinkUnavailable indicates a sale against an inactive drink or one
	// with less stock than requested.
	ErrDrinkUnavailable = errors.New("ledger: insufficient stock or drink not available")
	// ErrUnsupportedTransactionType indicates an undo of a transaction type
	// the ledger does not know how to reverse.
	ErrUnsupportedTransactionType = errors.New("ledger: cannot undo this transaction type")

	// Not-found errors surfaced by the storage layer when the entity a
	// coordinator needs is missing.
	ErrUserNotFound        = errors.New("ledger: user not found")
	ErrDrinkNotFound       = errors.New("ledger: drink not found")
	ErrTransactionNotFound = errors.New("ledger: transaction not found")
)

// InsufficientCreditsError reports a balance deduction that would take the
// account below zero, carrying both sides so callers can render them.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("ledger: insufficient credits: required %d, available %d", e.Required, e.Available)
}
