package ledger

import "beer_machine/internal/models"

// AddStock increases a drink's stock by a positive quantity.
func AddStock(drink *models.Drink, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	drink.Stock += quantity
	return nil
}

// DeductStock decreases a drink's stock, failing if fewer units remain than
// requested.
func DeductStock(drink *models.Drink, quantity int) error {
	if drink.Stock < quantity {
		return ErrInsufficientStock
	}
	drink.Stock -= quantity
	return nil
}

// InStock reports whether the drink can be sold at all.
func InStock(drink *models.Drink) bool {
	return drink.Stock > 0 && drink.IsActive
}
