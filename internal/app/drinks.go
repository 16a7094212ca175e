package app

import (
	"context"

	"beer_machine/internal/models"
)

// ProcessCreateDrink registers a new sellable drink.
func (app *App) ProcessCreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	if drink.Name == "" || drink.Price == 0 {
		return nil, ErrMissingNameOrPrice
	}
	if drink.Price < 1 {
		return nil, ErrInvalidPrice
	}
	if drink.Category == "" {
		drink.Category = "beverage"
	}

	return app.db.CreateDrink(ctx, drink)
}

// ProcessGetDrink retrieves a single drink by id.
func (app *App) ProcessGetDrink(ctx context.Context, drinkID int32) (*models.Drink, error) {
	return app.db.GetDrinkByID(ctx, drinkID)
}

// ProcessListDrinks returns a page of drinks matching the filter.
func (app *App) ProcessListDrinks(ctx context.Context, filter models.DrinkFilter) (*models.DrinksResponse, error) {
	normalizePage(&filter.Page, &filter.Limit)

	drinks, total, err := app.db.ListDrinks(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.DrinksResponse{
		Drinks:     drinks,
		Pagination: paginate(total, filter.Page, filter.Limit),
	}, nil
}

// DrinkUpdate carries the optional fields of a drink update.
type DrinkUpdate struct {
	Name        *string
	Description *string
	Price       *int
	Stock       *int
	Category    *string
	IsActive    *bool
}

// ProcessUpdateDrink applies a partial update to a drink.
func (app *App) ProcessUpdateDrink(ctx context.Context, drinkID int32, update DrinkUpdate) (*models.Drink, error) {
	drink, err := app.db.GetDrinkByID(ctx, drinkID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		drink.Name = *update.Name
	}
	if update.Description != nil {
		drink.Description = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 1 {
			return nil, ErrInvalidPrice
		}
		drink.Price = *update.Price
	}
	if update.Stock != nil && *update.Stock >= 0 {
		drink.Stock = *update.Stock
	}
	if update.Category != nil && *update.Category != "" {
		drink.Category = *update.Category
	}
	if update.IsActive != nil {
		drink.IsActive = *update.IsActive
	}

	if err = app.db.UpdateDrink(ctx, drink); err != nil {
		return nil, err
	}
	return drink, nil
}

// ProcessAddStock increases a drink's stock through the checked rule.
func (app *App) ProcessAddStock(ctx context.Context, drinkID int32, quantity int) (*models.Drink, error) {
	return app.db.AddDrinkStock(ctx, drinkID, quantity)
}

// ProcessDeactivateDrink soft-deletes a drink.
func (app *App) ProcessDeactivateDrink(ctx context.Context, drinkID int32) error {
	return app.db.DeactivateDrink(ctx, drinkID)
}
