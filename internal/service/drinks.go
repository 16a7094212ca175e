package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

// createDrinkHandler adds a new drink to the catalog.
func (handlers *handlers) createDrinkHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var drink models.Drink

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &drink); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handlers.app.ProcessCreateDrink(ctx, &drink)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingNameOrPrice):
			writeErrorResponse(res, "name and price are required", http.StatusBadRequest)
		case errors.Is(err, app.ErrInvalidPrice):
			writeErrorResponse(res, "price must be at least 1 credit", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "drink with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusCreated, created)
}

// getDrinkHandler returns one drink by id.
func (handlers *handlers) getDrinkHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	drinkID, err := idURLParam(req, "drinkID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	drink, err := handlers.app.ProcessGetDrink(ctx, drinkID)
	if err != nil {
		if errors.Is(err, ledger.ErrDrinkNotFound) {
			writeErrorResponse(res, "drink not found", http.StatusNotFound)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, drink)
}

// listDrinksHandler returns a filtered page of the catalog.
func (handlers *handlers) listDrinksHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	filter := models.DrinkFilter{
		Search:   req.URL.Query().Get("search"),
		Category: req.URL.Query().Get("category"),
		InStock:  req.URL.Query().Get("inStock") == "true",
	}
	filter.Page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(req.URL.Query().Get("limit"))

	drinks, err := handlers.app.ProcessListDrinks(ctx, filter)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, drinks)
}

// updateDrinkHandler applies a partial update to a drink.
func (handlers *handlers) updateDrinkHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	drinkID, err := idURLParam(req, "drinkID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var updateRequest models.UpdateDrinkRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &updateRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	drink, err := handlers.app.ProcessUpdateDrink(ctx, drinkID, app.DrinkUpdate{
		Name:        updateRequest.Name,
		Description: updateRequest.Description,
		Price:       updateRequest.Price,
		Stock:       updateRequest.Stock,
		Category:    updateRequest.Category,
		IsActive:    updateRequest.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDrinkNotFound):
			writeErrorResponse(res, "drink not found", http.StatusNotFound)
		case errors.Is(err, app.ErrInvalidPrice):
			writeErrorResponse(res, "price must be at least 1 credit", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "drink with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, drink)
}

// addStockHandler increases a drink's stock.
func (handlers *handlers) addStockHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	drinkID, err := idURLParam(req, "drinkID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var stockRequest models.AddStockRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &stockRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	drink, err := handlers.app.ProcessAddStock(ctx, drinkID, stockRequest.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrDrinkNotFound):
			writeErrorResponse(res, "drink not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrInvalidQuantity):
			writeErrorResponse(res, "quantity must be greater than 0", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, drink)
}

// deactivateDrinkHandler removes a drink from sale without deleting its
// sales history.
func (handlers *handlers) deactivateDrinkHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	drinkID, err := idURLParam(req, "drinkID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handlers.app.ProcessDeactivateDrink(ctx, drinkID); err != nil {
		if errors.Is(err, ledger.ErrDrinkNotFound) {
			writeErrorResponse(res, "drink not found", http.StatusNotFound)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, map[string]string{"message": "drink deactivated"})
}
