package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

const dateLayout = "2006-01-02"

// sellHandler records a sale: the buyer pays credits, the drink loses stock,
// and a ledger entry is written, all atomically.
func (handlers *handlers) sellHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	var sellRequest models.SellRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &sellRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var creditsError *ledger.InsufficientCreditsError
	var pgError *pgconn.PgError
	saleResult, err := handlers.app.ProcessSell(ctx, sellRequest, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingUserOrDrink):
			writeErrorResponse(res, "user id and drink id are required", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "user not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrDrinkNotFound):
			writeErrorResponse(res, "drink not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrDrinkUnavailable):
			writeErrorResponse(res, "drink is unavailable or out of stock", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrInsufficientStock):
			writeErrorResponse(res, "not enough stock for the requested quantity", http.StatusBadRequest)
		case errors.As(err, &creditsError):
			writeCreditsErrorResponse(res, creditsError)
		case errors.As(err, &pgError) && pgError.Code == pgerrcode.CheckViolation:
			// The database constraints reject what a concurrent unit of work
			// already spent.
			writeErrorResponse(res, "sale cannot be performed", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, saleResult)
}

// undoHandler reverts a sale or a credit addition by compensating its effects
// and deleting the ledger entry.
func (handlers *handlers) undoHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	transactionID, err := strconv.ParseInt(chi.URLParam(req, "transactionID"), 10, 64)
	if err != nil || transactionID <= 0 {
		writeErrorResponse(res, "invalid transaction id provided", http.StatusBadRequest)
		return
	}

	var creditsError *ledger.InsufficientCreditsError
	undoResult, err := handlers.app.ProcessUndo(ctx, transactionID, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound):
			writeErrorResponse(res, "transaction not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "user not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrUnsupportedTransactionType):
			writeErrorResponse(res, "transaction type cannot be undone", http.StatusBadRequest)
		case errors.As(err, &creditsError):
			writeCreditsErrorResponse(res, creditsError)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, undoResult)
}

// historyHandler returns a filtered page of ledger entries.
func (handlers *handlers) historyHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	filter := models.TransactionFilter{Type: req.URL.Query().Get("type")}
	if raw := req.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeErrorResponse(res, "invalid userId provided", http.StatusBadRequest)
			return
		}
		filter.UserID = int32(userID)
	}

	var err error
	if filter.StartDate, err = dateQueryParam(req, "startDate"); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	if filter.EndDate, err = dateQueryParam(req, "endDate"); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	filter.Page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(req.URL.Query().Get("limit"))

	history, err := handlers.app.ProcessHistory(ctx, filter)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, history)
}

// statsHandler returns sale and credit totals for an optional date range.
func (handlers *handlers) statsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	startDate, err := dateQueryParam(req, "startDate")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}
	endDate, err := dateQueryParam(req, "endDate")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := handlers.app.ProcessStats(ctx, startDate, endDate)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, stats)
}

// dateQueryParam parses an optional YYYY-MM-DD query parameter.
func dateQueryParam(req *http.Request, name string) (*time.Time, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.New("invalid " + name + " provided, expected YYYY-MM-DD")
	}
	return &parsed, nil
}
