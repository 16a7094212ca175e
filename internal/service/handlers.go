// Package service contains HTTP handler implementations for the beer machine
// API endpoints. It orchestrates request parsing, calls the underlying
// business logic in the app package, handles errors (including
// database-specific errors), and writes appropriate HTTP responses.
package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
	"beer_machine/internal/pkg/auth"
	"beer_machine/internal/pkg/logger"
)

const requestTimeout = 10 * time.Second

// handlers aggregates dependencies needed by HTTP handlers,
// including the application business logic and logger.
type handlers struct {
	app *app.App
	log *logger.Logger
}

// newHandlers initializes a new handlers instance with the provided app and
// logger dependencies.
func newHandlers(app *app.App, l *logger.Logger) *handlers {
	return &handlers{app: app, log: l}
}

func writeErrorResponse(res http.ResponseWriter, errorInfo string, statusCode int) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	json.NewEncoder(res).Encode(models.ErrorResponse{Errors: errorInfo})
}

// writeCreditsErrorResponse reports an insufficient balance together with
// both sides of the shortfall so the client can render them.
func writeCreditsErrorResponse(res http.ResponseWriter, creditsError *ledger.InsufficientCreditsError) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(res).Encode(models.ErrorResponse{
		Errors:    creditsError.Error(),
		Required:  creditsError.Required,
		Available: creditsError.Available,
	})
}

func writeJSONResponse(res http.ResponseWriter, statusCode int, payload any) {
	result, err := json.Marshal(payload)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(statusCode)
	res.Write(result)
}

// claimsFromRequest extracts the claims placed in the context by the JWT
// middleware, writing an unauthorized response when absent.
func claimsFromRequest(res http.ResponseWriter, req *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(req.Context())
	if !ok || claims.UserID == 0 {
		writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// idURLParam parses a positive int32 id from the named chi URL parameter.
func idURLParam(req *http.Request, name string) (int32, error) {
	raw := chi.URLParam(req, name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid " + name + " provided")
	}
	return int32(id), nil
}

// isUniqueViolation reports whether err is the database rejecting a
// duplicate value, for example an already-taken username.
func isUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}
