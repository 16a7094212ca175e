package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

// loginHandler authenticates a staff account with username and password and
// returns a signed token.
func (handlers *handlers) loginHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var loginRequest models.LoginRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &loginRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	loginResponse, err := handlers.app.ProcessLogin(ctx, loginRequest)
	if err != nil {
		if errors.Is(err, app.ErrMissingUsernameOrPassword) {
			writeErrorResponse(res, "missing username or password", http.StatusBadRequest)
			return
		}

		if errors.Is(err, ledger.ErrUserNotFound) || errors.Is(err, app.ErrInvalidCredentials) ||
			errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			writeErrorResponse(res, "invalid username or password", http.StatusUnauthorized)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, loginResponse)
}

// currentUserHandler returns the account behind the presented token.
func (handlers *handlers) currentUserHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	userBrief, err := handlers.app.ProcessCurrentUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			writeErrorResponse(res, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, userBrief)
}

// logoutHandler acknowledges a logout. Tokens are stateless, so discarding
// the client's copy is the whole operation.
func (handlers *handlers) logoutHandler(res http.ResponseWriter, req *http.Request) {
	writeJSONResponse(res, http.StatusOK, map[string]string{"message": "logged out"})
}
