package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

// passkeyRegisterOptionsHandler starts registering a passkey for the
// authenticated staff account.
func (handlers *handlers) passkeyRegisterOptionsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	options, err := handlers.app.ProcessPasskeyRegisterOptions(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, app.ErrPasskeysDisabled) {
			writeErrorResponse(res, "passkey support is disabled", http.StatusNotImplemented)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, options)
}

// passkeyRegisterVerifyHandler completes a passkey registration. The request
// body is the authenticator's creation response; the optional deviceName
// query parameter labels the credential.
func (handlers *handlers) passkeyRegisterVerifyHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	deviceName := req.URL.Query().Get("deviceName")
	passkey, err := handlers.app.ProcessPasskeyRegisterVerify(ctx, claims.UserID, deviceName, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPasskeysDisabled):
			writeErrorResponse(res, "passkey support is disabled", http.StatusNotImplemented)
		case errors.Is(err, app.ErrCeremonyExpired):
			writeErrorResponse(res, "registration challenge expired, request new options", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "credential already registered", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		}
		return
	}

	writeJSONResponse(res, http.StatusCreated, passkey)
}

// passkeyLoginOptionsHandler starts a passkey login for the named staff
// account.
func (handlers *handlers) passkeyLoginOptionsHandler(res http.ResponseWriter, req *http.Request) {
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

	options, err := handlers.app.ProcessPasskeyLoginOptions(ctx, loginRequest.Username)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPasskeysDisabled):
			writeErrorResponse(res, "passkey support is disabled", http.StatusNotImplemented)
		case errors.Is(err, app.ErrMissingUsername):
			writeErrorResponse(res, "username is required", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrUserNotFound), errors.Is(err, app.ErrInvalidCredentials):
			writeErrorResponse(res, "invalid username", http.StatusUnauthorized)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, options)
}

// passkeyLoginVerifyHandler completes a passkey login and issues a token.
// The request body is the authenticator's assertion response; the username
// query parameter names the account being asserted.
func (handlers *handlers) passkeyLoginVerifyHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	username := req.URL.Query().Get("username")
	loginResponse, err := handlers.app.ProcessPasskeyLoginVerify(ctx, username, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPasskeysDisabled):
			writeErrorResponse(res, "passkey support is disabled", http.StatusNotImplemented)
		case errors.Is(err, app.ErrMissingUsername):
			writeErrorResponse(res, "username is required", http.StatusBadRequest)
		case errors.Is(err, app.ErrCeremonyExpired):
			writeErrorResponse(res, "login challenge expired, request new options", http.StatusBadRequest)
		case errors.Is(err, ledger.ErrUserNotFound), errors.Is(err, app.ErrInvalidCredentials):
			writeErrorResponse(res, "invalid username", http.StatusUnauthorized)
		default:
			writeErrorResponse(res, "passkey verification failed", http.StatusUnauthorized)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, loginResponse)
}

// listPasskeysHandler lists the authenticated account's passkeys.
func (handlers *handlers) listPasskeysHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	passkeys, err := handlers.app.ProcessListPasskeys(ctx, claims.UserID)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, passkeys)
}

// deletePasskeyHandler removes one of the authenticated account's passkeys.
func (handlers *handlers) deletePasskeyHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	passkeyID, err := idURLParam(req, "passkeyID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handlers.app.ProcessDeletePasskey(ctx, claims.UserID, passkeyID); err != nil {
		if errors.Is(err, app.ErrPasskeyNotFound) {
			writeErrorResponse(res, "passkey not found", http.StatusNotFound)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, map[string]string{"message": "passkey deleted"})
}
