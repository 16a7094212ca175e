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

// createAdminHandler registers a new admin account.
func (handlers *handlers) createAdminHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var adminRequest models.AdminRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &adminRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	admin, err := handlers.app.ProcessCreateAdmin(ctx, adminRequest.Username, adminRequest.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingUsernameOrPassword):
			writeErrorResponse(res, "missing username or password", http.StatusBadRequest)
		case errors.Is(err, app.ErrPasswordTooShort):
			writeErrorResponse(res, "password must be at least 6 characters", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "user with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusCreated, admin)
}

// listAdminsHandler returns all active admin accounts.
func (handlers *handlers) listAdminsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	admins, err := handlers.app.ProcessListAdmins(ctx)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, admins)
}

// updateProfileHandler lets the authenticated staff account change its own
// username or password.
func (handlers *handlers) updateProfileHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	var profileRequest models.ProfileRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &profileRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handlers.app.ProcessUpdateProfile(ctx, claims.UserID,
		profileRequest.Username, profileRequest.Password, profileRequest.CurrentPassword)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrCurrentPasswordRequired):
			writeErrorResponse(res, "current password required to change password", http.StatusBadRequest)
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			writeErrorResponse(res, "incorrect current password", http.StatusUnauthorized)
		case errors.Is(err, app.ErrPasswordTooShort):
			writeErrorResponse(res, "password must be at least 6 characters", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "user with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, user)
}

// updateAdminHandler lets an admin reset another admin's username or
// password.
func (handlers *handlers) updateAdminHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	adminID, err := idURLParam(req, "adminID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var adminRequest models.AdminRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &adminRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	admin, err := handlers.app.ProcessUpdateAdmin(ctx, claims.UserID, adminID, adminRequest.Username, adminRequest.Password)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrOwnAccount):
			writeErrorResponse(res, "use the profile endpoint for your own account", http.StatusBadRequest)
		case errors.Is(err, app.ErrAdminNotFound), errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "admin not found", http.StatusNotFound)
		case errors.Is(err, app.ErrPasswordTooShort):
			writeErrorResponse(res, "password must be at least 6 characters", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "user with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, admin)
}

// deactivateAdminHandler disables another admin account. The last active
// admin cannot be deactivated.
func (handlers *handlers) deactivateAdminHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	adminID, err := idURLParam(req, "adminID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handlers.app.ProcessDeactivateAdmin(ctx, claims.UserID, adminID); err != nil {
		switch {
		case errors.Is(err, app.ErrOwnAccount):
			writeErrorResponse(res, "cannot deactivate your own account", http.StatusBadRequest)
		case errors.Is(err, app.ErrAdminNotFound), errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "admin not found", http.StatusNotFound)
		case errors.Is(err, app.ErrLastActiveAdmin):
			writeErrorResponse(res, "cannot deactivate the last active admin", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, map[string]string{"message": "admin deactivated"})
}
