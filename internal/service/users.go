package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"beer_machine/internal/app"
	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

// createUserHandler registers a member or non-member account.
func (handlers *handlers) createUserHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	var createRequest models.CreateUserRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &createRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	dateOfBirth, err := parseDateField(createRequest.DateOfBirth)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handlers.app.ProcessCreateUser(ctx, createRequest.Username, createRequest.Credits, dateOfBirth, createRequest.UserType)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingUsername):
			writeErrorResponse(res, "username is required", http.StatusBadRequest)
		case errors.Is(err, app.ErrInvalidUserType):
			writeErrorResponse(res, "invalid user type", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "user with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusCreated, user)
}

// getUserHandler returns one account by id.
func (handlers *handlers) getUserHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, err := idURLParam(req, "userID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handlers.app.ProcessGetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			writeErrorResponse(res, "user not found", http.StatusNotFound)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, user)
}

// listUsersHandler returns a filtered page of accounts.
func (handlers *handlers) listUsersHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	filter := models.UserFilter{
		UserType: req.URL.Query().Get("userType"),
		Search:   req.URL.Query().Get("search"),
	}
	filter.Page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	filter.Limit, _ = strconv.Atoi(req.URL.Query().Get("limit"))

	users, err := handlers.app.ProcessListUsers(ctx, filter)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, users)
}

// updateUserHandler applies a partial update to a member account.
func (handlers *handlers) updateUserHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, err := idURLParam(req, "userID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var updateRequest models.UpdateUserRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &updateRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	update := app.UserUpdate{
		Username: updateRequest.Username,
		UserType: updateRequest.UserType,
		IsActive: updateRequest.IsActive,
	}
	if update.DateOfBirth, err = parseDateField(updateRequest.DateOfBirth); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handlers.app.ProcessUpdateUser(ctx, userID, update)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "user not found", http.StatusNotFound)
		case errors.Is(err, app.ErrCannotModifyAdmin):
			writeErrorResponse(res, "admin accounts are managed separately", http.StatusBadRequest)
		case errors.Is(err, app.ErrInvalidUserType):
			writeErrorResponse(res, "invalid user type", http.StatusBadRequest)
		case isUniqueViolation(err):
			writeErrorResponse(res, "user with provided name already exists", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, user)
}

// addCreditsHandler tops up an account's balance in blocks of 10.
func (handlers *handlers) addCreditsHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	claims, ok := claimsFromRequest(res, req)
	if !ok {
		return
	}

	userID, err := idURLParam(req, "userID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	var creditsRequest models.AddCreditsRequest

	requestBody, err := io.ReadAll(req.Body)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	if err = json.Unmarshal(requestBody, &creditsRequest); err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := handlers.app.ProcessAddCredits(ctx, userID, creditsRequest.Amount, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUserNotFound):
			writeErrorResponse(res, "user not found", http.StatusNotFound)
		case errors.Is(err, ledger.ErrInvalidAmount):
			writeErrorResponse(res, "amount must be a positive multiple of 10", http.StatusBadRequest)
		default:
			writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSONResponse(res, http.StatusOK, user)
}

// exportUsersCSVHandler streams all member accounts as a CSV download.
func (handlers *handlers) exportUsersCSVHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	data, err := handlers.app.ExportUsersCSV(ctx)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "text/csv")
	res.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	res.WriteHeader(http.StatusOK)
	res.Write(data)
}

// importUsersCSVHandler creates member accounts from an uploaded CSV and
// reports per-row failures without aborting the run.
func (handlers *handlers) importUsersCSVHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	file, _, err := req.FormFile("file")
	if err != nil {
		// Fall back to a raw CSV body when the upload is not multipart.
		result, importErr := handlers.app.ImportUsersCSV(ctx, req.Body)
		if importErr != nil {
			writeErrorResponse(res, importErr.Error(), http.StatusInternalServerError)
			return
		}
		writeJSONResponse(res, http.StatusOK, result)
		return
	}
	defer file.Close()

	result, err := handlers.app.ImportUsersCSV(ctx, file)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, result)
}

// parseDateField parses an optional YYYY-MM-DD JSON field.
func parseDateField(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, errors.New("invalid date provided, expected YYYY-MM-DD")
	}
	return &parsed, nil
}
