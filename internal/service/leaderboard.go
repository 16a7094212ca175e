package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"beer_machine/internal/app"
)

// leaderboardPeriod reads the year and month query parameters, defaulting to
// the current month when absent.
func leaderboardPeriod(req *http.Request) (int, int, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := req.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("invalid year provided")
		}
		year = parsed
	}
	if raw := req.URL.Query().Get("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.New("invalid month provided")
		}
		month = parsed
	}

	return year, month, nil
}

// leaderboardHandler returns the monthly consumption ranking.
func (handlers *handlers) leaderboardHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	year, month, err := leaderboardPeriod(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	leaderboard, err := handlers.app.ProcessLeaderboard(ctx, year, month)
	if err != nil {
		if errors.Is(err, app.ErrMissingYearOrMonth) {
			writeErrorResponse(res, "invalid year or month provided", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, leaderboard)
}

// userRankHandler returns one user's position in the monthly ranking.
func (handlers *handlers) userRankHandler(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), requestTimeout)
	defer cancel()

	userID, err := idURLParam(req, "userID")
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	year, month, err := leaderboardPeriod(req)
	if err != nil {
		writeErrorResponse(res, err.Error(), http.StatusBadRequest)
		return
	}

	rank, err := handlers.app.ProcessUserRank(ctx, userID, year, month)
	if err != nil {
		if errors.Is(err, app.ErrMissingYearOrMonth) {
			writeErrorResponse(res, "invalid year or month provided", http.StatusBadRequest)
			return
		}
		writeErrorResponse(res, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONResponse(res, http.StatusOK, rank)
}
