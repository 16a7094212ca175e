package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beer_machine/internal/models"
)

// ErrMissingYearOrMonth indicates a leaderboard request without a period.
var ErrMissingYearOrMonth = errors.New("app: year and month are required")

// leaderboardCacheTTL bounds how stale a cached leaderboard page can get.
const leaderboardCacheTTL = 60 * time.Second

// monthDateRange returns the first instant of the month and the last instant
// before the next one.
func monthDateRange(year, month int) (time.Time, time.Time) {
	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	endDate := startDate.AddDate(0, 1, 0).Add(-time.Millisecond)
	return startDate, endDate
}

// ProcessLeaderboard returns the ranked monthly consumption leaderboard.
// Results are cached briefly since every open client polls this view.
func (app *App) ProcessLeaderboard(ctx context.Context, year, month int) (*models.LeaderboardResponse, error) {
	if year == 0 || month < 1 || month > 12 {
		return nil, ErrMissingYearOrMonth
	}

	cacheKey := fmt.Sprintf("leaderboard:%d:%d", year, month)
	cached := &models.LeaderboardResponse{}
	if err := app.sessions.Load(ctx, cacheKey, cached); err == nil {
		return cached, nil
	}

	startDate, endDate := monthDateRange(year, month)
	entries, err := app.db.GetMonthlyLeaderboard(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	response := &models.LeaderboardResponse{
		Leaderboard: entries,
		Period: models.LeaderboardPeriod{
			Year:      year,
			Month:     month,
			MonthName: time.Month(month).String(),
			StartDate: startDate,
			EndDate:   endDate,
		},
	}

	if err := app.sessions.Save(ctx, cacheKey, response, leaderboardCacheTTL); err != nil {
		app.log.Sugar().Errorf("Failed to cache leaderboard: %s", err)
	}

	return response, nil
}

// ProcessUserRank reports one user's position within a month's leaderboard.
// Users with no sales that month have no rank.
func (app *App) ProcessUserRank(ctx context.Context, userID int32, year, month int) (*models.RankInfo, error) {
	response, err := app.ProcessLeaderboard(ctx, year, month)
	if err != nil {
		return nil, err
	}

	rank := &models.RankInfo{TotalUsers: len(response.Leaderboard)}
	for _, entry := range response.Leaderboard {
		if entry.UserID == userID {
			rank.Rank = entry.Rank
			rank.TotalDrinks = entry.TotalDrinks
			break
		}
	}

	return rank, nil
}
