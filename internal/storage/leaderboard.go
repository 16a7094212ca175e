package storage

import (
	"context"
	"time"

	"beer_machine/internal/models"
)

// Admin purchases are operational (testing kegs, comps) and stay out of the
// consumption ranking, matching the exclusion the club has always applied.
const monthlyLeaderboardQuery = `SELECT t.user_id, u.username, u.user_type, COUNT(t.id), SUM(t.quantity), SUM(t.amount)
	FROM transactions t
	JOIN users u ON t.user_id = u.id
	WHERE t.type = 'sale' AND t.transaction_date BETWEEN $1 AND $2 AND u.user_type <> 'admin'
	GROUP BY t.user_id, u.username, u.user_type
	ORDER BY SUM(t.quantity) DESC;`

// GetMonthlyLeaderboard ranks non-admin users by drinks consumed within the
// given period. Rank numbers are assigned here from the sort order.
func (postgresql *PostgreSQL) GetMonthlyLeaderboard(ctx context.Context, startDate, endDate time.Time) ([]models.LeaderboardEntry, error) {
	rows, err := postgresql.db.QueryContext(ctx, monthlyLeaderboardQuery, startDate, endDate)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query monthlyLeaderboardQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.LeaderboardEntry, 0)
	for rows.Next() {
		entry := models.LeaderboardEntry{}
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.UserType,
			&entry.TransactionCount, &entry.TotalDrinks, &entry.TotalSpent); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan leaderboard row in GetMonthlyLeaderboard: %s", err)
			return nil, err
		}
		entry.Rank = len(entries) + 1
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in GetMonthlyLeaderboard: %s", err)
		return entries, err
	}

	return entries, nil
}
