// internal/store/results.go
//
// Daily-result persistence behind the daily leaderboard. One row per
// (user, date); replays are ignored.

package store

import (
	"context"
)

// DailyResult is one user's finished daily game.
type DailyResult struct {
	UserID   string `json:"userId"`
	Date     string `json:"date"` // "YYYY-MM-DD", UTC cutoff
	DayIndex int    `json:"day"`
	Guesses  int    `json:"guesses"`
}

// LeaderboardRow is one leaderboard entry, joined with the username.
type LeaderboardRow struct {
	Username string `json:"username"`
	Guesses  int    `json:"guesses"`
}

// InsertDailyResult records a finished daily game. Respects the
// UNIQUE(user_id, date) constraint: a second result for the same day is a
// no-op, not an error.
func (s *SQLite) InsertDailyResult(ctx context.Context, r DailyResult) error {
	_, err := s.DB.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (user_id, date, day_index, guesses)
        VALUES (?, ?, ?, ?)`,
		r.UserID, r.Date, r.DayIndex, r.Guesses)
	return err
}

// DailyLeaderboard fetches the top results for a date, fewest guesses
// first, earlier submission breaking ties. Default limit is 20.
func (s *SQLite) DailyLeaderboard(ctx context.Context, date string, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.DB.QueryContext(ctx, `
        SELECT u.username, r.guesses
        FROM daily_results r JOIN users u ON u.id = r.user_id
        WHERE r.date=?
        ORDER BY r.guesses ASC, r.created_at ASC
        LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderboardRow, 0, limit)
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
