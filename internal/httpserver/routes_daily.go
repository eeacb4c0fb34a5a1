// internal/httpserver/routes_daily.go
//
// Daily leaderboard endpoints. The daily game itself is played through the
// regular /session endpoints; a finished daily win by a signed-in player is
// recorded once per (user, date) from the submit handler.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mtoivan/sanagrid/internal/daily"
	"github.com/mtoivan/sanagrid/internal/session"
	"github.com/mtoivan/sanagrid/internal/store"
)

// mountDaily registers the /daily routes. Skipped when accounts are
// disabled, since the leaderboard joins on usernames.
func (s *Server) mountDaily() {
	if s.results == nil {
		return
	}
	s.r.Get("/daily/leaderboard", s.handleLeaderboard)
}

type leaderboardRes struct {
	Date string                 `json:"date"`
	Rows []store.LeaderboardRow `json:"rows"`
}

// handleLeaderboard fetches the top results for ?date= (default today,
// UTC cutoff).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	}
	rows, err := s.results.DailyLeaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(leaderboardRes{Date: date, Rows: rows})
}

// recordDailyResult persists a finished daily win for a signed-in player.
// Best effort: failures are logged and the response is unaffected.
func (s *Server) recordDailyResult(r *http.Request, m *session.Manager) {
	if s.results == nil {
		return
	}
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		return
	}
	date, day, guesses, ok := m.DailyResult()
	if !ok {
		return
	}
	err := s.results.InsertDailyResult(r.Context(), store.DailyResult{
		UserID:   me.ID,
		Date:     date,
		DayIndex: day,
		Guesses:  guesses,
	})
	if err != nil {
		log.Warn().Err(err).Str("user", me.ID).Str("date", date).Msg("record daily result")
	}
}
