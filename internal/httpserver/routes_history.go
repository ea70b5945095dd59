// internal/httpserver/routes_history.go
//
// Finished-session history, persisted to SQLite.
// Exposes:
//   - GET /games/recent → the latest sessions (live and finished)
//
// History writes are best effort from the action handlers: a failed insert
// or update is logged and never fails the request. When the server runs
// without a database (tests, ephemeral use) the whole surface degrades to a
// no-op and /games/recent returns an empty list.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/papanpintar/go-server/internal/game"
)

// sessionRow matches the sessions table shape.
type sessionRow struct {
	ID           string `json:"id"`
	Mode         string `json:"mode"`
	ActivityType string `json:"activityType"`
	Players      int    `json:"players"`
	Winner       string `json:"winner,omitempty"`
	Turns        int    `json:"turns"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt,omitempty"`
}

// mountHistory registers the /games routes.
func (s *Server) mountHistory(r chi.Router) {
	r.Get("/games/recent", s.handleRecentSessions)
}

// recordSessionStart inserts a history row for a new session (best effort).
func (s *Server) recordSessionStart(g *game.Game) {
	if s.db == nil {
		return
	}
	snap := g.Snapshot()
	_, err := s.db.Exec(`INSERT INTO sessions (id, mode, activity_type, players, turns, started_at)
	                     VALUES (?,?,?,?,0,?)`,
		snap.ID, string(snap.Mode), string(snap.ActivityType), len(snap.Players),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("insert session row")
	}
}

// recordSessionFinish marks a session finished with its winner (best effort).
func (s *Server) recordSessionFinish(snap game.Snapshot) {
	if s.db == nil || snap.Winner == nil {
		return
	}
	_, err := s.db.Exec(`UPDATE sessions SET winner=?, turns=?, finished_at=?
	                     WHERE id=? AND finished_at IS NULL`,
		snap.Winner.Name, snap.Turns, time.Now().UTC().Format(time.RFC3339), snap.ID)
	if err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("finish session row")
	}
}

// handleRecentSessions lists the most recent sessions, newest first.
func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	out := []sessionRow{}
	if s.db == nil {
		_ = json.NewEncoder(w).Encode(out)
		return
	}
	rows, err := s.db.Query(`SELECT id, mode, activity_type, players, COALESCE(winner,''), turns,
	                                started_at, COALESCE(finished_at,'')
	                         FROM sessions ORDER BY started_at DESC LIMIT 50`)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var sr sessionRow
		if err := rows.Scan(&sr.ID, &sr.Mode, &sr.ActivityType, &sr.Players, &sr.Winner,
			&sr.Turns, &sr.StartedAt, &sr.FinishedAt); err == nil {
			out = append(out, sr)
		}
	}
	_ = json.NewEncoder(w).Encode(out)
}
