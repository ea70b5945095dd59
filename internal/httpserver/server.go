// internal/httpserver/server.go
//
// HTTP server wiring for the board-game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Session endpoints: POST /game/new, GET/DELETE /game/{id}, the action triggers
//     (roll / challenge / validate / close / reset), and a square query.
//   - Roster helper: POST /groups/generate (gender-balanced smart groups).
//   - Finished-session history endpoints (SQLite), mounted under /games.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Invalid actions (wrong phase/mode, duplicate triggers, finished game)
//     are no-ops per the engine contract: the response carries applied=false
//     and the unchanged snapshot, with status 200. The UI is expected to have
//     disabled the control already; the server just refuses quietly.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/papanpintar/go-server/internal/board"
	"github.com/papanpintar/go-server/internal/content"
	"github.com/papanpintar/go-server/internal/game"
	"github.com/papanpintar/go-server/internal/roster"
	"github.com/papanpintar/go-server/internal/store"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB // may be nil; history persistence becomes a no-op
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"papanpintar-go","endpoints":["/health","POST /game/new","POST /game/{id}/roll","POST /groups/generate"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Session lifecycle + actions
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Delete("/", s.handleDeleteGame)
		r.Post("/roll", s.handleAction(game.ActionRoll))
		r.Post("/challenge", s.handleAction(game.ActionOpenChallenge))
		r.Post("/validate", s.handleAction(game.ActionValidate))
		r.Post("/close", s.handleAction(game.ActionCloseModal))
		r.Post("/reset", s.handleAction(game.ActionReset))
		r.Get("/square/{n}", s.handlePlayersAt)
	})

	// Roster helper
	s.r.Post("/groups/generate", s.handleGenerateGroups)

	// Finished-session history
	s.mountHistory(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SESSIONS -----------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode         string               `json:"mode"`         // "track" | "trail"
	ActivityType string               `json:"activityType"` // "cognitive" | "psychomotor"
	Players      []string             `json:"players"`
	BoardSize    int                  `json:"boardSize,omitempty"` // track; default 25
	Ladders      []board.ShortcutEdge `json:"ladders,omitempty"`
	Ropes        []board.ShortcutEdge `json:"ropes,omitempty"`
	DefaultBoard bool                 `json:"defaultBoard,omitempty"` // use the stock shortcut layout
	Content      map[int]string       `json:"content,omitempty"`      // track: square → activity
	Levels       []content.LevelTask  `json:"levels,omitempty"`       // trail: 9 tasks
}

type gameRes struct {
	GameID   string        `json:"gameId"`
	Applied  bool          `json:"applied"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// handleNewGame validates the configuration, creates a session in the store,
// and records a history row (best effort).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(req.Players) == 0 {
		http.Error(w, `{"error":"empty_roster"}`, http.StatusBadRequest)
		return
	}

	var (
		cfg board.Config
		cm  content.Map
	)
	switch req.Mode {
	case string(board.ModeTrail):
		cfg = board.NewTrailConfig()
		cm = content.NewTrailSet(req.Levels, board.TrailLevels)
	case string(board.ModeTrack), "":
		ladders, ropes := req.Ladders, req.Ropes
		if req.DefaultBoard && len(ladders) == 0 && len(ropes) == 0 {
			ladders, ropes = board.DefaultTrackShortcuts()
		}
		cfg = board.NewTrackConfig(req.BoardSize, ladders, ropes)
		cm = content.TrackMap(req.Content)
	default:
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	players := roster.PlayersFromNames(req.Players)
	g, err := game.New(uuid.NewString(), cfg, game.ActivityType(req.ActivityType), players, cm)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	s.recordSessionStart(g)

	_ = json.NewEncoder(w).Encode(gameRes{GameID: g.ID, Applied: true, Snapshot: g.Snapshot()})
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.session(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(gameRes{GameID: g.ID, Applied: true, Snapshot: g.Snapshot()})
}

// handleDeleteGame discards a live session, e.g. when a class abandons a game
// mid-way. Finished-session history rows are unaffected.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.session(w, r); !ok {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"deleted": true})
}

// validateReq is the payload for POST /game/{id}/validate.
type validateReq struct {
	Pass bool `json:"pass"`
}

// handleAction dispatches one engine action. A disallowed action is reported
// with applied=false and the unchanged snapshot.
func (s *Server) handleAction(kind game.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := s.session(w, r)
		if !ok {
			return
		}
		a := game.Action{Kind: kind}
		if kind == game.ActionValidate {
			var body validateReq
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
				return
			}
			a.Pass = body.Pass
		}

		err := g.Apply(a)
		applied := err == nil
		if err != nil && !errors.Is(err, game.ErrNotAllowed) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		if err := s.store.Save(r.Context(), g); err != nil {
			http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
			return
		}

		snap := g.Snapshot()
		if applied && snap.Phase == game.PhaseFinished {
			s.recordSessionFinish(snap)
		}
		_ = json.NewEncoder(w).Encode(gameRes{GameID: g.ID, Applied: applied, Snapshot: snap})
	}
}

// handlePlayersAt lists the players currently on a square.
func (s *Server) handlePlayersAt(w http.ResponseWriter, r *http.Request) {
	g, ok := s.session(w, r)
	if !ok {
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		http.Error(w, `{"error":"bad_square"}`, http.StatusBadRequest)
		return
	}
	players := g.PlayersAt(n)
	if players == nil {
		players = []game.Player{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"square": n, "players": players})
}

// session loads the session for the {id} URL param, writing a 404 on miss.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}

// ------------------------------- GROUPS ------------------------------------

// groupsReq is the payload for POST /groups/generate.
type groupsReq struct {
	Students   []roster.Student `json:"students"`
	GroupCount int              `json:"groupCount"`
	Seed       int64            `json:"seed,omitempty"` // optional, for reproducible grouping
}

// handleGenerateGroups shuffles a class into gender-balanced groups ready to
// use as a session roster.
func (s *Server) handleGenerateGroups(w http.ResponseWriter, r *http.Request) {
	var req groupsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	var rng *rand.Rand
	if req.Seed != 0 {
		rng = rand.New(rand.NewSource(req.Seed))
	}
	groups, err := roster.SmartGroups(req.Students, req.GroupCount, rng)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"groups": groups})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
