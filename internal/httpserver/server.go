// internal/httpserver/server.go
//
// HTTP wiring for the Sanagrid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Session endpoints (optional auth; guests play under the anon cookie):
//     GET /session (with shared-link ingestion), POST /session/key,
//     /session/backspace, /session/submit, /session/mode, /session/next,
//     /session/share, /session/profanity, GET /session/ws.
//   - Auth endpoints: /auth/* plus the gated GET /stats/me.
//   - Per-player session manager registry keyed by the auth scope.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token
//     is present; routes still run for guests.
//   - A player's persisted state lives under one KV scope. Logging in moves
//     the anonymous scope onto the account.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/mtoivan/sanagrid/internal/config"
	"github.com/mtoivan/sanagrid/internal/session"
	"github.com/mtoivan/sanagrid/internal/store"
	"github.com/mtoivan/sanagrid/internal/words"
)

// Server bundles router, config, KV store, DB handle, and word lists.
type Server struct {
	r       *chi.Mux
	cfg     *config.Config
	kv      store.KV
	db      *sql.DB       // nil when accounts are disabled
	results *store.SQLite // daily leaderboard storage, nil with db
	lists   *words.Table
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session.Manager
}

// New constructs a Server, installs middleware, and registers routes.
// sq may be nil; auth and leaderboard endpoints then report accounts
// disabled (kv should be a memory store in that setup).
func New(cfg *config.Config, kv store.KV, sq *store.SQLite, lists *words.Table) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		kv:       kv,
		lists:    lists,
		now:      time.Now,
		sessions: make(map[string]*session.Manager),
	}
	if sq != nil {
		s.db = sq.DB
		s.results = sq
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"sanagrid","endpoints":["/health","/session","/session/ws","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(s.lists.Stats())
	})

	// Session endpoints: OPTIONAL AUTH (guests play under the anon cookie)
	sess := s.r.With(s.withOptionalAuth())
	sess.Get("/session", s.handleSession)
	sess.Post("/session/key", s.handleKey)
	sess.Post("/session/backspace", s.handleBackspace)
	sess.Post("/session/submit", s.handleSubmit)
	sess.Post("/session/mode", s.handleMode)
	sess.Post("/session/next", s.handleNext)
	sess.Post("/session/share", s.handleShare)
	sess.Post("/session/profanity", s.handleProfanity)
	sess.Get("/session/ws", s.handleWS)

	// Daily leaderboard (optional auth for recording happens on submit)
	s.mountDaily()

	// Auth + gated stats
	s.mountAuthRoutes()

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

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --------------------------- session registry ------------------------------

// playerScope resolves the KV scope for this request: the account for
// authenticated players, the anon cookie otherwise.
func (s *Server) playerScope(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return "user|" + me.ID
	}
	return "anon|" + s.ensureAnonID(w, r)
}

// manager returns (lazily resuming) the session manager for this request's
// player scope.
func (s *Server) manager(w http.ResponseWriter, r *http.Request) *session.Manager {
	scope := s.playerScope(w, r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.sessions[scope]; ok {
		return m
	}
	m := session.New(r.Context(), s.kv, s.lists, scope, log.Logger, s.now)
	s.sessions[scope] = m
	return m
}

// dropSession evicts a cached manager so the next request resumes from the
// store (used after an anon scope is claimed by an account).
func (s *Server) dropSession(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, scope)
}

// ------------------------------ SESSION ------------------------------------

func writeView(w http.ResponseWriter, m *session.Manager) {
	_ = json.NewEncoder(w).Encode(m.View())
}

// sessionRes is the GET /session payload. CanonicalURL is set when a
// shared-link parameter was consumed so the client can land on a URL that
// does not re-trigger ingestion on reload.
type sessionRes struct {
	session.View
	CanonicalURL string `json:"canonicalUrl,omitempty"`
}

// handleSession returns the current session view. A ?shared=<code> query
// parameter ingests a shared game first; a request without a valid code is
// a reload, which leaves any active shared replay for the game it
// interrupted. A malformed code is ignored beyond that.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	m := s.manager(w, r)
	res := sessionRes{}
	ingested := false
	if code := r.URL.Query().Get("shared"); code != "" {
		if ingested = m.IngestShared(r.Context(), code); ingested {
			res.CanonicalURL = r.URL.Path
		} else {
			log.Debug().Msg("malformed share code ignored")
		}
	}
	if !ingested {
		m.LeaveShared(r.Context())
	}
	res.View = m.View()
	_ = json.NewEncoder(w).Encode(res)
}

type keyReq struct {
	Char string `json:"char"`
}

// handleKey pushes one letter onto the current row.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var body keyReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Char == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	m := s.manager(w, r)
	for _, c := range body.Char {
		m.Push(r.Context(), c)
		break
	}
	writeView(w, m)
}

// handleBackspace removes the last letter of the current row.
func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	m := s.manager(w, r)
	m.Pop(r.Context())
	writeView(w, m)
}

// handleSubmit submits the current row.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	m := s.manager(w, r)
	m.Submit(r.Context())
	s.recordDailyResult(r, m)
	writeView(w, m)
}

type modeReq struct {
	Mode   string `json:"mode"`
	List   string `json:"list"`
	Length int    `json:"length"`
}

// handleMode switches the active (mode, list, length) slot.
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var body modeReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	k, ok := session.KeyFrom(body.Mode, body.List, body.Length)
	if !ok {
		http.Error(w, `{"error":"bad_mode"}`, http.StatusBadRequest)
		return
	}
	m := s.manager(w, r)
	m.Switch(r.Context(), k)
	writeView(w, m)
}

// handleNext starts the next round on the active instance.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	m := s.manager(w, r)
	m.NextRound(r.Context())
	writeView(w, m)
}

type shareReq struct {
	Colorblind bool `json:"colorblind"`
}
type shareRes struct {
	Code  string `json:"code"`
	URL   string `json:"url"`
	Emoji string `json:"emoji,omitempty"`
}

// handleShare returns the share code (and, for a daily game, the emoji
// grid) of the finished active board.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var body shareReq
	_ = json.NewDecoder(r.Body).Decode(&body)

	m := s.manager(w, r)
	code, emoji, ok := m.Share(body.Colorblind)
	if !ok {
		http.Error(w, `{"error":"not_finished"}`, http.StatusConflict)
		return
	}
	_ = json.NewEncoder(w).Encode(shareRes{Code: code, URL: "/session?shared=" + code, Emoji: emoji})
}

type profanityReq struct {
	Allow bool `json:"allow"`
}

// handleProfanity toggles the profanity filter for future word selection.
func (s *Server) handleProfanity(w http.ResponseWriter, r *http.Request) {
	var body profanityReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	m := s.manager(w, r)
	m.SetAllowProfanity(r.Context(), body.Allow)
	writeView(w, m)
}
