// internal/httpserver/server.go
//
// HTTP server wiring for the word-bingo backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", results, diagnostics.
//   - Round endpoints: create (free or daily), snapshot, status, cell edits,
//     expiry trigger — everything under /rounds/{id} requires the round
//     ticket minted at creation.
//   - WebSocket endpoint for realtime board events (ws.go); registered
//     outside the timeout middleware so long-lived connections survive.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - API errors are terse JSON codes; the user-facing Korean messages live
//     in cell verdicts, not here.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/kipackjeong/wordbingo-server/internal/dict"
	"github.com/kipackjeong/wordbingo-server/internal/results"
	"github.com/kipackjeong/wordbingo-server/internal/round"
)

// Server bundles router, round manager, result store and dictionary handle.
type Server struct {
	r       *chi.Mux
	mgr     *round.Manager
	results *results.Store
	dict    dict.Client
	hub     *Hub
}

// New constructs a Server, installs middleware, and registers routes.
// hub may be the same Hub wired into the manager as its Notifier.
func New(mgr *round.Manager, res *results.Store, dc dict.Client, hub *Hub) *Server {
	s := &Server{r: chi.NewRouter(), mgr: mgr, results: res, dict: dc, hub: hub}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// REST routes get a handler deadline; the WS route below does not.
	rest := s.r.With(chimw.Timeout(10 * time.Second))

	// --- diagnostics ---
	rest.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordbingo-go","endpoints":["/health","POST /rounds","POST /rounds/daily","GET /rounds/{id}","GET /rounds/{id}/ws","GET /results/recent"]}`))
	})
	rest.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- rounds ---
	rest.Post("/rounds", s.handleCreateRound)
	rest.Post("/rounds/daily", s.handleCreateDaily)
	rest.With(s.requireTicket()).Get("/rounds/{id}", s.handleGetRound)
	rest.With(s.requireTicket()).Get("/rounds/{id}/status", s.handleStatus)
	rest.With(s.requireTicket()).Post("/rounds/{id}/cells/{row}/{col}", s.handleEditCell)
	rest.With(s.requireTicket()).Post("/rounds/{id}/expire", s.handleExpire)

	// --- results ---
	rest.Get("/results/recent", s.handleRecentResults)
	rest.Get("/results/daily", s.handleDailyLeaderboard)

	// Debug: dictionary backend + cache counters
	rest.Get("/debug/dictionary", s.handleDebugDictionary)

	// Realtime board channel; ticket checked on upgrade.
	s.r.With(s.requireTicket()).Get("/rounds/{id}/ws", s.handleWS)

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
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
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

// ------------------------------ rounds -------------------------------------

// createRoundReq/Res payloads for POST /rounds and POST /rounds/daily.
type createRoundReq struct {
	Player  string `json:"player"`  // display name, optional
	Rule    string `json:"rule"`    // 1 or 2 consonant glyphs (ignored for daily)
	Seconds int    `json:"seconds"` // round duration; 0 = server default
}
type createRoundRes struct {
	RoundID  string    `json:"roundId"`
	Rule     string    `json:"rule"`
	Deadline time.Time `json:"deadline"`
	Token    string    `json:"token"`
}

// durationFromSeconds clamps a client-supplied duration; 0 defers to the
// manager default.
func durationFromSeconds(sec int) time.Duration {
	if sec <= 0 {
		return 0
	}
	if sec < 10 {
		sec = 10
	}
	if sec > 3600 {
		sec = 3600
	}
	return time.Duration(sec) * time.Second
}

func (s *Server) respondCreated(w http.ResponseWriter, rd *round.Round) {
	tok, err := signTicket(rd.ID, rd.Player, time.Until(rd.Deadline)+time.Hour)
	if err != nil {
		log.Error().Err(err).Str("round", rd.ID).Msg("sign round ticket")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(createRoundRes{
		RoundID:  rd.ID,
		Rule:     rd.Rule,
		Deadline: rd.Deadline,
		Token:    tok,
	})
}

// handleCreateRound starts a round on a caller-chosen rule.
func (s *Server) handleCreateRound(w http.ResponseWriter, r *http.Request) {
	var req createRoundReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	rd, err := s.mgr.Create(r.Context(), round.CreateOptions{
		Rule:     req.Rule,
		Player:   req.Player,
		Duration: durationFromSeconds(req.Seconds),
	})
	if err != nil {
		if errors.Is(err, round.ErrBadRule) {
			http.Error(w, `{"error":"invalid_rule"}`, http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("create round")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	s.respondCreated(w, rd)
}

// handleCreateDaily starts a round on today's rule.
func (s *Server) handleCreateDaily(w http.ResponseWriter, r *http.Request) {
	var req createRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req) // body optional here

	rd, err := s.mgr.CreateDaily(r.Context(), req.Player, durationFromSeconds(req.Seconds))
	if err != nil {
		log.Error().Err(err).Msg("create daily round")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	s.respondCreated(w, rd)
}

// getRound resolves {id} or writes a 404.
func (s *Server) getRound(w http.ResponseWriter, r *http.Request) (*round.Round, bool) {
	rd, err := s.mgr.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return rd, true
}

// handleGetRound returns the full board snapshot.
func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.getRound(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(rd.Status())
}

// statusRes is the compact completion signal.
type statusRes struct {
	Filled        int  `json:"filled"`
	Valid         int  `json:"valid"`
	HasDuplicates bool `json:"hasDuplicates"`
	Complete      bool `json:"complete"`
	Expired       bool `json:"expired"`
}

// handleStatus returns derived counts without the cell grid.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.getRound(w, r)
	if !ok {
		return
	}
	st := rd.Status()
	_ = json.NewEncoder(w).Encode(statusRes{
		Filled:        st.FilledCount,
		Valid:         st.ValidCount,
		HasDuplicates: st.HasDuplicates,
		Complete:      st.Complete,
		Expired:       st.Expired,
	})
}

// editCellReq is the body of POST /rounds/{id}/cells/{row}/{col}.
type editCellReq struct {
	Word string `json:"word"`
}

// handleEditCell is the REST fallback for cell edits (same path as WS edit).
func (s *Server) handleEditCell(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.getRound(w, r)
	if !ok {
		return
	}
	row, err1 := strconv.Atoi(chi.URLParam(r, "row"))
	col, err2 := strconv.Atoi(chi.URLParam(r, "col"))
	if err1 != nil || err2 != nil {
		http.Error(w, `{"error":"bad_cell"}`, http.StatusBadRequest)
		return
	}
	var req editCellReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	upd, err := rd.EditCell(row, col, req.Word)
	switch {
	case errors.Is(err, round.ErrRoundOver):
		http.Error(w, `{"error":"round_over"}`, http.StatusConflict)
		return
	case errors.Is(err, round.ErrBadCell):
		http.Error(w, `{"error":"bad_cell"}`, http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Msg("edit cell")
		http.Error(w, `{"error":"edit_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(upd)
}

// handleExpire triggers the deadline fallback on demand. Idempotent: a
// repeat call reports the current state with nothing reverted.
func (s *Server) handleExpire(w http.ResponseWriter, r *http.Request) {
	rd, ok := s.getRound(w, r)
	if !ok {
		return
	}
	payload, first := rd.ExpireNow("manual")
	if !first {
		payload = round.ExpiredPayload{
			Reason:        "manual",
			RevertedCells: []string{},
			State:         rd.Status(),
		}
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// ------------------------------ results ------------------------------------

func limitParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return n
}

// handleRecentResults lists recently finished rounds, newest first.
func (s *Server) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	rows, err := s.results.Recent(r.Context(), limitParam(r))
	if err != nil {
		log.Error().Err(err).Msg("recent results")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []results.Row{}
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleDailyLeaderboard lists completed daily rounds for a date, fastest
// first. Defaults to today.
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = round.DateKey(time.Now())
	}
	rows, err := s.results.DailyLeaderboard(r.Context(), date, limitParam(r))
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []results.Row{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "results": rows})
}

// handleDebugDictionary reports the lookup backend and cache counters.
func (s *Server) handleDebugDictionary(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{"backend": s.dict.Name()}
	if c, ok := s.dict.(*dict.Cache); ok {
		hits, misses := c.Stats()
		out["cacheHits"] = hits
		out["cacheMisses"] = misses
	}
	_ = json.NewEncoder(w).Encode(out)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
