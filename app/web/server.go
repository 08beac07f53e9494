// Package web exposes the simulator over a small JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rank"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rating"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/sim"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/store"
)

const (
	defaultRosterSize = 8
	defaultTopCount   = 10
	defaultMatches    = 100
	decayWindow       = 30 * 24 * time.Hour
	shutdownTimeout   = 5 * time.Second
)

// Server is the JSON API on top of a roster store.
type Server struct {
	Addr  string
	Store store.Store

	mu sync.Mutex // the roster is single-writer, init and run serialize on it
}

// Run starts the server.
// Blocking call.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] starting web server on %s", s.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[WARN] stopping web server with reason: %v", context.Cause(ctx))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web server: %w", err)
	}
	return nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/init", s.handleInit)
	mux.HandleFunc("POST /api/run", s.handleRun)
	mux.HandleFunc("GET /api/top", s.handleTop)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return requestID(c.Handler(mux))
}

// handleInit seeds the sample roster, but only when the store is empty.
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := r.Context()
	roster, err := s.Store.Load(ctx)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("load roster: %w", err))
		return
	}
	if len(roster) > 0 {
		writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Message: "roster already exists"})
		return
	}

	if err := s.Store.Save(ctx, league.SampleRoster(defaultRosterSize)); err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("save roster: %w", err))
		return
	}
	writeJSON(w, http.StatusCreated, statusResponse{Status: "ok", Message: "sample roster created"})
}

// handleRun executes a batch with the requested parameters and persists the
// updated roster. An empty store falls back to the sample roster.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	req := parseRunRequest(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := r.Context()
	roster, err := s.Store.Load(ctx)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("load roster: %w", err))
		return
	}
	if len(roster) == 0 {
		roster = league.SampleRoster(defaultRosterSize)
	}

	engine, err := sim.New(roster, sim.Options{
		K:              req.K,
		ArcadeMode:     req.Arcade,
		StreakBonusPct: req.Streak,
		DecayPerDay:    req.Decay,
	})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, sim.ErrInvalidOptions) {
			code = http.StatusBadRequest
		}
		writeError(w, r, code, err)
		return
	}

	records := engine.RunBatch(req.Matches, req.Seed)
	engine.ApplyDecayPass(decayWindow)

	if err := s.Store.Save(ctx, roster); err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("save roster: %w", err))
		return
	}
	if arch, ok := s.Store.(store.Archiver); ok {
		if err := arch.ArchiveMatches(ctx, records); err != nil {
			log.Printf("[WARN] failed to archive matches: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, runResponse{
		Status:  "ok",
		Matches: len(records),
		Top:     topProjection(roster, defaultTopCount),
	})
}

// handleTop reports the current leaderboard without running anything.
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	roster, err := s.Store.Load(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, fmt.Errorf("load roster: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, topResponse{Status: "ok", Top: topProjection(roster, defaultTopCount)})
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type topResponse struct {
	Status string     `json:"status"`
	Top    []topEntry `json:"top"`
}

type runResponse struct {
	Status  string     `json:"status"`
	Matches int        `json:"matches"`
	Top     []topEntry `json:"top"`
}

type topEntry struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Rating float64         `json:"rating"`
	Wins   int             `json:"wins"`
	Tier   rank.Descriptor `json:"tier"`
}

func topProjection(roster []*league.Competitor, n int) []topEntry {
	top := league.TopByRating(roster, n)
	entries := make([]topEntry, 0, len(top))
	for _, c := range top {
		entries = append(entries, topEntry{
			ID:     c.ID,
			Name:   c.Name,
			Rating: c.Rating,
			Wins:   c.Wins,
			Tier:   c.Tier,
		})
	}
	return entries
}

type runRequest struct {
	Matches int
	K       float64
	Arcade  bool
	Streak  float64
	Decay   float64
	Seed    *int64
}

// parseRunRequest reads batch parameters from the body. Parsing is forgiving:
// a malformed body or field falls back to defaults so hand-thrown curl
// payloads still run. Numeric fields accept numbers or numeric strings.
func parseRunRequest(r *http.Request) runRequest {
	req := runRequest{Matches: defaultMatches, K: rating.DefaultK}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return req
	}

	req.Matches = intField(fields, "matches", req.Matches)
	req.K = floatField(fields, "k", req.K)
	req.Streak = floatField(fields, "streak", 0)
	req.Decay = floatField(fields, "decay", 0)
	if raw, ok := fields["arcade"]; ok {
		_ = json.Unmarshal(raw, &req.Arcade)
	}
	if raw, ok := fields["seed"]; ok {
		req.Seed = seedField(raw)
	}
	return req
}

func intField(fields map[string]json.RawMessage, name string, def int) int {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return def
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return int(f)
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func floatField(fields map[string]json.RawMessage, name string, def float64) float64 {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return def
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	}
	return def
}

// seedField turns the payload seed into an optional value: absent, null,
// empty or non-numeric all mean "pick a random seed".
func seedField(raw json.RawMessage) *int64 {
	if string(raw) == "null" {
		return nil
	}
	var n int64
	if json.Unmarshal(raw, &n) == nil {
		return &n
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return &v
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, code int, err error) {
	log.Printf("[WARN] request %s failed: %v", RequestID(r.Context()), err)
	writeJSON(w, code, statusResponse{Status: "error", Message: err.Error()})
}
