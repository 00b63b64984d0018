// Package api serves the game over HTTP.
// GET endpoints are read-only views of the current state.
// POST /api/v1/command dispatches player commands; when an admin key is set
// it requires it as a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/economy"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/engine"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/notify"
	"github.com/Dessuht/syndicate-grid-flow-sub001/internal/persistence"
)

const maxCommandBytes = 64 << 10

// Server serves the game over HTTP.
type Server struct {
	Ctl         *engine.Controller
	Hub         *notify.Hub     // nil disables the notification stream
	DB          *persistence.DB // nil disables the journal endpoint
	Port        int
	AdminKey    string // Bearer token for commands. Empty = commands open (local play).
	CommandRate int    // Commands per minute per client. 0 = unlimited.
}

// Handler builds the routing table.
func (s *Server) Handler() http.Handler {
	limiter := NewRateLimiter(s.CommandRate, time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/officers", s.handleOfficers)
	mux.HandleFunc("/api/v1/soldiers", s.handleSoldiers)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/rivals", s.handleRivals)
	mux.HandleFunc("/api/v1/event", s.handleEvent)
	mux.HandleFunc("/api/v1/log", s.handleLog)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("/api/v1/journal", s.handleJournal)
	if s.Hub != nil {
		mux.Handle("/api/v1/notifications", s.Hub)
	}

	mux.HandleFunc("/api/v1/command", RateLimitMiddleware(limiter, s.authorized(s.handleCommand)))

	return corsMiddleware(mux)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// KOWLOON_CORS_ORIGINS to a comma-separated list; localhost dev servers are
// always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("KOWLOON_CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// authorized requires the bearer token when an admin key is configured.
func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey != "" && !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// view fetches a copy of the game or writes a 500.
func (s *Server) view(w http.ResponseWriter, r *http.Request) (*engine.Game, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	g, err := s.Ctl.View()
	if err != nil {
		slog.Error("view failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	return g, true
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	var activeEvent any
	if g.ActiveEvent != nil {
		activeEvent = map[string]any{
			"id":       g.ActiveEvent.ID,
			"title":    g.ActiveEvent.Title,
			"severity": g.ActiveEvent.Severity,
		}
	}
	writeJSON(w, map[string]any{
		"name":              "Kowloon Syndicate",
		"day":               g.Day,
		"phase":             g.Phase,
		"clock":             g.ClockLabel(),
		"resources":         g.Resources,
		"officers":          len(g.Officers),
		"soldiers":          len(g.Soldiers),
		"buildings":         len(g.Buildings),
		"active_event":      activeEvent,
		"pending_events":    len(g.PendingEvents),
		"tutorial_complete": g.TutorialComplete,
	})
}

func (s *Server) handleOfficers(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	// Traitors are hidden until exposed by an event.
	for _, o := range g.Officers {
		o.IsTraitor = false
	}
	writeJSON(w, g.Officers)
}

func (s *Server) handleSoldiers(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, g.Soldiers)
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	writeJSON(w, g.Buildings)
}

// handleRivals reports rivals. Strength is rounded to the nearest 25 until
// the rival is scouted.
func (s *Server) handleRivals(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	for _, rv := range g.Rivals {
		if !rv.IsScouted {
			rv.Strength = (rv.Strength + 12) / 25 * 25
		}
	}
	writeJSON(w, g.Rivals)
}

// handleEvent answers from a single view so the choices always belong to the
// event shown.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	if g.ActiveEvent == nil {
		writeJSON(w, map[string]any{"active": nil, "pending": len(g.PendingEvents)})
		return
	}
	writeJSON(w, map[string]any{
		"active":  g.ActiveEvent,
		"choices": g.EventChoices(g.ActiveEvent),
		"pending": len(g.PendingEvents),
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	g, ok := s.view(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", 50)
	entries := g.Log
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	writeJSON(w, entries)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, economy.Catalog())
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "journal unavailable", http.StatusServiceUnavailable)
		return
	}
	entries, err := s.DB.RecentJournal(queryInt(r, "limit", 100))
	if err != nil {
		slog.Error("journal query failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, entries)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var cmd engine.Command
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCommandBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		http.Error(w, "bad command: "+err.Error(), http.StatusBadRequest)
		return
	}
	res := s.Ctl.Dispatch(cmd)
	slog.Info("command", "action", cmd.Action, "ok", res.OK, "code", res.Code)
	if !res.OK {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	writeJSON(w, res)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
