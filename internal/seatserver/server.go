// Package seatserver hosts websocket seats for remote agents. Each seat is
// reserved by name; the first connection to /seats/{name} takes it.
package seatserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/headsup/internal/agent"
)

// ErrUnknownSeat is returned when waiting for a seat that was never
// reserved.
var ErrUnknownSeat = errors.New("seatserver: unknown seat")

type seat struct {
	ready chan struct{}
	agent *agent.WebSocketAgent
}

// Server accepts agents for a fixed set of seats.
type Server struct {
	router   chi.Router
	upgrader websocket.Upgrader
	cfg      agent.Config
	logger   zerolog.Logger

	mu     sync.Mutex
	seats  map[string]*seat
	status func() any
}

// New reserves the named seats. Agents connecting to them use cfg.
func New(names []string, cfg agent.Config, logger zerolog.Logger) *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		cfg:    cfg,
		logger: logger.With().Str("component", "seatserver").Logger(),
		seats:  make(map[string]*seat, len(names)),
	}
	for _, name := range names {
		s.seats[name] = &seat{ready: make(chan struct{})}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Get("/seats/{name}", s.handleSeat)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetStatus installs a function whose result is reported under "match" by
// the status endpoint.
func (s *Server) SetStatus(fn func() any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = fn
}

// Wait blocks until an agent has taken the named seat.
func (s *Server) Wait(ctx context.Context, name string) (*agent.WebSocketAgent, error) {
	s.mu.Lock()
	st, ok := s.seats[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeat, name)
	}

	select {
	case <-st.ready:
		s.mu.Lock()
		defer s.mu.Unlock()
		return st.agent, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for seat %s: %w", name, ctx.Err())
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "OK")
}

// SeatStatus reports whether a seat has been taken.
type SeatStatus struct {
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Status is the body of the status endpoint.
type Status struct {
	Seats []SeatStatus `json:"seats"`
	Match any          `json:"match,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	var out Status
	for name, st := range s.seats {
		out.Seats = append(out.Seats, SeatStatus{Name: name, Connected: st.agent != nil})
	}
	status := s.status
	s.mu.Unlock()

	sort.Slice(out.Seats, func(i, j int) bool { return out.Seats[i].Name < out.Seats[j].Name })
	if status != nil {
		out.Match = status()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode status")
	}
}

func (s *Server) handleSeat(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	s.mu.Lock()
	st, ok := s.seats[name]
	taken := ok && st.agent != nil
	s.mu.Unlock()
	switch {
	case !ok:
		http.Error(w, "unknown seat", http.StatusNotFound)
		return
	case taken:
		http.Error(w, "seat already taken", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("seat", name).Msg("Failed to upgrade connection")
		return
	}

	s.mu.Lock()
	if st.agent != nil {
		s.mu.Unlock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "seat already taken"))
		_ = conn.Close()
		return
	}
	st.agent = agent.NewWebSocketAgent(conn, name, s.cfg)
	close(st.ready)
	s.mu.Unlock()

	s.logger.Info().
		Str("seat", name).
		Str("remote", r.RemoteAddr).
		Msg("Agent connected")
}
