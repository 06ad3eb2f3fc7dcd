package mockserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-go-golems/gorgia-chat/pkg/chat"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Server is a stand-in for the chat endpoint that answers from fixtures.
type Server struct {
	router   *chi.Mux
	fixtures *Fixtures
	delay    time.Duration
	limiter  *rate.Limiter
}

type Option func(*Server)

// WithDelay holds every chat reply back, to exercise the pending state.
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

// WithRateLimit answers 429 with an error body once r requests per second
// (plus burst) are exceeded. A zero r disables limiting.
func WithRateLimit(r float64, burst int) Option {
	return func(s *Server) {
		if r <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(r), burst)
	}
}

func NewServer(f *Fixtures, options ...Option) *Server {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s := &Server{router: r, fixtures: f}
	for _, opt := range options {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/chat", s.handleChat)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.Allow() {
		s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
		return
	}
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-r.Context().Done():
			return
		}
	}

	rule := s.fixtures.Find(req.Message)
	log.Info().Str("message", req.Message).Str("match", rule.Match).Int("status", rule.Status).Msg("mock chat request")

	status := rule.Status
	if status == 0 {
		status = http.StatusOK
	}
	if rule.Body != "" {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(rule.Body))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rule.Reply); err != nil {
		log.Error().Err(err).Msg("failed to encode fixture reply")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
