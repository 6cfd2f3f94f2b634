package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Health is the payload served on /health.
type Health struct {
	Status   string    `json:"status"`
	Files    int       `json:"files"`
	Findings int       `json:"findings"`
	LastScan time.Time `json:"last_scan"`
}

// Server exposes /metrics and /health during watch mode.
type Server struct {
	addr   string
	server *http.Server

	mu     sync.Mutex
	health Health
}

func NewServer(addr string) *Server {
	return &Server{
		addr:   addr,
		health: Health{Status: "starting"},
	}
}

// SetHealth records the result of the latest scan for /health.
func (s *Server) SetHealth(files, findings int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = Health{
		Status:   "up",
		Files:    files,
		Findings: findings,
		LastScan: time.Now().UTC(),
	}
}

func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		health := s.health
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if health.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("observability server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
