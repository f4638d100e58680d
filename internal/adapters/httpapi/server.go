package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/LeonIngman/LTH-Game-sub001/internal/application/common"
)

// Options configures the API server
type Options struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Per-client token bucket; zero RequestsPerSecond disables limiting
	RequestsPerSecond float64
	Burst             int

	// Served at MetricsPath when non-nil
	MetricsHandler http.Handler
	MetricsPath    string
}

// Server exposes the game engine over HTTP/JSON
type Server struct {
	mediator common.Mediator
	logger   common.ContainerLogger
	opts     Options
	limiter  *clientLimiter
	handler  http.Handler
}

// NewServer creates a server dispatching every request through the mediator
func NewServer(mediator common.Mediator, logger common.ContainerLogger, opts Options) *Server {
	if logger == nil {
		logger = common.LoggerFromContext(context.Background())
	}
	s := &Server{
		mediator: mediator,
		logger:   logger,
		opts:     opts,
	}
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = newClientLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/game/process-day", s.handleProcessDay)
	mux.HandleFunc("POST /api/game/validate", s.handleValidateAction)
	mux.HandleFunc("POST /api/game/sessions", s.handleStartGame)
	mux.HandleFunc("GET /api/game/sessions/{userId}/{levelId}", s.handleGetSession)

	mux.HandleFunc("GET /api/levels", s.handleListLevels)
	mux.HandleFunc("GET /api/levels/{levelId}", s.handleGetLevel)

	mux.HandleFunc("GET /api/performance/{userId}", s.handleListPerformances)

	mux.HandleFunc("GET /api/ledger/{userId}/{levelId}/profit-loss", s.handleProfitLoss)
	mux.HandleFunc("GET /api/ledger/{userId}/{levelId}/cash-flow", s.handleCashFlow)
	mux.HandleFunc("GET /api/ledger/{userId}/{levelId}/transactions", s.handleListTransactions)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.opts.MetricsHandler != nil {
		path := s.opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, s.opts.MetricsHandler)
	}

	var handler http.Handler = mux
	handler = s.rateLimitMiddleware(handler)
	handler = s.recoverMiddleware(handler)
	handler = s.requestContextMiddleware(handler)
	return handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Address,
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Log("INFO", "API server listening", map[string]interface{}{"address": s.opts.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Log("INFO", "API server shutting down", nil)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown failed: %w", err)
	}
	return <-errCh
}
