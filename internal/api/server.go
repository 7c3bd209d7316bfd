package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JoeBee/resumesite/internal/log"
	"github.com/JoeBee/resumesite/internal/resume"
)

// HTTP server timeouts. WriteTimeout leaves room for a full
// index-build-plus-generation round trip on the first question.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 120 * time.Second
	idleTimeout       = 120 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger     log.Logger
	Loader     *resume.Loader // Required: serves /api/resume and readiness
	Answerer   Answerer       // Optional: nil makes /api/ask report 503
	Static     http.Handler   // Optional: serves the site at / when set
	TrustProxy bool           // Trust X-Real-IP/X-Forwarded-For (behind reverse proxy)
	RateLimit  float64        // Tokens per second per IP (0 = default 1.0)
	RateBurst  int            // Rate limiter burst size per IP (0 = default 5)
}

// Server is the resume site HTTP server.
type Server struct {
	mux *http.ServeMux
}

// NewServer creates the server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Loader == nil {
		return nil, errors.New("resume loader is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	rh := &resumeHandler{loader: cfg.Loader, logger: logger}
	ah := &askHandler{answerer: cfg.Answerer, logger: logger}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 1.0
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 5
	}
	rl := newRateLimiter(limit, burst)

	// Only the ask endpoint is rate limited: it is the one route that costs
	// model quota. Page loads and resume fetches stay cheap and unmetered.
	askLimited := rateLimitMiddleware(rl, cfg.TrustProxy, logger)(http.HandlerFunc(ah.ask))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/resume", rh.get)
	mux.Handle("POST /api/ask", askLimited)
	mux.HandleFunc("GET /api/health", health)
	if cfg.Static != nil {
		mux.Handle("/", cfg.Static)
	}

	// Middleware stack (outermost first):
	//   Recovery → RequestID → Logging → SecurityHeaders → Routes
	// RequestID must be before Logging so request_id is available in log
	// attributes.
	var handler http.Handler = mux
	handler = securityHeadersMiddleware()(handler)
	handler = loggingMiddleware(logger)(handler)
	handler = requestIDMiddleware()(handler)
	handler = recoveryMiddleware(logger)(handler)

	// Health probes sit above the middleware stack so orchestrator checks
	// never compete with visitors for rate limiter tokens.
	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.Handle("GET /ready", readiness(cfg.Loader))
	topMux.Handle("/", handler)

	return &Server{mux: topMux}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNop()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
