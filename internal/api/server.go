// Package api exposes the panel's HTTP surface: session auth, user
// registration, and the per-kind engine resource endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/opentocoder/docker-panel/internal/auth"
	"github.com/opentocoder/docker-panel/internal/clock"
	"github.com/opentocoder/docker-panel/internal/config"
	"github.com/opentocoder/docker-panel/internal/engine"
	"github.com/opentocoder/docker-panel/internal/logging"
	"github.com/opentocoder/docker-panel/internal/metrics"
	"github.com/opentocoder/docker-panel/internal/ratelimit"
	"github.com/opentocoder/docker-panel/internal/users"
)

// ServerConfig holds HTTP server security configuration.
type ServerConfig struct {
	ReadHeaderTimeout time.Duration // Slowloris prevention
	ReadTimeout       time.Duration // Body read limit
	WriteTimeout      time.Duration // Response timeout
	IdleTimeout       time.Duration // Keep-alive timeout
	MaxHeaderBytes    int           // Header size limit
	MaxBodyBytes      int64         // Request body size limit
}

// DefaultServerConfig returns secure default server configuration.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,  // 64KB header limit
		MaxBodyBytes:      10 << 20, // 10MB body limit
	}
}

// Server handles API requests.
type Server struct {
	cfg          config.Config
	engine       engine.API
	users        users.Store
	tokens       *auth.TokenService
	gate         *auth.Gate
	registration *auth.RegistrationPolicy
	loginLimiter *ratelimit.Limiter
	logger       *logging.Logger
	startTime    time.Time

	mux *http.ServeMux
}

// ServerOptions holds dependencies for the API server.
type ServerOptions struct {
	Config config.Config
	Engine engine.API
	Users  users.Store
	Tokens *auth.TokenService
	Logger *logging.Logger
	Clock  clock.Clock // optional, defaults to the wall clock
}

// NewServer creates a new API server with the provided options.
func NewServer(opts ServerOptions) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	clk := opts.Clock
	if clk == nil {
		clk = &clock.RealClock{}
	}

	s := &Server{
		cfg:          opts.Config,
		engine:       opts.Engine,
		users:        opts.Users,
		tokens:       opts.Tokens,
		gate:         auth.NewGate(opts.Tokens),
		registration: auth.NewRegistrationPolicy(opts.Users, logger),
		loginLimiter: ratelimit.NewLimiter(ratelimit.DefaultMaxAttempts, ratelimit.DefaultWindow, clk),
		logger:       logger.WithComponent("api"),
		startTime:    clk.Now(),
	}
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	mux := http.NewServeMux()
	s.mux = mux

	// Public endpoints
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("GET /api/engine/ping", s.handlePing)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Containers
	mux.HandleFunc("GET /api/containers", s.handleContainerList)
	mux.HandleFunc("GET /api/containers/{id}", s.handleContainerInspect)
	mux.HandleFunc("POST /api/containers/{id}/start", s.handleContainerStart)
	mux.HandleFunc("POST /api/containers/{id}/stop", s.handleContainerStop)
	mux.HandleFunc("POST /api/containers/{id}/restart", s.handleContainerRestart)
	mux.HandleFunc("DELETE /api/containers/{id}", s.handleContainerRemove)
	mux.HandleFunc("GET /api/containers/{id}/logs", s.handleContainerLogs)

	// Images
	mux.HandleFunc("GET /api/images", s.handleImageList)
	mux.HandleFunc("DELETE /api/images/{id}", s.handleImageRemove)
	mux.HandleFunc("POST /api/images/prune", s.handleImagePrune)
	mux.HandleFunc("POST /api/images/pull", s.handleImagePull)

	// Networks
	mux.HandleFunc("GET /api/networks", s.handleNetworkList)
	mux.HandleFunc("POST /api/networks", s.handleNetworkCreate)
	mux.HandleFunc("GET /api/networks/{id}", s.handleNetworkInspect)
	mux.HandleFunc("DELETE /api/networks/{id}", s.handleNetworkRemove)

	// Volumes
	mux.HandleFunc("GET /api/volumes", s.handleVolumeList)
	mux.HandleFunc("POST /api/volumes", s.handleVolumeCreate)
	mux.HandleFunc("DELETE /api/volumes/{name}", s.handleVolumeRemove)
	mux.HandleFunc("POST /api/volumes/prune", s.handleVolumePrune)

	// Compose projects
	mux.HandleFunc("GET /api/compose", s.handleComposeList)
	mux.HandleFunc("POST /api/compose/{name}/start", s.handleComposeStart)
	mux.HandleFunc("POST /api/compose/{name}/stop", s.handleComposeStop)

	// System
	mux.HandleFunc("GET /api/system/stats", s.handleSystemStats)
	mux.HandleFunc("GET /api/system/info", s.handleSystemInfo)

	// Engine event stream
	mux.HandleFunc("GET /api/events/ws", s.handleEventsWS)
}

// Handler returns the HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	cfg := DefaultServerConfig()
	return s.accessLogMiddleware(s.maxBodyMiddleware(cfg.MaxBodyBytes)(s.mux))
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	cfg := DefaultServerConfig()
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "listen", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}
