package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/opentocoder/docker-panel/internal/api"
	"github.com/opentocoder/docker-panel/internal/auth"
	"github.com/opentocoder/docker-panel/internal/clock"
	"github.com/opentocoder/docker-panel/internal/config"
	"github.com/opentocoder/docker-panel/internal/engine"
	"github.com/opentocoder/docker-panel/internal/logging"
	"github.com/opentocoder/docker-panel/internal/users"
)

func main() {
	configFile := flag.String("config", "", "Configuration file (optional)")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "docker-panel: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logging.New(logging.Config{
		Level: level,
		JSON:  cfg.Log.JSON,
	})
	logging.SetDefault(logger)

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		// Without a configured secret, sessions do not survive restarts.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn("no token secret configured, using a random per-process secret; sessions reset on restart")
	}

	store, err := openUserStore(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	eng, err := engine.Connect(cfg.EngineHost)
	if err != nil {
		return err
	}

	clk := &clock.RealClock{}
	srv := api.NewServer(api.ServerOptions{
		Config: cfg,
		Engine: eng,
		Users:  store,
		Tokens: auth.NewTokenService(secret, clk),
		Logger: logger,
		Clock:  clk,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "listen", cfg.Listen, "engine", cfg.EngineHost, "db", cfg.Database)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

func openUserStore(path string) (*users.SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}
	return users.Open(path)
}
