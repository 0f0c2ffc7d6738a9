package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
	"github.com/ndsl6211/chatroom-server/internal/config"
	"github.com/ndsl6211/chatroom-server/internal/core"
	transporthttp "github.com/ndsl6211/chatroom-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	creds, err := auth.LoadCredentials(cfg.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	logger.Info().Str("users_file", cfg.UsersFile).Int("users", len(creds)).Msg("credentials loaded")

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(cfg.SessionSecret),
		Issuer:   "chatroom-server",
		Audience: "chatroom-client",
		TTL:      cfg.SessionTTL,
	}
	authService := auth.NewService(creds, jwtConfig)

	store := core.NewMessageStore()
	hub := core.NewHub(store, cfg.SweepInterval, logger)
	server := transporthttp.NewServer(hub, authService, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
