package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
	"github.com/ndsl6211/chatroom-server/internal/config"
	"github.com/ndsl6211/chatroom-server/internal/core"
)

// NewServer builds the HTTP server: login/logout, the session-gated
// ping, and the cookie-gated websocket upgrade.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), LoggerMiddleware(logger))

	authHandlers := NewAuthHandlers(authService, cfg.SessionTTL, newRateLimiter(cfg.LoginRateLimit), logger)
	authGroup := engine.Group("/auth")
	authGroup.POST("/login", authHandlers.Login)
	authGroup.POST("/logout", authHandlers.Logout)

	engine.GET("/ping", SessionMiddleware(authService, logger), authHandlers.Ping)
	engine.GET("/health", healthHandler)

	wsHandler := NewWSHandler(hub, authService, cfg.SendBuffer, logger)
	engine.GET("/websocket", wsHandler.Handle)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
