package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
)

// AuthHandlers provides the login/logout/ping HTTP endpoints.
type AuthHandlers struct {
	auth       *auth.Service
	sessionTTL time.Duration
	limiter    *rateLimiter
	log        *zerolog.Logger
}

// NewAuthHandlers creates the auth endpoint handlers.
func NewAuthHandlers(authService *auth.Service, sessionTTL time.Duration, limiter *rateLimiter, logger *zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		auth:       authService,
		sessionTTL: sessionTTL,
		limiter:    limiter,
		log:        logger,
	}
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login handles user login.
// POST /auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	if !h.limiter.allow() {
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many login attempts"})
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to login user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	maxAge := int(h.sessionTTL.Seconds())
	c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
	c.SetCookie(UserCookie, req.Username, maxAge, "/", "", false, false)

	h.log.Info().Str("username", req.Username).Msg("user logged in")
	c.String(http.StatusOK, "login succeeded")
}

// Logout invalidates the current session. Idempotent.
// POST /auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		h.auth.Logout(token)
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.SetCookie(UserCookie, "", -1, "/", "", false, false)
	c.Status(http.StatusOK)
}

// Ping is a session-gated health probe.
// GET /ping
func (h *AuthHandlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
