package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ndsl6211/chatroom-server/internal/auth"
)

const (
	// SessionCookie holds the opaque session token.
	SessionCookie = "chat_sid"
	// UserCookie is an informational, non-httpOnly copy of the username
	// so the frontend can read who is logged in.
	UserCookie = "user"
	// ContextKeyUsername is the gin context key for the resolved username.
	ContextKeyUsername = "username"
)

// SessionMiddleware creates a middleware that resolves the session
// cookie to a username, rejecting the request with 401 otherwise.
func SessionMiddleware(authService *auth.Service, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			logger.Debug().Msg("missing session cookie")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
			c.Abort()
			return
		}

		username, err := authService.Resolve(token)
		if err != nil {
			logger.Debug().Err(err).Msg("invalid session token")
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not logged in"})
			c.Abort()
			return
		}

		c.Set(ContextKeyUsername, username)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("http request")
	}
}
