package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when username/password don't match
	// any entry of the credential list.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned when a session token is missing,
	// malformed, expired, or revoked.
	ErrInvalidSession = errors.New("invalid session")
)

// Service authenticates against a static credential list and issues
// opaque session tokens. Tokens are signed JWTs carrying a session ID
// that must also be live in the in-memory session table, so Logout
// actually revokes them.
type Service struct {
	creds     map[string]Credential
	jwtConfig *JWTConfig

	mu       sync.Mutex
	sessions map[string]string // session ID -> username
}

// NewService creates an authentication service over the given
// credential list.
func NewService(creds []Credential, jwtConfig *JWTConfig) *Service {
	byName := make(map[string]Credential, len(creds))
	for _, c := range creds {
		byName[c.Username] = c
	}
	return &Service{
		creds:     byName,
		jwtConfig: jwtConfig,
		sessions:  make(map[string]string),
	}
}

// Login validates the credentials and returns a session token.
func (s *Service) Login(username, password string) (string, error) {
	cred, ok := s.creds[username]
	if !ok || !cred.Match(password) {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, err := GenerateToken(s.jwtConfig, username, sessionID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	s.mu.Lock()
	s.sessions[sessionID] = username
	s.mu.Unlock()

	return token, nil
}

// Logout revokes the session behind the token. Idempotent: unknown or
// garbage tokens are ignored.
func (s *Service) Logout(token string) {
	claims, err := ValidateToken(s.jwtConfig, token)
	if err != nil {
		return
	}
	s.mu.Lock()
	delete(s.sessions, claims.SessionID)
	s.mu.Unlock()
}

// Resolve returns the username behind a valid, unexpired, unrevoked
// session token.
func (s *Service) Resolve(token string) (string, error) {
	claims, err := ValidateToken(s.jwtConfig, token)
	if err != nil {
		return "", ErrInvalidSession
	}

	s.mu.Lock()
	username, ok := s.sessions[claims.SessionID]
	s.mu.Unlock()

	if !ok || username != claims.Username {
		return "", ErrInvalidSession
	}
	return username, nil
}
