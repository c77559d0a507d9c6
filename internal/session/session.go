package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contextKey = "session_id"
	cookieName = "roadwatch_session"
)

// Manager mints and validates anonymous session tokens. There are no
// user accounts; the token only carries a stable session ID so the
// tutorial progress of a browser session can be looked up across
// requests.
type Manager struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

// NewManager creates a new session manager
func NewManager(secret string, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a signed token for a fresh session ID.
func (m *Manager) Issue() (string, string, error) {
	sessionID := uuid.New().String()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return sessionID, signed, nil
}

// Validate parses a token and returns the session ID it carries.
func (m *Manager) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.Subject == "" {
		return "", fmt.Errorf("session token missing subject")
	}
	return c.Subject, nil
}

// Middleware resolves the caller's session ID from the session cookie,
// minting a new session when the cookie is absent or invalid. The
// resolved ID is stored on the request context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cookieName); err == nil {
			if sessionID, err := m.Validate(cookie); err == nil {
				c.Set(contextKey, sessionID)
				c.Next()
				return
			}
			m.logger.Debug("Session cookie rejected, minting a new session")
		}

		sessionID, signed, err := m.Issue()
		if err != nil {
			m.logger.Error("Failed to issue session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
			return
		}
		c.SetCookie(cookieName, signed, int(m.ttl.Seconds()), "/", "", false, true)
		c.Set(contextKey, sessionID)
		c.Next()
	}
}

// ID returns the session ID resolved by the middleware for this request.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
