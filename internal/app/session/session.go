// Package session holds the authenticated identity for the current browser
// context behind a single injectable provider. The backing storage is a
// signed cookie scoped to the origin, so a session survives page reloads and
// there is exactly one writer (login/logout).
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/models"
)

const cookieName = "auth_token"

// Session is the current authenticated identity and role.
type Session struct {
	UserID string
	Name   string
	Email  string
	Role   models.Role
}

// Store reads and writes the per-browser session. Absence of a session is a
// valid state; Read never returns a partially valid session.
type Store interface {
	// Read returns the current session, or false when none exists. Malformed,
	// expired or tampered session data reads as absent.
	Read(c *gin.Context) (Session, bool)
	// Write replaces the current session.
	Write(c *gin.Context, s Session) error
	// Clear destroys the current session.
	Clear(c *gin.Context)
}

// Claims carried inside the session token.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email,omitempty"`
	Name   string      `json:"name,omitempty"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// CookieStore implements Store over an HMAC-SHA256 signed JWT cookie.
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

var _ Store = (*CookieStore)(nil)

func NewCookieStore(secret string, ttl time.Duration, secure bool, logger *zap.Logger) *CookieStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CookieStore{secret: []byte(secret), ttl: ttl, secure: secure, logger: logger}
}

// Read implements Store. Every failure path is fail closed: any defect in
// the cookie yields "no session", never a partially trusted one.
func (s *CookieStore) Read(c *gin.Context) (Session, bool) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return Session{}, false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		s.logger.Debug("Discarding invalid session token",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		return Session{}, false
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return Session{}, false
	}

	return Session{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
	}, true
}

// Write implements Store.
func (s *CookieStore) Write(c *gin.Context, sess Session) error {
	now := time.Now()
	claims := Claims{
		UserID: sess.UserID,
		Email:  sess.Email,
		Name:   sess.Name,
		Role:   sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return fmt.Errorf("failed to write session: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, signed, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

// Clear implements Store.
func (s *CookieStore) Clear(c *gin.Context) {
	c.SetCookie(cookieName, "", -1, "/", "", s.secure, true)
}
