package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/session"
	"github.com/campushub/portal/internal/pkg/logger"
)

const sessionKey = "portal_session"

// LoginPath is where unauthenticated navigation lands.
const LoginPath = "/auth/login"

// RequireRole is the access guard wrapping each protected portal subtree.
// The decision is a local synchronous read of the session against the
// subtree's single required role, re-evaluated on every request and never
// cached:
//
//   - no session           → redirect to the login entry point
//   - session, wrong role  → redirect to that role's own portal landing
//   - session, role match  → the protected handlers run unchanged
//
// This is a presentation gate only; the data service authorizes every call
// it receives independently.
func RequireRole(store session.Store, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := store.Read(c)
		if !ok {
			logger.Log.Warn("No session for protected path",
				zap.String("path", c.Request.URL.Path),
				zap.String("required_role", string(role)),
			)
			redirect(c, LoginPath)
			return
		}

		if sess.Role != role {
			logger.Log.Warn("Session role not permitted for path",
				zap.String("path", c.Request.URL.Path),
				zap.String("required_role", string(role)),
				zap.String("session_role", string(sess.Role)),
			)
			redirect(c, sess.Role.Home())
			return
		}

		c.Set(sessionKey, sess)
		ctx := dataservice.WithCaller(c.Request.Context(), dataservice.Caller{
			UserID: sess.UserID,
			Role:   sess.Role,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SessionFromContext returns the session placed by RequireRole.
func SessionFromContext(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return session.Session{}, false
	}
	sess, ok := v.(session.Session)
	return sess, ok
}
