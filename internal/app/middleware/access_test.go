package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/portal/internal/app/models"
	"github.com/campushub/portal/internal/app/session"
)

// stubStore returns a fixed session, or none at all.
type stubStore struct {
	sess    session.Session
	present bool
}

func (s *stubStore) Read(*gin.Context) (session.Session, bool) { return s.sess, s.present }
func (s *stubStore) Write(*gin.Context, session.Session) error { return nil }
func (s *stubStore) Clear(*gin.Context)                        {}

func guardedRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(RequireRole(store, models.RoleAdmin))
	admin.GET("/students", func(c *gin.Context) {
		sess, ok := SessionFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "session missing from context")
			return
		}
		c.String(http.StatusOK, "students for %s", sess.UserID)
	})
	return r
}

func TestGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := guardedRouter(&stubStore{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "students for")
}

func TestGuardRedirectsWrongRoleToOwnPortal(t *testing.T) {
	tests := []struct {
		role models.Role
		want string
	}{
		{models.RoleStudent, "/student"},
		{models.RoleLecturer, "/lecturer"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			r := guardedRouter(&stubStore{sess: session.Session{UserID: "u-1", Role: tt.role}, present: true})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
			assert.NotContains(t, w.Body.String(), "students for")
		})
	}
}

func TestGuardRendersChildrenOnRoleMatch(t *testing.T) {
	r := guardedRouter(&stubStore{sess: session.Session{UserID: "u-1", Role: models.RoleAdmin}, present: true})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "students for u-1", w.Body.String())
}

func TestGuardUsesHXRedirectForHTMXRequests(t *testing.T) {
	r := guardedRouter(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("HX-Request", "true")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/auth/login", w.Header().Get("HX-Redirect"))
}

func TestGuardDecisionIsPerRequest(t *testing.T) {
	store := &stubStore{}
	r := guardedRouter(store)

	// First navigation: anonymous, redirected.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	// Session appears (login); the very next navigation is re-evaluated.
	store.sess = session.Session{UserID: "u-2", Role: models.RoleAdmin}
	store.present = true
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Logout; re-evaluated again, nothing cached.
	store.present = false
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
