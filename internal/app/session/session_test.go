package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/portal/internal/app/models"
)

const testSecret = "test-session-secret"

func newTestContext(t *testing.T, cookie string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	if cookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: "auth_token", Value: cookie})
	}
	return c
}

func signedToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(role models.Role) Claims {
	now := time.Now()
	return Claims{
		UserID: "u-1",
		Email:  "ada@uni.edu",
		Name:   "Ada Lovelace",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(testSecret, time.Hour, false, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	err := store.Write(c, Session{UserID: "u-1", Name: "Ada Lovelace", Email: "ada@uni.edu", Role: models.RoleAdmin})
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Read it back through a fresh request carrying the written cookie.
	c2 := newTestContext(t, cookies[0].Value)
	sess, ok := store.Read(c2)
	require.True(t, ok)
	assert.Equal(t, "u-1", sess.UserID)
	assert.Equal(t, models.RoleAdmin, sess.Role)
	assert.Equal(t, "ada@uni.edu", sess.Email)
}

func TestCookieStoreReadFailsClosed(t *testing.T) {
	store := NewCookieStore(testSecret, time.Hour, false, nil)

	expired := validClaims(models.RoleStudent)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	roleless := validClaims("")
	unknownRole := validClaims("registrar")
	noUser := validClaims(models.RoleStudent)
	noUser.UserID = ""

	tests := []struct {
		name   string
		cookie string
	}{
		{"no cookie", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong signing key", signedToken(t, "other-secret", validClaims(models.RoleStudent))},
		{"expired token", signedToken(t, testSecret, expired)},
		{"missing role", signedToken(t, testSecret, roleless)},
		{"unknown role", signedToken(t, testSecret, unknownRole)},
		{"missing user id", signedToken(t, testSecret, noUser)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.cookie)
			_, ok := store.Read(c)
			assert.False(t, ok)
		})
	}
}

func TestCookieStoreClear(t *testing.T) {
	store := NewCookieStore(testSecret, time.Hour, false, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	store.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
