package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/middleware"
	"github.com/campushub/portal/internal/app/notify"
	"github.com/campushub/portal/internal/app/session"
	"github.com/campushub/portal/internal/app/validate"
	"github.com/campushub/portal/internal/observability/metrics"
)

type loginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// LoginPage returns the login form payload. An already authenticated visitor
// is sent straight to their portal.
func (h *Handlers) LoginPage(c *gin.Context) {
	if sess, ok := h.Sessions.Read(c); ok {
		c.Redirect(http.StatusFound, sess.Role.Home())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":   "Sign in",
		"notices": notify.Pop(c),
	})
}

// Login verifies credentials against the data service and writes the session
// cookie. The session role decides which portal the browser lands on.
func (h *Handlers) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, FormErrors{
			Fields: map[string]string{"form": err.Error()},
			Values: form,
		})
		return
	}
	if err := validate.Struct(form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, FormErrors{
			Fields: validate.Fields(err),
			Values: loginForm{Email: form.Email},
		})
		return
	}

	user, err := h.Svc.Auth.Authenticate(c.Request.Context(), form.Email, form.Password)
	metrics.Get().LoginAttemptsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("success", err == nil)))
	if err != nil {
		h.Logger.Warn("Login rejected", zap.String("email", form.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, FormErrors{
			Fields: map[string]string{"form": "Invalid email or password"},
			Values: loginForm{Email: form.Email},
		})
		return
	}

	sess := session.Session{UserID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	if err := h.Sessions.Write(c, sess); err != nil {
		h.Logger.Error("Failed to write session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, FormErrors{
			Fields: map[string]string{"form": "Could not start a session"},
		})
		return
	}

	h.Logger.Info("User signed in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	c.Redirect(http.StatusSeeOther, user.Role.Home())
}

// Logout destroys the session and returns to the login entry point.
func (h *Handlers) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
