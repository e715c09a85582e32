package server

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campushub/portal/internal/app/handlers"
	"github.com/campushub/portal/internal/app/middleware"
	"github.com/campushub/portal/internal/routes"
)

// SetupRouter configures the Gin router with all middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(ginzap.GinzapWithConfig(s.logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(s.logger, true))
	r.Use(middleware.OTELGinMiddleware("campushub-portal"))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())
	r.Use(sessions.Sessions("portal_flash", cookie.NewStore([]byte(s.cfg.Session.CookieSecret))))

	h := handlers.New(s.svc, s.snapshots, s.sessions, s.provider, s.logger)
	routes.Setup(r, h, s.sessions, s.logger)

	return r
}

// zapContextFunc enriches request logs with the request id and the OTEL
// trace/span ids when a span is active.
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
