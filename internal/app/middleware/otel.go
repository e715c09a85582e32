package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/campushub/portal/internal/observability/metrics"
)

// OTELGinMiddleware returns the OpenTelemetry middleware for Gin.
func OTELGinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// MetricsMiddleware records the request counter and duration histogram.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		m := metrics.Get()
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("route", c.FullPath()),
			attribute.Int("status", c.Writer.Status()),
		)
		m.HTTPRequestsTotal.Add(c.Request.Context(), 1, attrs)
		m.HTTPRequestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
	}
}
