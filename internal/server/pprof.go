package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer serves the pprof handlers on their own listener, kept off
// the portal's public port. Reach it through an SSH tunnel in production.
func StartPprofServer(addr string, logger *zap.Logger) {
	router := gin.New()
	pprof.Register(router)

	go func() {
		logger.Info("Pprof server listening", zap.String("addr", addr))
		if err := router.Run(addr); err != nil {
			// The portal stays up without its profiler.
			logger.Error("Pprof server stopped", zap.Error(err))
		}
	}()
}
