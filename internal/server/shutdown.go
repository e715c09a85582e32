package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// GracefulShutdown blocks until SIGINT or SIGTERM, then drains in-flight
// requests for at most timeout before closing the listener. done is
// signalled once the server has fully exited so main can return.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, timeout time.Duration, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutdown signal received, draining requests",
		zap.Duration("timeout", timeout),
	)

	// From here a second signal kills the process the default way.
	stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
	done <- true
}
