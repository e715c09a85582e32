package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/campushub/portal/internal/pkg/config"
	"github.com/campushub/portal/internal/pkg/logger"
	"github.com/campushub/portal/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	if err := logger.Init(zapcore.InfoLevel, zap.String("service", "campushub-portal")); err != nil {
		return err
	}
	zapLogger := logger.Log
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	otelShutdown, err := server.InitObservability("campushub-portal", ":9092", zapLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zapLogger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, zapLogger)
	if err != nil {
		return err
	}
	defer srv.Close()

	srv.SetRouter(srv.SetupRouter())

	// pprof on a side port, never exposed publicly.
	server.StartPprofServer(":6060", zapLogger)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, zapLogger, cfg.ShutdownTimeout, done)

	zapLogger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil {
		zapLogger.Error("Server error", zap.Error(err))
	}

	<-done
	zapLogger.Info("Graceful shutdown complete")
	return nil
}
