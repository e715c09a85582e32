package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/app/dataservice"
	"github.com/campushub/portal/internal/app/dataservice/postgres"
	"github.com/campushub/portal/internal/app/dataservice/rest"
	"github.com/campushub/portal/internal/app/fetch"
	"github.com/campushub/portal/internal/app/payments"
	"github.com/campushub/portal/internal/app/session"
	"github.com/campushub/portal/internal/pkg/config"
)

const snapshotTTL = 5 * time.Minute

// Server holds the dependencies of the portal HTTP server.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	dbPool    *pgxpool.Pool
	svc       *dataservice.Service
	sessions  session.Store
	snapshots *fetch.Snapshots
	provider  payments.Provider

	router http.Handler
}

// New assembles the server: the session store, the page snapshot cache, the
// payment provider, and whichever data service the configuration selects. A
// DATA_SERVICE_URL points at a remote service; without one the portal runs
// its own Postgres-backed store.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		sessions:  session.NewCookieStore(cfg.Session.JWTSecret, cfg.Session.TTL, cfg.Session.SecureCookie, logger),
		snapshots: fetch.NewSnapshots(snapshotTTL),
		provider:  payments.NewStripeProvider(cfg.StripeSecretKey),
	}

	if cfg.DataServiceURL != "" {
		client, err := rest.NewClient(cfg.DataServiceURL, 10*time.Second)
		if err != nil {
			return nil, fmt.Errorf("failed to set up data service client: %w", err)
		}
		s.svc = rest.NewService(client)
		logger.Info("Using remote data service", zap.String("url", cfg.DataServiceURL))
		return s, nil
	}

	pool, err := s.setupDatabase(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}
	s.dbPool = pool
	s.svc = postgres.NewService(pool)
	logger.Info("Using in-process Postgres data service")
	return s, nil
}

// setupDatabase initializes the connection pool and runs migrations.
func (s *Server) setupDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	s.logger.Info("Setting up database connection and migrations")

	connURL, err := postgres.ConnectionURL(s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build database URL: %w", err)
	}

	pool, err := postgres.Init(connURL, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	postgres.WaitForDB(ctx, pool, s.logger)
	s.logger.Info("Connected to Postgres",
		zap.String("host", s.cfg.Postgres.Host),
		zap.String("port", s.cfg.Postgres.Port),
		zap.String("database", s.cfg.Postgres.DB))

	if err = postgres.RunMigrations(connURL, s.logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return pool, nil
}

// HTTPServer creates and configures the HTTP server.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router.
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Close releases server resources.
func (s *Server) Close() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}
