package postgres

import (
	"context"
	"embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // postgres driver registration
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxuuid "github.com/vgarvardt/pgx-google-uuid/v5"
	"go.uber.org/zap"

	"github.com/campushub/portal/internal/pkg/config"
)

//go:embed migrations
var migrationFS embed.FS

const defaultRetries = 5

// ConnectionURL builds the database URL from configuration.
func ConnectionURL(cfg *config.Config) (string, error) {
	pg := cfg.Postgres
	if pg.Host == "" {
		return "", fmt.Errorf("postgres configuration is missing or invalid")
	}

	query := url.Values{}
	query.Set("sslmode", pg.SSLMode)
	query.Set("timezone", "utc")

	connURL := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(pg.Username, pg.Password),
		Host:     fmt.Sprintf("%s:%s", pg.Host, pg.Port),
		Path:     pg.DB,
		RawQuery: query.Encode(),
	}
	return connURL.String(), nil
}

// Init initializes the pgxpool connection pool.
func Init(connectionURL string, logger *zap.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing db config: %w", err)
	}

	cfg.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxuuid.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed creating db pool: %w", err)
	}

	logger.Info("Database connection pool initialized")
	return pool, nil
}

// WaitForDB waits for the database connection pool to be available.
func WaitForDB(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) bool {
	for attempts := 1; attempts <= defaultRetries; attempts++ {
		if err := pool.Ping(ctx); err == nil {
			logger.Info("Database connection successful")
			return true
		} else {
			waitDuration := time.Duration(attempts) * 200 * time.Millisecond
			logger.Warn("Database ping failed, retrying...",
				zap.Int("attempt", attempts),
				zap.Int("max_attempts", defaultRetries),
				zap.Duration("wait_duration", waitDuration),
				zap.Error(err),
			)
			if attempts < defaultRetries {
				time.Sleep(waitDuration)
			}
		}
	}
	logger.Error("Database connection failed after multiple retries")
	return false
}

// RunMigrations applies the embedded migrations.
func RunMigrations(databaseURL string, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	sourceDriver, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source driver: %w", err)
	}

	if !strings.HasPrefix(databaseURL, "postgres://") && !strings.HasPrefix(databaseURL, "postgresql://") {
		return fmt.Errorf("invalid database URL scheme for migrate, ensure it starts with postgresql://")
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	switch {
	case verr != nil:
		logger.Warn("Could not determine migration version", zap.Error(verr))
	case dirty:
		logger.Error("Database migration state is dirty", zap.Uint64("version", uint64(version)))
	default:
		logger.Info("Database migrations applied", zap.Uint64("version", uint64(version)))
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("Error closing migration source", zap.Error(srcErr))
	}
	if dbErr != nil {
		logger.Warn("Error closing migration database connection", zap.Error(dbErr))
	}

	return nil
}
