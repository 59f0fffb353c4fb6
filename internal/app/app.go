package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	Store  repositories.Executor

	pool  *pgxpool.Pool
	sqlDB *sql.DB
}

// NewApp opens the configured storage backend. PostgreSQL connects with
// exponential backoff; SQLite creates the database file if needed.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := connectPostgres(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		app.pool = pool
		app.Store = repositories.NewPostgresExecutor(pool)

	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite directory: %w", err)
			}
		}
		db, err := repositories.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("%s using SQLite database %s", cfg.AppName, cfg.SQLitePath)
		app.sqlDB = db
		app.Store = repositories.NewSQLiteExecutor(db)

	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.DBDriver)
	}
	return app, nil
}

// Migrate applies the schema for the open backend.
func (a *App) Migrate(ctx context.Context) error {
	return repositories.Migrate(ctx, a.Store)
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		utils.Logger.Info("contract-service DB connection closed.")
	}
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			utils.Logger.WithError(err).Warn("Closing SQLite database")
		}
		utils.Logger.Info("contract-service SQLite database closed.")
	}
}

func connectPostgres(databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("contract-service connected to DB on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
