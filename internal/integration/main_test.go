//go:build integration

package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	_ "time/tzdata"

	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

// Global test-level variables
var (
	pool  *pgxpool.Pool
	store repositories.Executor
)

// TestMain connects once to the PostgreSQL database named by DB_URL and
// applies the schema. Without DB_URL the suite is skipped.
func TestMain(m *testing.M) {
	utils.InitLogger(config.AppName)

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Print("contract-service integration tests: DB_URL not set, skipping")
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	var err error
	pool, err = pgxpool.Connect(ctx, dbURL)
	if err != nil {
		cancel()
		log.Fatalf("connect to %s: %v", dbURL, err)
	}
	store = repositories.NewPostgresExecutor(pool)
	if err := repositories.Migrate(ctx, store); err != nil {
		cancel()
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	log.Printf("contract-service integration tests: DB connected, env=%s", os.Getenv("ENV"))

	code := m.Run()
	pool.Close()
	os.Exit(code)
}
