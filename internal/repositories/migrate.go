package repositories

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/stevedao0/contract-service/internal/utils"
)

//go:embed schema_postgres.sql
var postgresSchema string

//go:embed schema_sqlite.sql
var sqliteSchema string

// Migrate creates the tables and indexes for the executor's backend. Every
// statement is IF NOT EXISTS, so running it again is a no-op.
func Migrate(ctx context.Context, ex Executor) error {
	var schema string
	switch ex.Backend() {
	case BackendPostgres:
		schema = postgresSchema
	case BackendSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("unsupported backend %q", ex.Backend())
	}

	stmts := splitStatements(schema)
	for i, stmt := range stmts {
		if _, err := ex.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d/%d: %w", i+1, len(stmts), err)
		}
	}
	utils.Logger.WithField("backend", ex.Backend()).Debugf("Applied %d schema statements", len(stmts))
	return nil
}

func splitStatements(schema string) []string {
	var out []string
	for _, part := range strings.Split(schema, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
