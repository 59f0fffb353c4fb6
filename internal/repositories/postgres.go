package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/stevedao0/contract-service/internal/utils"
)

// SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DB is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type pgExecutor struct {
	db DB
}

// NewPostgresExecutor adapts a pgx pool (or connection) to Executor.
func NewPostgresExecutor(db DB) Executor {
	return &pgExecutor{db: db}
}

func (e *pgExecutor) Backend() string { return BackendPostgres }

func (e *pgExecutor) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := e.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, translatePgError(err)
	}
	return tag.RowsAffected(), nil
}

func (e *pgExecutor) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := e.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	return rows, nil
}

func (e *pgExecutor) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return pgRow{row: e.db.QueryRow(ctx, sql, args...)}
}

func (e *pgExecutor) InTx(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	if err := fn(&pgExecutor{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (e *pgExecutor) Ping(ctx context.Context) error {
	if p, ok := e.db.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := e.db.Exec(ctx, "SELECT 1")
	return err
}

type pgRow struct {
	row pgx.Row
}

func (r pgRow) Scan(dest ...any) error {
	return translatePgError(r.row.Scan(dest...))
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return utils.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", utils.ErrDuplicateKey, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			// the referenced owner is gone
			return fmt.Errorf("%w: %s", utils.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}
