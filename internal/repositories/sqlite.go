package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/stevedao0/contract-service/internal/utils"
)

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OpenSQLite opens (creating if needed) a SQLite database file configured
// for concurrent use: WAL journal, busy timeout for cross-process lock
// contention, immediate write transactions and foreign keys.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

type sqliteExecutor struct {
	db *sql.DB
	q  sqlQuerier
}

// NewSQLiteExecutor adapts a database/sql handle opened with the sqlite3
// driver to Executor.
func NewSQLiteExecutor(db *sql.DB) Executor {
	return &sqliteExecutor{db: db, q: db}
}

func (e *sqliteExecutor) Backend() string { return BackendSQLite }

func (e *sqliteExecutor) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := e.q.ExecContext(ctx, rebindNumbered(query), args...)
	if err != nil {
		return 0, translateSQLiteError(err)
	}
	return res.RowsAffected()
}

func (e *sqliteExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.q.QueryContext(ctx, rebindNumbered(query), args...)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return &sqlRows{rows: rows}, nil
}

func (e *sqliteExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlRow{row: e.q.QueryRowContext(ctx, rebindNumbered(query), args...)}
}

func (e *sqliteExecutor) InTx(ctx context.Context, fn func(tx Executor) error) error {
	if _, nested := e.q.(*sql.Tx); nested {
		return fn(e)
	}
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", translateSQLiteError(err))
	}
	if err := fn(&sqliteExecutor{db: e.db, q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

func (e *sqliteExecutor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	return translateSQLiteError(r.row.Scan(dest...))
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Err() error             { return translateSQLiteError(r.rows.Err()) }
func (r *sqlRows) Close()                 { _ = r.rows.Close() }

func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return utils.ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s", utils.ErrDuplicateKey, sqliteErr.Error())
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s", utils.ErrNotFound, sqliteErr.Error())
		}
	}
	return err
}
