package repositories

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Row is satisfied by pgx.Row and *sql.Row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the cursor surface the repositories iterate over.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

/*
Executor is the statement surface every repository is written against. The
PostgreSQL pool and the embedded SQLite database are both adapted to it, and
both adapters translate driver errors:

  - "no rows" surfaces as utils.ErrNotFound from Row.Scan
  - unique-constraint violations surface as utils.ErrDuplicateKey

SQL is written once with $N placeholders.
*/
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row

	// InTx runs fn inside one storage transaction. fn's error rolls it back.
	InTx(ctx context.Context, fn func(tx Executor) error) error

	Ping(ctx context.Context) error
	Backend() string
}

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// columnList joins column names, optionally qualifying each with a table alias.
func columnList(prefix string, cols ...[]string) string {
	var out []string
	for _, group := range cols {
		for _, c := range group {
			out = append(out, prefix+c)
		}
	}
	return strings.Join(out, ", ")
}

// setClause renders "a=$start, b=$start+1, ...".
func setClause(start int, cols ...[]string) string {
	var out []string
	n := start
	for _, group := range cols {
		for _, c := range group {
			out = append(out, c+"="+placeholder(n))
			n++
		}
	}
	return strings.Join(out, ", ")
}

func placeholders(start, count int) string {
	out := make([]string, count)
	for i := range count {
		out[i] = placeholder(start + i)
	}
	return strings.Join(out, ", ")
}

func placeholder(n int) string {
	return "$" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

var dollarParamRe = regexp.MustCompile(`\$(\d+)`)

// rebindNumbered rewrites $N as ?N, which SQLite binds to the same ordinal.
func rebindNumbered(sql string) string {
	return dollarParamRe.ReplaceAllString(sql, "?$1")
}

// now is the store clock: UTC, truncated to what both backends keep.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// DeleteResult reports the dependents removed by a cascading delete.
type DeleteResult struct {
	Annexes int64 `json:"annexes"`
	Works   int64 `json:"works"`
}

const (
	lockShare  = "SHARE"
	lockUpdate = "UPDATE"
)

// lockRow fails with utils.ErrNotFound unless a row matches where. On
// PostgreSQL the row stays locked in mode until the transaction ends, so an
// owner cannot be deleted while dependents are inserted under it. SQLite
// write transactions (_txlock=immediate) already exclude each other.
func lockRow(ctx context.Context, tx Executor, mode, table, where string, args ...any) error {
	q := "SELECT 1 FROM " + table + " WHERE " + where
	if tx.Backend() == BackendPostgres {
		q += " FOR " + mode
	}
	var one int
	return tx.QueryRow(ctx, q, args...).Scan(&one)
}
