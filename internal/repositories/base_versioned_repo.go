package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stevedao0/contract-service/internal/utils"
)

/*
BaseVersionedRepo holds the executor, a SELECT‑by‑key statement,
and a scanner for a single entity type T.  It gives you:

	• GetByKey(ctx, key...) (T, error)
	• CompareAndSwap(ctx, stmt, args, expected, key...)
	• UpdateWithRetry(ctx, key, mutate, updateIfVersion, key...)
*/
type BaseVersionedRepo[T EntityWithVersion] struct {
	ex          Executor
	selectByKey string
	scan        func(row Row) (T, error)
}

// NewBaseRepo is called by concrete repositories.
func NewBaseRepo[T EntityWithVersion](
	ex Executor,
	selectByKey string,
	scan func(Row) (T, error),
) *BaseVersionedRepo[T] {
	return &BaseVersionedRepo[T]{ex: ex, selectByKey: selectByKey, scan: scan}
}

// -------------------------- public helpers --------------------------

func (b *BaseVersionedRepo[T]) GetByKey(ctx context.Context, key ...any) (T, error) {
	row := b.ex.QueryRow(ctx, b.selectByKey, key...)
	return b.scan(row)
}

/*
CompareAndSwap executes stmt, a single
`UPDATE ... SET ..., row_version = row_version + 1 WHERE <key> AND row_version = $expected RETURNING ...`.

When the statement matches no row the key is read back only to classify the
miss: absent → utils.ErrNotFound, present → *utils.RowVersionConflictError
carrying the stored record. The write has already been decided at that point.
*/
func (b *BaseVersionedRepo[T]) CompareAndSwap(
	ctx context.Context,
	stmt string,
	args []any,
	expected int64,
	key ...any,
) (T, error) {
	var zero T

	updated, err := b.scan(b.ex.QueryRow(ctx, stmt, args...))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return zero, err
	}

	current, err := b.GetByKey(ctx, key...)
	if err != nil {
		return zero, err
	}
	return zero, &utils.RowVersionConflictError{
		Key:      describeKey(key),
		Expected: expected,
		Actual:   current.GetRowVersion(),
		Current:  current,
	}
}

// UpdateWithRetry wires the generic optimistic‑locking loop.
func (b *BaseVersionedRepo[T]) UpdateWithRetry(
	ctx context.Context,
	mutate func(T) error,
	updateIfVersion UpdateIfVersionFunc[T],
	key ...any,
) (T, error) {
	return WithRetry(
		ctx,
		DefaultMaxRetries,
		describeKey(key),
		func(ctx context.Context) (T, error) { return b.GetByKey(ctx, key...) },
		updateIfVersion,
		mutate,
	)
}

func describeKey(key []any) string {
	parts := make([]string, len(key))
	for i, k := range key {
		parts[i] = fmt.Sprint(k)
	}
	return strings.Join(parts, "#")
}
