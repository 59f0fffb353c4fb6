package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/stevedao0/contract-service/internal/utils"
)

/*
EntityWithVersion:

* `comparable`  → lets us use `==` to compare two values of type T
* the two row_version accessors
*/
type EntityWithVersion interface {
	comparable
	GetRowVersion() int64
	SetRowVersion(int64)
}

// UpdateIfVersionFunc is a compare-and-swap write. It returns the stored
// record on success and *utils.RowVersionConflictError on a version miss.
type UpdateIfVersionFunc[T EntityWithVersion] func(
	ctx context.Context,
	entity T,
	expectedVersion int64,
) (T, error)

type GetFunc[T EntityWithVersion] func(ctx context.Context) (T, error)

// DefaultMaxRetries bounds WithRetry when callers have no better number.
const DefaultMaxRetries = 3

/*
WithRetry runs a read‑mutate‑update loop with optimistic locking. It is a
client-side convenience: the store itself never retries a conflict. Use it
only where blindly re-applying mutate on top of someone else's write is
acceptable.
*/
func WithRetry[T EntityWithVersion](
	ctx context.Context,
	maxRetries int,
	key string,
	get GetFunc[T],
	updateIfVersion UpdateIfVersionFunc[T],
	mutate func(T) error,
) (T, error) {
	var zero T
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		current, err := get(ctx)
		if err != nil {
			return zero, err
		}

		// zero value of T (nil for pointers)
		if current == zero {
			return zero, utils.ErrNotFound
		}

		oldVersion := current.GetRowVersion()

		if err := mutate(current); err != nil {
			return zero, err
		}

		updated, err := updateIfVersion(ctx, current, oldVersion)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, utils.ErrRowVersionConflict) {
			return zero, err
		}
		utils.Logger.WithField("key", key).Debugf("row_version conflict on attempt %d, retrying", attempt+1)
		// someone else updated first – retry
	}
	return zero, fmt.Errorf("too much contention updating %q: %w", key, utils.ErrRowVersionConflict)
}
