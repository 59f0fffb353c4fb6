package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/utils"
)

func TestWithRetryGivesUpAfterMaxRetries(t *testing.T) {
	var mutations int
	get := func(context.Context) (*models.Contract, error) {
		return &models.Contract{Versioned: models.Versioned{RowVersion: 3}}, nil
	}
	alwaysConflict := func(_ context.Context, c *models.Contract, expected int64) (*models.Contract, error) {
		return nil, &utils.RowVersionConflictError{Key: "k", Expected: expected, Actual: expected + 1}
	}

	_, err := WithRetry(context.Background(), 3, "k", get, alwaysConflict, func(*models.Contract) error {
		mutations++
		return nil
	})
	require.ErrorIs(t, err, utils.ErrRowVersionConflict)
	assert.Equal(t, 3, mutations)
}

func TestWithRetryStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	get := func(context.Context) (*models.Contract, error) {
		return &models.Contract{}, nil
	}
	update := func(context.Context, *models.Contract, int64) (*models.Contract, error) {
		return nil, boom
	}

	_, err := WithRetry(context.Background(), 3, "k", get, update, func(*models.Contract) error { return nil })
	require.ErrorIs(t, err, boom)
}

func TestWithRetryNilEntityIsNotFound(t *testing.T) {
	get := func(context.Context) (*models.Contract, error) { return nil, nil }
	update := func(context.Context, *models.Contract, int64) (*models.Contract, error) {
		t.Fatal("update must not run")
		return nil, nil
	}

	_, err := WithRetry(context.Background(), 3, "k", get, update, func(*models.Contract) error { return nil })
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestWithRetryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	get := func(context.Context) (*models.Contract, error) {
		t.Fatal("get must not run")
		return nil, nil
	}
	_, err := WithRetry(ctx, 3, "k", get, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRebindNumbered(t *testing.T) {
	assert.Equal(t,
		"UPDATE t SET a=?1 WHERE k=?2 AND v=?12",
		rebindNumbered("UPDATE t SET a=$1 WHERE k=$2 AND v=$12"))
	assert.Equal(t, "a=$3, b=$4", setClause(3, []string{"a", "b"}))
	assert.Equal(t, "$1, $2, $3", placeholders(1, 3))
	assert.Equal(t, "x.a, x.b", columnList("x.", []string{"a"}, []string{"b"}))
}
