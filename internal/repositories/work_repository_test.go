package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/utils"
)

func TestWorkBatchInsertAndList(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	repo := NewWorkRepository(ex)

	c, err := NewContractRepository(ex).Create(ctx, newContract("0201/2025/X"))
	require.NoError(t, err)
	_, err = NewAnnexRepository(ex).Create(ctx, newAnnex(c, "PL-01"))
	require.NoError(t, err)

	n, err := repo.CreateBatch(ctx, newWorks("0201/2025/X", "", 3))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = repo.CreateBatch(ctx, newWorks("0201/2025/X", "PL-01", 2))
	require.NoError(t, err)

	all, err := repo.ListByContract(ctx, "0201/2025/X")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	annexOnly, err := repo.ListByAnnex(ctx, "0201/2025/X", "PL-01")
	require.NoError(t, err)
	require.Len(t, annexOnly, 2)
	assert.Equal(t, 1, annexOnly[0].Seq)
	assert.Equal(t, 2, annexOnly[1].Seq)
	assert.False(t, annexOnly[0].ImportedAt.IsZero())

	count, err := repo.CountByYear(ctx, 2025, "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestWorkBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	repo := NewWorkRepository(ex)

	_, err := NewContractRepository(ex).Create(ctx, newContract("0202/2025/X"))
	require.NoError(t, err)

	batch := newWorks("0202/2025/X", "", 3)
	dupID := uuid.New()
	batch[0].ID = dupID
	batch[2].ID = dupID

	_, err = repo.CreateBatch(ctx, batch)
	require.Error(t, err)

	left, err := repo.ListByContract(ctx, "0202/2025/X")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestWorkBatchRequiresOwner(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	repo := NewWorkRepository(ex)

	_, err := repo.CreateBatch(ctx, newWorks("0203/2025/GONE", "", 2))
	require.ErrorIs(t, err, utils.ErrNotFound)

	c, err := NewContractRepository(ex).Create(ctx, newContract("0203/2025/X"))
	require.NoError(t, err)

	// one row hanging off a missing annex sinks the whole batch
	batch := append(newWorks(c.ContractNo, "", 2), newWorks(c.ContractNo, "PL-09", 1)...)
	_, err = repo.CreateBatch(ctx, batch)
	require.ErrorIs(t, err, utils.ErrNotFound)
	assert.Contains(t, err.Error(), "PL-09")

	left, err := repo.ListByContract(ctx, c.ContractNo)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestWorkBatchAfterContractDelete(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	contracts := NewContractRepository(ex)
	repo := NewWorkRepository(ex)

	c, err := contracts.Create(ctx, newContract("0204/2025/X"))
	require.NoError(t, err)
	_, err = contracts.Delete(ctx, c.ContractNo)
	require.NoError(t, err)

	_, err = repo.CreateBatch(ctx, newWorks(c.ContractNo, "", 3))
	require.ErrorIs(t, err, utils.ErrNotFound)

	count, err := repo.CountByYear(ctx, 2025, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWorkEmptyBatch(t *testing.T) {
	n, err := NewWorkRepository(newTestExecutor(t)).CreateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
