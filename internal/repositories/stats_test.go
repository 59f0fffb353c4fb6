package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/models"
)

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestContractStatsByYear(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	contracts := NewContractRepository(ex)
	annexes := NewAnnexRepository(ex)

	a := newContract("0401/2025/X")
	a.HandlerEmail = "h1@example.com"
	a.ChannelName = "Kênh A"
	b := newContract("0402/2025/X")
	b.HandlerEmail = "h2@example.com"
	b.ChannelName = "Kênh A"
	b.TotalAmount = 2_200_000
	// no name: grouped under the channel id
	c := newContract("0403/2025/X")
	c.HandlerEmail = "h1@example.com"
	c.ChannelName = ""
	c.TotalAmount = 500_000
	old := newContract("0404/2024/X")
	old.ContractYear = 2024
	for _, in := range []*models.Contract{a, b, c, old} {
		_, err := contracts.Create(ctx, in)
		require.NoError(t, err)
	}
	_, err := annexes.Create(ctx, newAnnex(a, "PL-01"))
	require.NoError(t, err)
	// an annex without a stored contract has no year to count under
	_, err = annexes.Create(ctx, &models.Annex{ContractNo: "0499/2025/X", AnnexNo: "PL-01", CreatedBy: "alice"})
	require.NoError(t, err)

	sum, err := contracts.SummaryByYear(ctx, 2025, "")
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 3, TotalValue: 1_100_000 + 2_200_000 + 500_000}, sum)

	sum, err = contracts.SummaryByYear(ctx, 2025, "h1@example.com")
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 2, TotalValue: 1_600_000}, sum)

	sum, err = contracts.SummaryByYear(ctx, 2030, "")
	require.NoError(t, err)
	assert.Zero(t, sum)

	asum, err := annexes.SummaryByYear(ctx, 2025, "")
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 1, TotalValue: 1_100_000}, asum)

	top, err := contracts.TopChannelsByYear(ctx, 2025, "", 8)
	require.NoError(t, err)
	assert.Equal(t, []models.ChannelTotal{
		{Channel: "Kênh A", TotalValue: 3_300_000},
		{Channel: c.ChannelID, TotalValue: 500_000},
	}, top)

	top, err = contracts.TopChannelsByYear(ctx, 2025, "", 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Kênh A", top[0].Channel)
}

func TestContractTopChannelsUnknown(t *testing.T) {
	ctx := context.Background()
	contracts := NewContractRepository(newTestExecutor(t))

	c := newContract("0405/2025/X")
	c.ChannelName = ""
	c.ChannelID = ""
	_, err := contracts.Create(ctx, c)
	require.NoError(t, err)

	top, err := contracts.TopChannelsByYear(ctx, 2025, "", 8)
	require.NoError(t, err)
	assert.Equal(t, []models.ChannelTotal{{Channel: unknownChannel, TotalValue: 1_100_000}}, top)
}

func TestContractSignedBetween(t *testing.T) {
	ctx := context.Background()
	contracts := NewContractRepository(newTestExecutor(t))

	for no, signed := range map[string]*time.Time{
		"0406/2025/X": day("2025-03-01"),
		"0407/2025/X": day("2025-03-31"),
		"0408/2025/X": day("2025-04-01"),
		"0409/2025/X": nil,
	} {
		c := newContract(no)
		c.SignedOn = signed
		_, err := contracts.Create(ctx, c)
		require.NoError(t, err)
	}

	got, err := contracts.SignedBetween(ctx, *day("2025-03-01"), *day("2025-04-01"), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-01", got[0].At.Format(time.DateOnly))
	assert.Equal(t, "2025-03-31", got[1].At.Format(time.DateOnly))
	assert.Equal(t, int64(1_100_000), got[0].Value)

	got, err = contracts.SignedBetween(ctx, *day("2025-03-01"), *day("2025-04-02"), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWorkImportedBetween(t *testing.T) {
	ctx := context.Background()
	ex := newTestExecutor(t)
	works := NewWorkRepository(ex)

	c, err := NewContractRepository(ex).Create(ctx, newContract("0410/2025/X"))
	require.NoError(t, err)
	batch := newWorks(c.ContractNo, "", 3)
	for _, w := range batch {
		w.Handler = "h1@example.com"
	}
	_, err = works.CreateBatch(ctx, batch)
	require.NoError(t, err)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	got, err := works.ImportedBetween(ctx, today, today.AddDate(0, 0, 1), "h1@example.com")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = works.ImportedBetween(ctx, today.AddDate(0, 0, -7), today, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := works.CountByYear(ctx, 2025, "h2@example.com")
	require.NoError(t, err)
	assert.Zero(t, n)
}
