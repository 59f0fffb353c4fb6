package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/config"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/services"
)

func newSQLiteApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		AppName:    config.AppName,
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "data", "contracts.db"),
	}
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	require.NoError(t, a.Migrate(context.Background()))
	return a
}

func TestNewAppSQLite(t *testing.T) {
	a := newSQLiteApp(t)
	assert.Equal(t, repositories.BackendSQLite, a.Store.Backend())
	assert.NoError(t, a.Store.Ping(context.Background()))
	assert.FileExists(t, a.Config.SQLitePath)
}

func TestNewAppUnsupportedDriver(t *testing.T) {
	_, err := NewApp(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestSeedTestDataIsIdempotent(t *testing.T) {
	a := newSQLiteApp(t)
	ctx := context.Background()

	contractRepo := repositories.NewContractRepository(a.Store)
	annexRepo := repositories.NewAnnexRepository(a.Store)
	workRepo := repositories.NewWorkRepository(a.Store)
	audit := services.NewAuditService(repositories.NewAuditLogRepository(a.Store))
	contracts := services.NewContractService(contractRepo, audit)
	annexes := services.NewAnnexService(annexRepo, contractRepo, audit)
	works := services.NewWorkService(workRepo, contractRepo, annexRepo, audit)

	require.NoError(t, SeedTestData(ctx, contracts, annexes, works))

	c, err := contracts.GetContract(ctx, seedContractNo)
	require.NoError(t, err)
	// created at 1, then the generated-document paths were recorded
	assert.Equal(t, int64(2), c.RowVersion)
	assert.Equal(t, int64(1_500_000), c.VATAmount)
	assert.NotEmpty(t, c.DocxPath)

	annex, err := annexes.GetAnnex(ctx, seedContractNo, seedAnnexNo)
	require.NoError(t, err)
	require.True(t, annex.ContractID.Valid)
	assert.Equal(t, c.ID, annex.ContractID.UUID)
	assert.Equal(t, int64(2), annex.RowVersion)
	assert.Equal(t, "generated/0001-2025-PL-01.docx", annex.DocxPath)

	all, err := works.ListWorks(ctx, seedContractNo, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// second run leaves everything as it was
	require.NoError(t, SeedTestData(ctx, contracts, annexes, works))
	again, err := works.ListWorks(ctx, seedContractNo, "")
	require.NoError(t, err)
	assert.Len(t, again, 3)

	c2, err := contracts.GetContract(ctx, seedContractNo)
	require.NoError(t, err)
	assert.Equal(t, c.RowVersion, c2.RowVersion)
}
