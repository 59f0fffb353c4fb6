package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

type testServices struct {
	Contracts *ContractService
	Annexes   *AnnexService
	Works     *WorkService
	Audit     *AuditService
	Stats     *StatsService

	ContractRepo repositories.ContractRepository
	AnnexRepo    repositories.AnnexRepository
	WorkRepo     repositories.WorkRepository
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := repositories.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ex := repositories.NewSQLiteExecutor(db)
	require.NoError(t, repositories.Migrate(context.Background(), ex))

	contractRepo := repositories.NewContractRepository(ex)
	annexRepo := repositories.NewAnnexRepository(ex)
	workRepo := repositories.NewWorkRepository(ex)
	audit := NewAuditService(repositories.NewAuditLogRepository(ex))

	return &testServices{
		Contracts:    NewContractService(contractRepo, audit),
		Annexes:      NewAnnexService(annexRepo, contractRepo, audit),
		Works:        NewWorkService(workRepo, contractRepo, annexRepo, audit),
		Audit:        audit,
		Stats:        NewStatsService(contractRepo, annexRepo, workRepo),
		ContractRepo: contractRepo,
		AnnexRepo:    annexRepo,
		WorkRepo:     workRepo,
	}
}

func requireAppError(t *testing.T, err error, status int, code string) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func ptr[T any](v T) *T { return &v }

// contractDeletedAfterRead deletes each contract right after handing it
// out, landing a concurrent delete between a service's read and its write.
type contractDeletedAfterRead struct {
	repositories.ContractRepository
}

func (r contractDeletedAfterRead) GetByContractNo(ctx context.Context, contractNo string) (*models.Contract, error) {
	c, err := r.ContractRepository.GetByContractNo(ctx, contractNo)
	if err != nil {
		return nil, err
	}
	if _, err := r.ContractRepository.Delete(ctx, contractNo); err != nil {
		return nil, err
	}
	return c, nil
}

// annexDeletedAfterRead does the same for annexes.
type annexDeletedAfterRead struct {
	repositories.AnnexRepository
}

func (r annexDeletedAfterRead) Get(ctx context.Context, key models.AnnexKey) (*models.Annex, error) {
	a, err := r.AnnexRepository.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if _, err := r.AnnexRepository.Delete(ctx, key); err != nil {
		return nil, err
	}
	return a, nil
}
