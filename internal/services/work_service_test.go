package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/utils"
)

func TestImportWorksNormalisesRows(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{
		ContractNo: "0201/2025/X",
		TermsInput: dtos.TermsInput{
			ChannelName:  ptr("Kênh C"),
			ChannelLink:  ptr("UCabcdefghij123"),
			HandlerEmail: ptr("handler@x.vn"),
		},
	})
	require.NoError(t, err)

	resp, err := s.Works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0201/2025/X",
		Rows: []dtos.WorkRow{
			{Video: "https://youtu.be/dQw4w9WgXcQ", Title: "Bài một", TimeRange: "0:10 - 3:07", Duration: "3:07", EffectiveDate: "1-2-2025"},
			{Title: "Bài hai"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)

	works, err := s.Works.ListWorks(ctx, "0201/2025/X", "")
	require.NoError(t, err)
	require.Len(t, works, 2)

	first := works[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, "dQw4w9WgXcQ", first.VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", first.YouTubeURL)
	assert.Equal(t, "00:00:10 - 00:03:07", first.TimeRange)
	assert.Equal(t, "00:03:07", first.Duration)
	assert.Equal(t, "01/02/2025", first.EffectiveDate)
	assert.Equal(t, "Kênh C", first.ChannelName)
	assert.Equal(t, "UCabcdefghij123", first.ChannelID)
	assert.Equal(t, "handler@x.vn", first.Handler)
	assert.Equal(t, 2, works[1].Seq)

	logs, err := s.Audit.List(ctx, "WORKS", "0201/2025/X", 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditImport, logs[0].Action)
}

func TestImportWorksRejectsWholeBatchOnBadRow(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0202/2025/X"})
	require.NoError(t, err)

	_, err = s.Works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0202/2025/X",
		Rows: []dtos.WorkRow{
			{Title: "ok"},
			{Title: "bad", Duration: "1:99", Video: "not a video"},
		},
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeValidation)
	rowErrs, ok := appErr.Details.([]RowError)
	require.True(t, ok)
	assert.Len(t, rowErrs, 2)
	for _, re := range rowErrs {
		assert.Equal(t, 2, re.Row)
	}

	works, err := s.Works.ListWorks(ctx, "0202/2025/X", "")
	require.NoError(t, err)
	assert.Empty(t, works)
}

func TestImportWorksRequiresOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0203/2025/MISSING",
		Rows:       []dtos.WorkRow{{Title: "x"}},
	})
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	_, err = s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0203/2025/X"})
	require.NoError(t, err)
	_, err = s.Works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0203/2025/X",
		AnnexNo:    "PL-77",
		Rows:       []dtos.WorkRow{{Title: "x"}},
	})
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}

func TestImportWorksContractDeletedMidway(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0204/2025/X"})
	require.NoError(t, err)

	works := NewWorkService(s.WorkRepo, contractDeletedAfterRead{s.ContractRepo}, s.AnnexRepo, s.Audit)
	_, err = works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0204/2025/X",
		Rows:       []dtos.WorkRow{{Title: "Bài hát 1"}, {Title: "Bài hát 2"}},
	})
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	left, err := s.WorkRepo.ListByContract(ctx, "0204/2025/X")
	require.NoError(t, err)
	assert.Empty(t, left)

	// a contract re-created under the same number starts without works
	_, err = s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0204/2025/X"})
	require.NoError(t, err)
	listed, err := s.Works.ListWorks(ctx, "0204/2025/X", "")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestImportWorksAnnexDeletedMidway(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0205/2025/X"})
	require.NoError(t, err)
	_, err = s.Annexes.CreateAnnex(ctx, "alice", dtos.CreateAnnexRequest{ContractNo: "0205/2025/X", AnnexNo: "PL-01"})
	require.NoError(t, err)

	works := NewWorkService(s.WorkRepo, s.ContractRepo, annexDeletedAfterRead{s.AnnexRepo}, s.Audit)
	_, err = works.ImportWorks(ctx, "alice", dtos.ImportWorksRequest{
		ContractNo: "0205/2025/X",
		AnnexNo:    "PL-01",
		Rows:       []dtos.WorkRow{{Title: "Bài hát"}},
	})
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	left, err := s.WorkRepo.ListByContract(ctx, "0205/2025/X")
	require.NoError(t, err)
	assert.Empty(t, left)
}
