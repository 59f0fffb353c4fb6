package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/utils"
)

func TestCreateAnnexInheritsFromContract(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	parent, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{
		ContractNo: "0101/2025/X",
		TermsInput: dtos.TermsInput{
			PartyName:       ptr("Công ty B"),
			ChannelName:     ptr("Kênh B"),
			AmountBeforeVAT: ptr(dtos.Money(5_000_000)),
			DocxPath:        ptr("out/0101.docx"),
		},
	})
	require.NoError(t, err)

	a, err := s.Annexes.CreateAnnex(ctx, "bob", dtos.CreateAnnexRequest{
		ContractNo: "0101/2025/X",
		AnnexNo:    "PL-01",
		TermsInput: dtos.TermsInput{AmountBeforeVAT: ptr(dtos.Money(200_000))},
	})
	require.NoError(t, err)
	require.True(t, a.ContractID.Valid)
	assert.Equal(t, parent.ID, a.ContractID.UUID)
	assert.Equal(t, "Công ty B", a.PartyName)
	assert.Equal(t, "Kênh B", a.ChannelName)
	assert.Empty(t, a.DocxPath)
	assert.Equal(t, int64(220_000), a.TotalAmount)
	assert.Equal(t, "bob", a.CreatedBy)
}

func TestCreateAnnexWithoutContractStaysUnlinked(t *testing.T) {
	s := newTestServices(t)

	a, err := s.Annexes.CreateAnnex(context.Background(), "bob", dtos.CreateAnnexRequest{
		ContractNo: "0102/2025/X",
		AnnexNo:    "PL-01",
	})
	require.NoError(t, err)
	assert.False(t, a.ContractID.Valid)
}

func TestUpdateAnnexStaleVersion(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Annexes.CreateAnnex(ctx, "alice", dtos.CreateAnnexRequest{ContractNo: "0103/2025/X", AnnexNo: "PL-01"})
	require.NoError(t, err)

	_, err = s.Annexes.UpdateAnnex(ctx, "alice", dtos.UpdateAnnexRequest{
		ContractNo: "0103/2025/X", AnnexNo: "PL-01", ExpectedRowVersion: 1,
		SignedOn: ptr("2025-02-01"),
	})
	require.NoError(t, err)

	_, err = s.Annexes.UpdateAnnex(ctx, "bob", dtos.UpdateAnnexRequest{
		ContractNo: "0103/2025/X", AnnexNo: "PL-01", ExpectedRowVersion: 1,
	})
	requireAppError(t, err, http.StatusConflict, utils.ErrCodeRowVersionConflict)

	a, err := s.Annexes.GetAnnex(ctx, "0103/2025/X", "PL-01")
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.RowVersion)
	require.NotNil(t, a.SignedOn)
	assert.Equal(t, "2025-02-01", a.SignedOn.Format("2006-01-02"))
}

func TestDeleteAnnexMissing(t *testing.T) {
	s := newTestServices(t)
	_, err := s.Annexes.DeleteAnnex(context.Background(), "alice", "0104/2025/X", "PL-09")
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}

func TestCreateAnnexParentDeletedMidway(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Contracts.CreateContract(ctx, "alice", dtos.CreateContractRequest{ContractNo: "0105/2025/X"})
	require.NoError(t, err)

	annexes := NewAnnexService(s.AnnexRepo, contractDeletedAfterRead{s.ContractRepo}, s.Audit)
	_, err = annexes.CreateAnnex(ctx, "bob", dtos.CreateAnnexRequest{ContractNo: "0105/2025/X", AnnexNo: "PL-01"})
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)

	list, err := s.Annexes.ListByContract(ctx, "0105/2025/X")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRecordAnnexGeneratedDocuments(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.Annexes.CreateAnnex(ctx, "alice", dtos.CreateAnnexRequest{ContractNo: "0106/2025/X", AnnexNo: "PL-01"})
	require.NoError(t, err)

	a, err := s.Annexes.RecordGeneratedDocuments(ctx, " 0106/2025/X ", "PL-01", "out/0106-PL-01.docx", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.RowVersion)
	assert.Equal(t, "out/0106-PL-01.docx", a.DocxPath)
	assert.Empty(t, a.CataloguePath)
	assert.Equal(t, utils.SystemActor, a.UpdatedBy)

	a, err = s.Annexes.RecordGeneratedDocuments(ctx, "0106/2025/X", "PL-01", "", "out/0106-PL-01.xlsx")
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.RowVersion)
	assert.Equal(t, "out/0106-PL-01.docx", a.DocxPath)
	assert.Equal(t, "out/0106-PL-01.xlsx", a.CataloguePath)

	_, err = s.Annexes.RecordGeneratedDocuments(ctx, "0106/2025/X", "PL-99", "x.docx", "")
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}
