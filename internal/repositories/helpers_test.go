package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stevedao0/contract-service/internal/models"
)

func newTestExecutor(t *testing.T) Executor {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "contracts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ex := NewSQLiteExecutor(db)
	require.NoError(t, Migrate(context.Background(), ex))
	return ex
}

func newContract(no string) *models.Contract {
	return &models.Contract{
		ContractNo:   no,
		ContractYear: 2025,
		Field:        "Sao chép trực tuyến",
		RegionCode:   "HDQTGAN-PN",
		FieldCode:    "MR",
		Terms: models.Terms{
			PartyName:       "Công ty TNHH Sóng Nhạc",
			ChannelName:     "Song Nhac Official",
			ChannelID:       "UC" + uuid.NewString()[:8],
			AmountBeforeVAT: 1_000_000,
			VATPercent:      10,
			VATAmount:       100_000,
			TotalAmount:     1_100_000,
		},
		CreatedBy: "alice",
	}
}

func newAnnex(contract *models.Contract, annexNo string) *models.Annex {
	return &models.Annex{
		ContractID: uuid.NullUUID{UUID: contract.ID, Valid: true},
		ContractNo: contract.ContractNo,
		AnnexNo:    annexNo,
		Terms:      contract.Terms,
		CreatedBy:  "alice",
	}
}

func newWorks(contractNo, annexNo string, n int) []*models.Work {
	out := make([]*models.Work, n)
	for i := range n {
		out[i] = &models.Work{
			Year:       2025,
			ContractNo: contractNo,
			AnnexNo:    annexNo,
			Seq:        i + 1,
			VideoID:    "dQw4w9WgXcQ",
			Title:      "Bài hát",
			Duration:   "00:03:30",
			CreatedBy:  "alice",
		}
	}
	return out
}
