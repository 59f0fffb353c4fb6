package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

const (
	seedContractNo = "0001/2025/HDQTGAN-PN/MR"
	seedAnnexNo    = "PL-01"
)

func strPtr(s string) *string { return &s }
func moneyPtr(n dtos.Money) *dtos.Money { return &n }

// SeedTestData writes one demo contract with an annex and a few works. It
// is a no-op when the demo contract already exists.
func SeedTestData(
	ctx context.Context,
	contracts *services.ContractService,
	annexes *services.AnnexService,
	works *services.WorkService,
) error {
	_, err := contracts.CreateContract(ctx, utils.SystemActor, dtos.CreateContractRequest{
		ContractNo: seedContractNo,
		SignedOn:   strPtr("2025-01-15"),
		TermsInput: dtos.TermsInput{
			PartyName:           strPtr("Công ty TNHH Giai Điệu Xanh"),
			PartyAddress:        strPtr("12 Tràng Tiền, Hoàn Kiếm, Hà Nội"),
			PartyPhone:          strPtr("0912 345 678"),
			PartyRepresentative: strPtr("Nguyễn Văn A"),
			PartyEmail:          strPtr("contact@giaidieuxanh.vn"),
			ChannelName:         strPtr("Giai Điệu Xanh Official"),
			ChannelLink:         strPtr("https://www.youtube.com/channel/UCgiaidieuxanh01"),
			HandlerEmail:        strPtr("handler@example.com"),
			AmountBeforeVAT:     moneyPtr(15_000_000),
		},
	})
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict {
			utils.Logger.Info("Demo data already present; skipping seed")
			return nil
		}
		return err
	}

	if _, err := annexes.CreateAnnex(ctx, utils.SystemActor, dtos.CreateAnnexRequest{
		ContractNo: seedContractNo,
		AnnexNo:    seedAnnexNo,
		SignedOn:   strPtr("2025-06-01"),
		TermsInput: dtos.TermsInput{AmountBeforeVAT: moneyPtr(3_000_000)},
	}); err != nil {
		return err
	}

	if _, err := works.ImportWorks(ctx, utils.SystemActor, dtos.ImportWorksRequest{
		ContractNo: seedContractNo,
		Rows: []dtos.WorkRow{
			{Video: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", WorkCode: "VN-0001", Title: "Khúc Hát Sông Quê", Composer: "Trần Văn B", Duration: "4:12", TimeRange: "0:00 - 4:12"},
			{Video: "https://youtu.be/9bZkp7q19f0", WorkCode: "VN-0002", Title: "Mùa Xuân Đầu Tiên", Composer: "Văn Cao", Duration: "3:45"},
		},
	}); err != nil {
		return err
	}
	if _, err := works.ImportWorks(ctx, utils.SystemActor, dtos.ImportWorksRequest{
		ContractNo: seedContractNo,
		AnnexNo:    seedAnnexNo,
		Rows: []dtos.WorkRow{
			{Video: "kJQP7kiw5Fk", WorkCode: "VN-0003", Title: "Bèo Dạt Mây Trôi", Author: "Dân ca", Duration: "5:01"},
		},
	}); err != nil {
		return err
	}

	if _, err := contracts.RecordGeneratedDocuments(ctx, seedContractNo, "generated/0001-2025.docx", "generated/0001-2025-catalogue.xlsx"); err != nil {
		return err
	}
	if _, err := annexes.RecordGeneratedDocuments(ctx, seedContractNo, seedAnnexNo, "generated/0001-2025-PL-01.docx", ""); err != nil {
		return err
	}

	utils.Logger.Info("Seeded demo contract ", seedContractNo)
	return nil
}
