package dtos

import "github.com/stevedao0/contract-service/internal/models"

type CreateAnnexRequest struct {
	ContractNo string  `json:"contract_no" validate:"required,max=100"`
	AnnexNo    string  `json:"annex_no" validate:"required,max=100"`
	SignedOn   *string `json:"signed_on,omitempty" validate:"omitempty,datetime=2006-01-02"`

	TermsInput
}

type UpdateAnnexRequest struct {
	ContractNo         string  `json:"contract_no" validate:"required,max=100"`
	AnnexNo            string  `json:"annex_no" validate:"required,max=100"`
	ExpectedRowVersion int64   `json:"expected_row_version" validate:"required,gte=1"`
	SignedOn           *string `json:"signed_on,omitempty" validate:"omitempty,datetime=2006-01-02"`

	TermsInput
}

type ListAnnexesResponse struct {
	Annexes []*models.Annex `json:"annexes"`
	Total   int             `json:"total"`
}
