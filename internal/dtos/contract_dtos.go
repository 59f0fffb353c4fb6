package dtos

import "github.com/stevedao0/contract-service/internal/models"

type CreateContractRequest struct {
	ContractNo string `json:"contract_no" validate:"required,max=100"`
	// Derived from contract_no (NNNN/YYYY/...) when omitted.
	ContractYear *int    `json:"contract_year,omitempty" validate:"omitempty,gte=1900,lte=9999"`
	SignedOn     *string `json:"signed_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Field        *string `json:"field,omitempty" validate:"omitempty,max=200"`
	RegionCode   *string `json:"region_code,omitempty" validate:"omitempty,max=50"`
	FieldCode    *string `json:"field_code,omitempty" validate:"omitempty,max=50"`

	TermsInput
}

// UpdateContractRequest is a compare-and-swap edit: it is applied only if
// the stored row_version still equals ExpectedRowVersion.
type UpdateContractRequest struct {
	ContractNo         string  `json:"contract_no" validate:"required,max=100"`
	ExpectedRowVersion int64   `json:"expected_row_version" validate:"required,gte=1"`
	ContractYear       *int    `json:"contract_year,omitempty" validate:"omitempty,gte=1900,lte=9999"`
	SignedOn           *string `json:"signed_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Field              *string `json:"field,omitempty" validate:"omitempty,max=200"`
	RegionCode         *string `json:"region_code,omitempty" validate:"omitempty,max=50"`
	FieldCode          *string `json:"field_code,omitempty" validate:"omitempty,max=50"`

	TermsInput
}

type ListContractsResponse struct {
	Contracts []*models.Contract `json:"contracts"`
	Total     int                `json:"total"`
}

type DeleteResponse struct {
	Deleted string `json:"deleted"`
	Annexes int64  `json:"annexes_deleted"`
	Works   int64  `json:"works_deleted"`
}
