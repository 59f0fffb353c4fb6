package models

import (
	"time"

	"github.com/google/uuid"
)

type Contract struct {
	ID           uuid.UUID  `json:"id"`
	ContractNo   string     `json:"contract_no"`
	ContractYear int        `json:"contract_year"`
	SignedOn     *time.Time `json:"signed_on,omitempty"`
	Field        string     `json:"field"`
	RegionCode   string     `json:"region_code"`
	FieldCode    string     `json:"field_code"`

	Terms

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`

	Versioned
}
