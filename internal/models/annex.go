package models

import (
	"time"

	"github.com/google/uuid"
)

// Annex (phụ lục) amends a contract. ContractID is set when the parent
// contract existed in the store at creation time.
type Annex struct {
	ID         uuid.UUID     `json:"id"`
	ContractID uuid.NullUUID `json:"contract_id"`
	ContractNo string        `json:"contract_no"`
	AnnexNo    string        `json:"annex_no"`
	SignedOn   *time.Time    `json:"signed_on,omitempty"`

	Terms

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`

	Versioned
}

// AnnexKey is the natural key of an annex.
type AnnexKey struct {
	ContractNo string
	AnnexNo    string
}

func (k AnnexKey) String() string { return k.ContractNo + "#" + k.AnnexNo }
