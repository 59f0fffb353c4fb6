package dtos

import "github.com/stevedao0/contract-service/internal/models"

// WorkRow is one catalogue line as typed into (or exported from) a sheet.
type WorkRow struct {
	Seq int `json:"seq" validate:"gte=0"`
	// Video is a watch URL, youtu.be link, HYPERLINK formula or bare id.
	Video          string `json:"video" validate:"max=1000"`
	WorkCode       string `json:"work_code" validate:"max=100"`
	Title          string `json:"title" validate:"required,max=500"`
	Author         string `json:"author" validate:"max=300"`
	Composer       string `json:"composer" validate:"max=300"`
	Lyricist       string `json:"lyricist" validate:"max=300"`
	TimeRange      string `json:"time_range" validate:"max=50"`
	Duration       string `json:"duration" validate:"max=20"`
	EffectiveDate  string `json:"effective_date" validate:"max=20"`
	ExpirationDate string `json:"expiration_date" validate:"max=20"`
	UsageType      string `json:"usage_type" validate:"max=200"`
	RoyaltyRate    string `json:"royalty_rate" validate:"max=50"`
	Note           string `json:"note" validate:"max=1000"`
}

type ImportWorksRequest struct {
	ContractNo string    `json:"contract_no" validate:"required,max=100"`
	AnnexNo    string    `json:"annex_no,omitempty" validate:"max=100"`
	Rows       []WorkRow `json:"rows" validate:"required,min=1,max=5000,dive"`
}

type ImportWorksResponse struct {
	ContractNo string `json:"contract_no"`
	AnnexNo    string `json:"annex_no,omitempty"`
	Imported   int    `json:"imported"`
}

type ListWorksResponse struct {
	Works []*models.Work `json:"works"`
	Total int            `json:"total"`
}
