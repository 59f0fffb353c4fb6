package dtos

import "github.com/stevedao0/contract-service/internal/models"

type DashboardResponse struct {
	Year    int    `json:"year"`
	Handler string `json:"handler,omitempty"`

	ContractsCount      int64 `json:"contracts_count"`
	AnnexesCount        int64 `json:"annexes_count"`
	WorksCount          int64 `json:"works_count"`
	ContractsTotalValue int64 `json:"contracts_total_value"`
	AnnexesTotalValue   int64 `json:"annexes_total_value"`

	TopChannels []models.ChannelTotal `json:"top_channels"`
}

// ReportRow is one period bucket. TotalValue stays 0 for works reports.
type ReportRow struct {
	Period     string `json:"period"`
	Count      int64  `json:"count"`
	TotalValue int64  `json:"total_value"`
}

type ReportResponse struct {
	Source  string `json:"source"`
	GroupBy string `json:"group_by"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Handler string `json:"handler,omitempty"`

	Rows       []ReportRow `json:"rows"`
	Total      int64       `json:"total"`
	TotalValue int64       `json:"total_value"`
}
