package routes

// Natural keys contain slashes ("0001/2025/..."), so they travel as query
// parameters, never as path segments.
const (
	// Health
	Health = "/health"

	// Contracts
	Contracts       = "/api/v1/contracts"
	ContractsDetail = "/api/v1/contracts/detail"
	ContractsUpdate = "/api/v1/contracts/update"
	ContractsDelete = "/api/v1/contracts/delete"

	// Annexes
	Annexes       = "/api/v1/annexes"
	AnnexesDetail = "/api/v1/annexes/detail"
	AnnexesUpdate = "/api/v1/annexes/update"
	AnnexesDelete = "/api/v1/annexes/delete"

	// Works
	Works       = "/api/v1/works"
	WorksImport = "/api/v1/works/import"

	// Audit trail
	Audit = "/api/v1/audit"

	// Statistics
	Stats       = "/api/v1/stats"
	StatsReport = "/api/v1/stats/report"
)
