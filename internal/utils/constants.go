package utils

const (
	OrganizationName = "ContractDesk"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// SystemActor stamps rows written by the service itself (seeding, cron).
	SystemActor = "system"

	DefaultVATPercent = 10.0

	DefaultContractField = "Sao chép trực tuyến"
	DefaultRegionCode    = "HDQTGAN-PN"
	DefaultFieldCode     = "MR"
	DefaultPartyPosition = "Giám đốc"
)
