package models

import (
	"time"

	"github.com/google/uuid"
)

// Work is one imported catalogue row (a musical work used on a channel).
// Works are append-only; they carry no row_version.
type Work struct {
	ID         uuid.UUID `json:"id"`
	Year       int       `json:"year"`
	ContractNo string    `json:"contract_no"`
	AnnexNo    string    `json:"annex_no"`

	ChannelName string `json:"channel_name"`
	ChannelID   string `json:"channel_id"`
	ChannelLink string `json:"channel_link"`
	Handler     string `json:"handler"`

	Seq            int    `json:"seq"`
	VideoID        string `json:"video_id"`
	YouTubeURL     string `json:"youtube_url"`
	WorkCode       string `json:"work_code"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Composer       string `json:"composer"`
	Lyricist       string `json:"lyricist"`
	TimeRange      string `json:"time_range"`
	Duration       string `json:"duration"`
	EffectiveDate  string `json:"effective_date"`
	ExpirationDate string `json:"expiration_date"`
	UsageType      string `json:"usage_type"`
	RoyaltyRate    string `json:"royalty_rate"`
	Note           string `json:"note"`

	ImportedAt time.Time `json:"imported_at"`
	CreatedBy  string    `json:"created_by"`
}
