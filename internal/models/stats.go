package models

// ChannelTotal is a channel's summed contract value.
type ChannelTotal struct {
	Channel    string `json:"channel"`
	TotalValue int64  `json:"total_value"`
}
