package models

// ChannelUpdatePayload is the queued request to mirror a booking change to
// the broadcast channel.
type ChannelUpdatePayload struct {
	Text string `json:"text"`
}
