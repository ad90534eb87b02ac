package models

// AlertChannel identifies a notification delivery path.
type AlertChannel string

const (
	ChannelOnlineSMS  AlertChannel = "online_sms"
	ChannelOfflineSMS AlertChannel = "offline_sms"
	ChannelBroadcast  AlertChannel = "broadcast"
)

// AlertRequest carries one urgent notification to be delivered.
// PhoneNumber is optional; an empty value skips the phone channel sequence.
type AlertRequest struct {
	Message     string
	PhoneNumber string
	RegionLabel string
}

// AlertOutcome reports the result of a single channel attempt. Outcomes are
// returned to the caller alongside the assessment and are never persisted on
// the request path.
type AlertOutcome struct {
	Channel AlertChannel `json:"channel"`
	Success bool         `json:"success"`
	Detail  string       `json:"detail"`
}
