package model

// ListingShared is emitted when a neighbor submits the share form.
// It is published to the listing.shared topic; the catalog itself is
// never updated from it.
type ListingShared struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"sessionId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     CategoryID `json:"category"`
	Availability string     `json:"availability,omitempty"`
	Location     string     `json:"location,omitempty"`
	Duplicate    bool       `json:"duplicate"`
	Timestamp    string     `json:"timestamp"`
}

// CommunityAlertSent is emitted when a neighbor confirms a community alert.
// It is published to the community.alert topic and fanned out to realtime
// clients by the alert consumer.
type CommunityAlertSent struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	Type      string `json:"type"`
	TypeName  string `json:"typeName"`
	Timestamp string `json:"timestamp"`
}

// Realtime event kinds pushed over the websocket hub.
const (
	EventCommunityAlert = "community_alert"
	EventMessage        = "message"
)

// RealtimeEvent is the envelope written to websocket clients.
type RealtimeEvent struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}
