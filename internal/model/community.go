package model

// EmergencyType is a kind of emergency a neighbor can raise an alert for.
type EmergencyType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// EmergencyContact is a neighbor with a skill useful in emergencies.
type EmergencyContact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Skill        string `json:"skill"`
	Distance     string `json:"distance"`
	ResponseTime string `json:"responseTime"`
	Available    bool   `json:"available"`
}

// AlertStatus is the lifecycle state of a community alert.
type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertResolved AlertStatus = "resolved"
)

// EmergencyAlert is an alert shown on the emergency screen.
type EmergencyAlert struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Location   string      `json:"location"`
	Time       string      `json:"time"`
	Responders int         `json:"responders"`
	Status     AlertStatus `json:"status"`
}

// Conversation is a direct or group chat in the messages screen.
type Conversation struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	LastMessage string   `json:"lastMessage"`
	Timestamp   string   `json:"timestamp"`
	Unread      int      `json:"unread"`
	IsGroup     bool     `json:"isGroup"`
	TrustScore  *float64 `json:"trustScore,omitempty"`
}

// Message is one entry of a conversation thread.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	IsMe      bool   `json:"isMe"`
}

// Profile is the signed-in neighbor's profile.
type Profile struct {
	Name               string  `json:"name"`
	Neighborhood       string  `json:"neighborhood"`
	JoinDate           string  `json:"joinDate"`
	TrustScore         float64 `json:"trustScore"`
	Points             int     `json:"points"`
	Level              string  `json:"level"`
	CompletedExchanges int     `json:"completedExchanges"`
	HelpedNeighbors    int     `json:"helpedNeighbors"`
	EmergencyResponses int     `json:"emergencyResponses"`
}

// Achievement is a badge on the profile screen. Progress and Total are only
// set for achievements that track partial progress.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
	Progress    int    `json:"progress,omitempty"`
	Total       int    `json:"total,omitempty"`
}
