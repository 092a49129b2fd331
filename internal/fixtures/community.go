package fixtures

import (
	"slices"

	"neighborhood-share/internal/model"
)

func EmergencyTypes() []model.EmergencyType {
	return []model.EmergencyType{
		{ID: "medical", Name: "Medical Emergency", Icon: "🚑"},
		{ID: "fire", Name: "Fire/Safety", Icon: "🔥"},
		{ID: "security", Name: "Security Issue", Icon: "🚨"},
		{ID: "utility", Name: "Utility Emergency", Icon: "⚡"},
		{ID: "weather", Name: "Weather Related", Icon: "🌪️"},
		{ID: "other", Name: "Other Emergency", Icon: "⚠️"},
	}
}

func EmergencyContacts() []model.EmergencyContact {
	return []model.EmergencyContact{
		{ID: "1", Name: "Dr. Sarah Chen", Skill: "Emergency Medicine", Distance: "0.1 miles", ResponseTime: "< 2 min", Available: true},
		{ID: "2", Name: "Mike Rodriguez", Skill: "Firefighter", Distance: "0.3 miles", ResponseTime: "< 5 min", Available: true},
		{ID: "3", Name: "Jennifer Park", Skill: "Crisis Counselor", Distance: "0.2 miles", ResponseTime: "< 3 min", Available: false},
	}
}

func EmergencyAlerts() []model.EmergencyAlert {
	return []model.EmergencyAlert{
		{ID: "1", Type: "Utility Emergency", Location: "Oak Street & 5th Ave", Time: "5 min ago", Responders: 3, Status: model.AlertActive},
		{ID: "2", Type: "Weather Related", Location: "Pine Grove Community", Time: "1 hour ago", Responders: 8, Status: model.AlertResolved},
	}
}

func score(v float64) *float64 { return &v }

func Conversations() []model.Conversation {
	return []model.Conversation{
		{ID: "1", Name: "Mike Chen", LastMessage: "The power drill is ready for pickup!", Timestamp: "2 min ago", Unread: 1, TrustScore: score(4.9)},
		{ID: "2", Name: "Oak Grove Emergency Team", LastMessage: "All clear on the utility issue", Timestamp: "15 min ago", IsGroup: true},
		{ID: "3", Name: "Emma Wilson", LastMessage: "Thanks for the guitar lesson!", Timestamp: "1 hour ago", TrustScore: score(5.0)},
		{ID: "4", Name: "Neighborhood Watch", LastMessage: "Jessica: Everything looks quiet tonight", Timestamp: "2 hours ago", Unread: 3, IsGroup: true},
	}
}

var thread = []model.Message{
	{ID: "1", Sender: "Mike Chen", Content: "Hi! I saw you're interested in borrowing my power drill.", Timestamp: "10:30 AM"},
	{ID: "2", Sender: "You", Content: "Yes! I need it for a small home project. When would be convenient?", Timestamp: "10:32 AM", IsMe: true},
	{ID: "3", Sender: "Mike Chen", Content: "Perfect! How about this afternoon around 3 PM? I'll be home.", Timestamp: "10:35 AM"},
	{ID: "4", Sender: "You", Content: "That works great! Should I come to your place?", Timestamp: "10:36 AM", IsMe: true},
	{ID: "5", Sender: "Mike Chen", Content: "The power drill is ready for pickup!", Timestamp: "2:58 PM"},
}

// Thread returns the message history shown for every conversation.
func Thread() []model.Message {
	return slices.Clone(thread)
}

func CurrentProfile() model.Profile {
	return model.Profile{
		Name:               "Sarah Johnson",
		Neighborhood:       "Oak Grove",
		JoinDate:           "January 2024",
		TrustScore:         4.8,
		Points:             1250,
		Level:              "Trusted Neighbor",
		CompletedExchanges: 28,
		HelpedNeighbors:    15,
		EmergencyResponses: 3,
	}
}

func Achievements() []model.Achievement {
	return []model.Achievement{
		{ID: "1", Title: "First Share", Description: "Shared your first resource", Icon: "🎉", Earned: true},
		{ID: "2", Title: "Helper", Description: "Helped 10 neighbors", Icon: "🤝", Earned: true},
		{ID: "3", Title: "Emergency Hero", Description: "Responded to 5 emergencies", Icon: "🦸", Progress: 3, Total: 5},
		{ID: "4", Title: "Community Champion", Description: "Completed 50 exchanges", Icon: "🏆", Progress: 28, Total: 50},
	}
}
