package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neighborhood-share/internal/model"
)

type recordingNotifier struct {
	events []model.RealtimeEvent
}

func (n *recordingNotifier) Broadcast(evt model.RealtimeEvent) {
	n.events = append(n.events, evt)
}

func names(cs []model.Conversation) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	s := NewService(nil)

	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"Mike Chen", "Oak Grove Emergency Team", "Emma Wilson", "Neighborhood Watch"}},
		{"emma", []string{"Emma Wilson"}},
		{"DRILL", []string{"Mike Chen"}},
		{"quiet", []string{"Neighborhood Watch"}},
		{"nothing here", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			assert.Equal(t, tt.want, names(s.Search(tt.q)))
		})
	}
}

func TestThread(t *testing.T) {
	s := NewService(nil)

	th, err := s.Thread("1")
	require.NoError(t, err)
	assert.Equal(t, "Mike Chen", th.Conversation.Name)
	assert.Len(t, th.Messages, 5)

	_, err = s.Thread("42")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestSend(t *testing.T) {
	n := &recordingNotifier{}
	s := NewService(n)
	s.now = func() time.Time { return time.Date(2024, 1, 16, 15, 4, 0, 0, time.UTC) }

	_, sent, err := s.Send("1", "   ")
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, n.events)

	msg, sent, err := s.Send("1", " On my way! ")
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "On my way!", msg.Content)
	assert.Equal(t, "3:04 PM", msg.Timestamp)
	assert.True(t, msg.IsMe)

	require.Len(t, n.events, 1)
	out, ok := n.events[0].Payload.(Outgoing)
	require.True(t, ok)
	assert.Equal(t, "1", out.ConversationID)

	_, _, err = s.Send("42", "hello")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}
