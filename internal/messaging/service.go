// Package messaging serves the conversation list and threads. Sent
// messages are pushed to realtime clients and not stored.
package messaging

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/model"
)

var ErrConversationNotFound = errors.New("conversation not found")

// Notifier pushes realtime events to connected neighbors.
type Notifier interface {
	Broadcast(evt model.RealtimeEvent)
}

// Thread is a conversation with its messages.
type Thread struct {
	Conversation model.Conversation `json:"conversation"`
	Messages     []model.Message    `json:"messages"`
}

// Outgoing is a sent message as delivered to realtime clients.
type Outgoing struct {
	ConversationID string        `json:"conversationId"`
	Message        model.Message `json:"message"`
}

type Service struct {
	notifier Notifier
	now      func() time.Time
}

func NewService(notifier Notifier) *Service {
	return &Service{notifier: notifier, now: time.Now}
}

// Search filters conversations whose name or last message contains q,
// case-insensitively, keeping list order.
func (s *Service) Search(q string) []model.Conversation {
	q = strings.ToLower(q)
	all := fixtures.Conversations()
	out := make([]model.Conversation, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.LastMessage), q) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) Thread(id string) (Thread, error) {
	for _, c := range fixtures.Conversations() {
		if c.ID == id {
			return Thread{Conversation: c, Messages: fixtures.Thread()}, nil
		}
	}
	return Thread{}, ErrConversationNotFound
}

// Send trims text and, when anything is left, pushes it to realtime
// clients. It reports false when there was nothing to send.
func (s *Service) Send(conversationID, text string) (model.Message, bool, error) {
	if _, err := s.Thread(conversationID); err != nil {
		return model.Message{}, false, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, false, nil
	}

	msg := model.Message{
		ID:        uuid.NewString(),
		Sender:    "You",
		Content:   text,
		Timestamp: s.now().Format("3:04 PM"),
		IsMe:      true,
	}
	if s.notifier != nil {
		s.notifier.Broadcast(model.RealtimeEvent{
			Kind:    model.EventMessage,
			Payload: Outgoing{ConversationID: conversationID, Message: msg},
		})
	}
	return msg, true, nil
}
