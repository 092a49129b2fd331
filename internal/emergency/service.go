// Package emergency implements the emergency screen: the simulated 911
// call, community alerts and the responder directory. Nothing here places
// a real call; confirmed actions only produce acknowledgments and events.
package emergency

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/kstream"
	"neighborhood-share/internal/model"
)

var (
	ErrTypeRequired       = errors.New("please select the type of emergency first")
	ErrContactNotFound    = errors.New("emergency contact not found")
	ErrContactUnavailable = errors.New("emergency contact is busy")
)

// Outcome of a guarded action.
const (
	StatusConfirmationRequired = "confirmation_required"
	StatusDone                 = "done"
)

// Prompt is either the confirmation dialog shown before an action or the
// acknowledgment shown after it.
type Prompt struct {
	Status  string `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// Notifier pushes realtime events to connected neighbors.
type Notifier interface {
	Broadcast(evt model.RealtimeEvent)
}

// Overview is the data behind the emergency screen.
type Overview struct {
	Types    []model.EmergencyType    `json:"types"`
	Contacts []model.EmergencyContact `json:"contacts"`
	Alerts   []model.EmergencyAlert   `json:"alerts"`
}

type Service struct {
	publisher kstream.Publisher
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires the alert path. notifier may be nil when alerts reach
// realtime clients through the alert consumer instead.
func NewService(publisher kstream.Publisher, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		publisher: publisher,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Overview() Overview {
	return Overview{
		Types:    fixtures.EmergencyTypes(),
		Contacts: fixtures.EmergencyContacts(),
		Alerts:   fixtures.EmergencyAlerts(),
	}
}

// Call simulates dialing emergency services.
func (s *Service) Call(confirm bool) Prompt {
	if !confirm {
		return Prompt{
			Status:  StatusConfirmationRequired,
			Title:   "Call 911?",
			Message: "This will call emergency services. Only use for real emergencies.",
		}
	}
	return Prompt{
		Status:  StatusDone,
		Title:   "Emergency Called",
		Message: "Emergency services have been contacted.",
	}
}

// SendAlert raises a community alert of the given type. An empty or unknown
// type yields ErrTypeRequired. Without confirm only the prompt is returned.
func (s *Service) SendAlert(ctx context.Context, sessionID, typeID string, confirm bool) (Prompt, error) {
	et, ok := lookupType(typeID)
	if !ok {
		return Prompt{}, ErrTypeRequired
	}
	if !confirm {
		return Prompt{
			Status:  StatusConfirmationRequired,
			Title:   "Send Community Alert?",
			Message: "This will notify nearby neighbors who can help with this type of emergency.",
		}, nil
	}

	evt := model.CommunityAlertSent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Type:      et.ID,
		TypeName:  et.Name,
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.publisher.PublishCommunityAlert(ctx, evt); err != nil {
		s.logger.Warn("publish community alert failed", zap.String("id", evt.ID), zap.Error(err))
	}
	if s.notifier != nil {
		s.notifier.Broadcast(model.RealtimeEvent{Kind: model.EventCommunityAlert, Payload: evt})
	}
	s.logger.Info("community alert sent", zap.String("id", evt.ID), zap.String("type", et.ID))

	return Prompt{
		Status:  StatusDone,
		Title:   "Alert Sent!",
		Message: "Your community alert has been sent. Nearby neighbors will be notified.",
		ID:      evt.ID,
	}, nil
}

// Contact reaches out to a responder from the directory. Busy responders
// cannot be contacted.
func (s *Service) Contact(id string) (model.EmergencyContact, error) {
	for _, c := range fixtures.EmergencyContacts() {
		if c.ID != id {
			continue
		}
		if !c.Available {
			return c, ErrContactUnavailable
		}
		return c, nil
	}
	return model.EmergencyContact{}, ErrContactNotFound
}

func lookupType(id string) (model.EmergencyType, bool) {
	for _, t := range fixtures.EmergencyTypes() {
		if t.ID == id {
			return t, true
		}
	}
	return model.EmergencyType{}, false
}
