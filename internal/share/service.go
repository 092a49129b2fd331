// Package share handles the "share a resource" form. Submissions are
// acknowledged and published as events; they never enter the catalog.
package share

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"neighborhood-share/internal/bloom"
	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/kstream"
	"neighborhood-share/internal/model"
)

// Form is the share form as submitted by the app.
type Form struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Category     string `json:"category" validate:"required,oneof=tools skills meals transportation accommodation services"`
	Availability string `json:"availability" validate:"omitempty,availability"`
	Location     string `json:"location"`
}

func (f *Form) normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)
	f.Availability = strings.TrimSpace(f.Availability)
	f.Location = strings.TrimSpace(f.Location)
}

// CanSubmit mirrors the form's submit button: enabled only once the
// required text fields are filled in.
func (f Form) CanSubmit() bool {
	f.normalize()
	return f.Title != "" && f.Category != "" && f.Description != ""
}

// ValidationError lists the form fields that blocked a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing Information: please fill in all required fields (" + strings.Join(e.Fields, ", ") + ")"
}

// Ack is the confirmation shown after a successful submission.
type Ack struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Duplicate bool   `json:"duplicate"`
}

// Service validates and acknowledges share submissions.
type Service struct {
	validate  *validator.Validate
	seen      bloom.Filter
	publisher kstream.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(seen bloom.Filter, publisher kstream.Publisher, logger *zap.Logger) *Service {
	v := validator.New()
	options := fixtures.AvailabilityOptions()
	// go-playground/validator/v10: availability values contain spaces, which
	// the built-in oneof tag cannot express.
	err := v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
		return slices.Contains(options, fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("share: register availability validation: %v", err))
	}
	return &Service{
		validate:  v,
		seen:      seen,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Options is what the form offers for its choice fields.
type Options struct {
	Categories   []model.Category `json:"categories"`
	Availability []string         `json:"availability"`
}

func (s *Service) Options() Options {
	return Options{
		Categories:   fixtures.Categories(),
		Availability: fixtures.AvailabilityOptions(),
	}
}

// Submit validates the form and, if it passes, publishes it and returns the
// acknowledgment. Validation failures are returned as *ValidationError.
// Publishing is fire-and-forget.
func (s *Service) Submit(ctx context.Context, sessionID string, f Form) (Ack, error) {
	f.normalize()
	if err := s.validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return Ack{}, &ValidationError{Fields: fields}
		}
		return Ack{}, fmt.Errorf("validate share form: %w", err)
	}

	dupKey := strings.ToLower(f.Category + "|" + f.Title + "|" + f.Description)
	evt := model.ListingShared{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		Title:        f.Title,
		Description:  f.Description,
		Category:     model.CategoryID(f.Category),
		Availability: f.Availability,
		Location:     f.Location,
		Duplicate:    s.seen.Seen(ctx, dupKey),
		Timestamp:    s.now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.publisher.PublishListingShared(ctx, evt); err != nil {
		s.logger.Warn("publish listing shared failed", zap.String("id", evt.ID), zap.Error(err))
	}

	return Ack{
		ID:        evt.ID,
		Title:     "Resource Shared!",
		Message:   "Your resource has been shared with the community. Neighbors will be able to see and request it.",
		Duplicate: evt.Duplicate,
	}, nil
}
