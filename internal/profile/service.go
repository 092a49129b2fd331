// Package profile serves the profile screen and its setting toggles.
package profile

import (
	"context"
	"errors"
	"fmt"

	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/model"
	"neighborhood-share/internal/session"
)

var ErrUnknownSetting = errors.New("unknown setting")

// AchievementView adds the progress percentage shown on unearned badges.
type AchievementView struct {
	model.Achievement
	Percent *float64 `json:"percent,omitempty"`
}

// View is the data behind the profile screen.
type View struct {
	Profile      model.Profile     `json:"profile"`
	Stars        int               `json:"stars"`
	Achievements []AchievementView `json:"achievements"`
	Settings     map[string]bool   `json:"settings"`
}

// SignOutPrompt mirrors the confirmation and acknowledgment dialogs.
type SignOutPrompt struct {
	Status  string `json:"status"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type Service struct {
	sessions session.Store
}

func NewService(sessions session.Store) *Service {
	return &Service{sessions: sessions}
}

func (s *Service) Get(ctx context.Context, sessionID string) (View, error) {
	st, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return View{}, fmt.Errorf("load profile settings: %w", err)
	}
	p := fixtures.CurrentProfile()

	achievements := fixtures.Achievements()
	views := make([]AchievementView, 0, len(achievements))
	for _, a := range achievements {
		views = append(views, AchievementView{Achievement: a, Percent: percent(a)})
	}

	return View{
		Profile:      p,
		Stars:        int(p.TrustScore), // whole stars only
		Achievements: views,
		Settings:     st.Settings,
	}, nil
}

// percent is only defined for unearned achievements that track progress.
func percent(a model.Achievement) *float64 {
	if a.Earned || a.Progress == 0 || a.Total == 0 {
		return nil
	}
	p := float64(a.Progress) / float64(a.Total) * 100
	return &p
}

// SetSetting stores a toggle for the session and returns all settings.
func (s *Service) SetSetting(ctx context.Context, sessionID, key string, value bool) (map[string]bool, error) {
	switch key {
	case session.SettingNotifications, session.SettingEmergency, session.SettingLocation:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	st, err := s.sessions.Update(ctx, sessionID, func(st *session.State) {
		st.Settings[key] = value
	})
	if err != nil {
		return nil, fmt.Errorf("save setting %s: %w", key, err)
	}
	return st.Settings, nil
}

func (s *Service) SignOut(confirm bool) SignOutPrompt {
	if !confirm {
		return SignOutPrompt{
			Status:  "confirmation_required",
			Title:   "Sign Out",
			Message: "Are you sure you want to sign out?",
		}
	}
	return SignOutPrompt{
		Status:  "done",
		Title:   "Signed Out",
		Message: "You have been signed out successfully.",
	}
}
