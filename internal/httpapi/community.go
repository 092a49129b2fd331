package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"neighborhood-share/internal/emergency"
	"neighborhood-share/internal/messaging"
	"neighborhood-share/internal/profile"
	"neighborhood-share/internal/session"
	"neighborhood-share/internal/share"
)

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

// GET /api/share/options
func (a *api) shareOptions(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.Share.Options())
}

// POST /api/share
func (a *api) submitShare(w http.ResponseWriter, r *http.Request) {
	var f share.Form
	if err := decode(r, &f); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ack, err := a.Share.Submit(r.Context(), session.ID(r.Context()), f)
	var verr *share.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   verr.Error(),
			"fields":  verr.Fields,
		})
		return
	case err != nil:
		a.Logger.Error("share submit failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not share resource")
		return
	}
	writeData(w, http.StatusCreated, ack)
}

// GET /api/emergency
func (a *api) emergencyOverview(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.Emergency.Overview())
}

// POST /api/emergency/call
func (a *api) emergencyCall(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeData(w, http.StatusOK, a.Emergency.Call(req.Confirm))
}

type alertRequest struct {
	Type    string `json:"type"`
	Confirm bool   `json:"confirm"`
}

// POST /api/emergency/alerts
func (a *api) communityAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	p, err := a.Emergency.SendAlert(r.Context(), session.ID(r.Context()), req.Type, req.Confirm)
	if errors.Is(err, emergency.ErrTypeRequired) {
		writeError(w, http.StatusBadRequest, "Select Emergency Type: "+err.Error())
		return
	}
	if err != nil {
		a.Logger.Error("community alert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not send alert")
		return
	}
	writeData(w, http.StatusOK, p)
}

// POST /api/emergency/contacts/{id}/contact
func (a *api) contactResponder(w http.ResponseWriter, r *http.Request) {
	c, err := a.Emergency.Contact(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, emergency.ErrContactNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, emergency.ErrContactUnavailable):
		writeError(w, http.StatusConflict, c.Name+" is busy right now")
	default:
		writeData(w, http.StatusOK, map[string]any{
			"contact": c,
			"message": c.Name + " has been notified.",
		})
	}
}

// GET /api/conversations?q=
func (a *api) listConversations(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, a.Messaging.Search(r.URL.Query().Get("q")))
}

// GET /api/conversations/{id}
func (a *api) getConversation(w http.ResponseWriter, r *http.Request) {
	th, err := a.Messaging.Thread(mux.Vars(r)["id"])
	if errors.Is(err, messaging.ErrConversationNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeData(w, http.StatusOK, th)
}

type messageRequest struct {
	Text string `json:"text"`
}

// POST /api/conversations/{id}/messages
func (a *api) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	msg, sent, err := a.Messaging.Send(mux.Vars(r)["id"], req.Text)
	if errors.Is(err, messaging.ErrConversationNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if !sent {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeData(w, http.StatusAccepted, msg)
}

// GET /api/profile
func (a *api) getProfile(w http.ResponseWriter, r *http.Request) {
	v, err := a.Profile.Get(r.Context(), session.ID(r.Context()))
	if err != nil {
		a.Logger.Error("load profile failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	writeData(w, http.StatusOK, v)
}

type settingRequest struct {
	Value *bool `json:"value"`
}

// PUT /api/profile/settings/{key}
func (a *api) setSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := decode(r, &req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, `body must be {"value": true|false}`)
		return
	}
	settings, err := a.Profile.SetSetting(r.Context(), session.ID(r.Context()), mux.Vars(r)["key"], *req.Value)
	if errors.Is(err, profile.ErrUnknownSetting) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		a.Logger.Error("save setting failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not save setting")
		return
	}
	writeData(w, http.StatusOK, settings)
}

// POST /api/profile/signout
func (a *api) signOut(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeData(w, http.StatusOK, a.Profile.SignOut(req.Confirm))
}
