package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"neighborhood-share/internal/emergency"
	"neighborhood-share/internal/messaging"
	"neighborhood-share/internal/model"
	"neighborhood-share/internal/profile"
	"neighborhood-share/internal/realtime"
	"neighborhood-share/internal/session"
	"neighborhood-share/internal/share"
)

// Deps are the services the HTTP API is served from.
type Deps struct {
	Listings    []model.Listing
	Sessions    session.Store
	Share       *share.Service
	Emergency   *emergency.Service
	Messaging   *messaging.Service
	Profile     *profile.Service
	Hub         *realtime.Hub
	CORSOrigins []string
	Logger      *zap.Logger
}

type api struct {
	Deps
}

// NewHandler builds the router and wraps it in the middleware chain.
func NewHandler(d Deps) http.Handler {
	a := &api{Deps: d}
	r := mux.NewRouter()
	a.registerRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", session.Header},
		ExposedHeaders: []string{session.Header},
	})

	return alice.New(
		recoverer(d.Logger),
		requestLogger(d.Logger),
		c.Handler,
		session.Middleware,
	).Then(r)
}

func (a *api) registerRoutes(r *mux.Router) {
	r.HandleFunc("/health", a.health).Methods(http.MethodGet)
	r.HandleFunc("/ws", a.Hub.ServeWS).Methods(http.MethodGet)

	sub := r.PathPrefix("/api").Subrouter()

	sub.HandleFunc("/home", a.home).Methods(http.MethodGet)
	sub.HandleFunc("/session/view", a.updateView).Methods(http.MethodPut)
	sub.HandleFunc("/listings", a.listListings).Methods(http.MethodGet)
	sub.HandleFunc("/listings/{id}", a.getListing).Methods(http.MethodGet)
	sub.HandleFunc("/listings/{id}/related", a.relatedListings).Methods(http.MethodGet)
	sub.HandleFunc("/listings/{id}/like", a.toggleLike).Methods(http.MethodPost)
	sub.HandleFunc("/likes", a.listLikes).Methods(http.MethodGet)

	sub.HandleFunc("/share/options", a.shareOptions).Methods(http.MethodGet)
	sub.HandleFunc("/share", a.submitShare).Methods(http.MethodPost)

	sub.HandleFunc("/emergency", a.emergencyOverview).Methods(http.MethodGet)
	sub.HandleFunc("/emergency/call", a.emergencyCall).Methods(http.MethodPost)
	sub.HandleFunc("/emergency/alerts", a.communityAlert).Methods(http.MethodPost)
	sub.HandleFunc("/emergency/contacts/{id}/contact", a.contactResponder).Methods(http.MethodPost)

	sub.HandleFunc("/conversations", a.listConversations).Methods(http.MethodGet)
	sub.HandleFunc("/conversations/{id}", a.getConversation).Methods(http.MethodGet)
	sub.HandleFunc("/conversations/{id}/messages", a.sendMessage).Methods(http.MethodPost)

	sub.HandleFunc("/profile", a.getProfile).Methods(http.MethodGet)
	sub.HandleFunc("/profile/settings/{key}", a.setSetting).Methods(http.MethodPut)
	sub.HandleFunc("/profile/signout", a.signOut).Methods(http.MethodPost)
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"listings": len(a.Listings),
		"wsOnline": a.Hub.Connected(),
	})
}
