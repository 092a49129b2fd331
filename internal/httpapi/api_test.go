package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"neighborhood-share/internal/bloom"
	"neighborhood-share/internal/emergency"
	"neighborhood-share/internal/fixtures"
	"neighborhood-share/internal/kstream"
	"neighborhood-share/internal/messaging"
	"neighborhood-share/internal/profile"
	"neighborhood-share/internal/realtime"
	"neighborhood-share/internal/session"
	"neighborhood-share/internal/share"
)

type testAPI struct {
	t        *testing.T
	handler  http.Handler
	sessions *session.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := zaptest.NewLogger(t)
	sessions := session.NewMemoryStore(time.Hour)
	pub := kstream.NewLogPublisher(logger)
	hub := realtime.NewHub(logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	h := NewHandler(Deps{
		Listings:    fixtures.Listings(),
		Sessions:    sessions,
		Share:       share.NewService(bloom.NewMemoryFilter(), pub, logger),
		Emergency:   emergency.NewService(pub, hub, logger),
		Messaging:   messaging.NewService(hub),
		Profile:     profile.NewService(sessions),
		Hub:         hub,
		CORSOrigins: []string{"*"},
		Logger:      logger,
	})
	return &testAPI{t: t, handler: h, sessions: sessions}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Error   string          `json:"error"`
	Fields  []string        `json:"fields"`
}

func (a *testAPI) do(method, path, sessionID, body string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(session.Header, sessionID)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

type listingOut struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Related []listingOut `json:"related"`
	Liked   bool         `json:"liked"`
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	rec, _ := a.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(session.Header))
}

func TestListListings(t *testing.T) {
	a := newTestAPI(t)

	tests := []struct {
		path string
		want []string
	}{
		{"/api/listings", []string{"1", "2", "3", "4", "5", "6"}},
		{"/api/listings?category=Meals", []string{"3", "5"}},
		{"/api/listings?q=guitar", []string{"2"}},
		{"/api/listings?category=All&q=ZZZ_NO_MATCH", []string{}},
		{"/api/listings?category=Featured", []string{"1", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, env := a.do(http.MethodGet, tt.path, "s", "")
			require.Equal(t, http.StatusOK, rec.Code)
			got := decodeData[[]listingOut](t, env)
			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), env.Count)
		})
	}
}

func TestGetListing(t *testing.T) {
	a := newTestAPI(t)

	rec, env := a.do(http.MethodGet, "/api/listings/1", "s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	l := decodeData[listingOut](t, env)
	assert.Equal(t, "Photography Session", l.Title)
	require.Len(t, l.Related, 2)
	assert.Equal(t, "2", l.Related[0].ID)
	assert.False(t, l.Liked)
	assert.Contains(t, rec.Body.String(), `"trustScore":`)
	assert.Contains(t, rec.Body.String(), `"isAvailable":`)
	assert.Contains(t, rec.Body.String(), `"relatedItems":`)
	assert.NotContains(t, rec.Body.String(), `"trust_score"`)

	st, err := a.sessions.Get(context.Background(), "s")
	require.NoError(t, err)
	assert.Empty(t, st.Home.Detail, "reading a listing must not open the overlay")

	rec, _ = a.do(http.MethodPut, "/api/session/view", "s", `{"detail":"1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	st, err = a.sessions.Get(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "1", st.Home.Detail)

	rec, env = a.do(http.MethodGet, "/api/listings/404", "s", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)

	rec, env = a.do(http.MethodGet, "/api/listings/5/related", "s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	related := decodeData[[]listingOut](t, env)
	require.Len(t, related, 1)
	assert.Equal(t, "3", related[0].ID)
}

func TestLikes(t *testing.T) {
	a := newTestAPI(t)

	rec, env := a.do(http.MethodPost, "/api/listings/2/like", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeData[map[string]any](t, env)["liked"])

	_, env = a.do(http.MethodGet, "/api/likes", "alice", "")
	assert.Equal(t, []string{"2"}, decodeData[[]string](t, env))

	_, env = a.do(http.MethodGet, "/api/listings/2", "alice", "")
	assert.True(t, decodeData[listingOut](t, env).Liked)

	// likes are per session
	_, env = a.do(http.MethodGet, "/api/likes", "bob", "")
	assert.Empty(t, decodeData[[]string](t, env))

	_, env = a.do(http.MethodPost, "/api/listings/2/like", "alice", "")
	assert.Equal(t, false, decodeData[map[string]any](t, env)["liked"])
	_, env = a.do(http.MethodGet, "/api/likes", "alice", "")
	assert.Empty(t, decodeData[[]string](t, env))
}

func TestHomeFollowsSessionView(t *testing.T) {
	a := newTestAPI(t)

	type home struct {
		Category string       `json:"category"`
		Featured []listingOut `json:"featured"`
		New      []listingOut `json:"new"`
		Feed     []listingOut `json:"feed"`
		Chips    []string     `json:"chips"`
	}

	_, env := a.do(http.MethodGet, "/api/home", "s", "")
	h := decodeData[home](t, env)
	assert.Equal(t, "All", h.Category)
	assert.Len(t, h.Featured, 2)
	assert.Len(t, h.New, 3)
	assert.Len(t, h.Feed, 6)
	assert.Len(t, h.Chips, 7)

	rec, _ := a.do(http.MethodPut, "/api/session/view", "s", `{"category":"Skills","query":"lessons"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = a.do(http.MethodGet, "/api/home", "s", "")
	h = decodeData[home](t, env)
	assert.Equal(t, "Skills", h.Category)
	assert.Empty(t, h.Featured)
	require.Len(t, h.Feed, 1)
	assert.Equal(t, "2", h.Feed[0].ID)

	rec, _ = a.do(http.MethodPut, "/api/session/view", "s", `{"category":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShare(t *testing.T) {
	a := newTestAPI(t)

	rec, env := a.do(http.MethodPost, "/api/share", "s", `{"title":"Ladder","category":"tools"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"description"}, env.Fields)

	rec, env = a.do(http.MethodPost, "/api/share", "s", `{"title":"Ladder","category":"tools","description":"6ft aluminium"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	ack := decodeData[share.Ack](t, env)
	assert.Equal(t, "Resource Shared!", ack.Title)

	// the catalog is unchanged by submissions
	_, env = a.do(http.MethodGet, "/api/listings?q=ladder", "s", "")
	assert.Equal(t, 0, env.Count)

	rec, env = a.do(http.MethodGet, "/api/share/options", "s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[share.Options](t, env).Categories, 6)
}

func TestEmergency(t *testing.T) {
	a := newTestAPI(t)

	_, env := a.do(http.MethodPost, "/api/emergency/call", "s", "")
	assert.Equal(t, emergency.StatusConfirmationRequired, decodeData[emergency.Prompt](t, env).Status)

	_, env = a.do(http.MethodPost, "/api/emergency/call", "s", `{"confirm":true}`)
	assert.Equal(t, "Emergency Called", decodeData[emergency.Prompt](t, env).Title)

	rec, env := a.do(http.MethodPost, "/api/emergency/alerts", "s", `{"confirm":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Error, "Select Emergency Type")

	_, env = a.do(http.MethodPost, "/api/emergency/alerts", "s", `{"type":"weather"}`)
	assert.Equal(t, "Send Community Alert?", decodeData[emergency.Prompt](t, env).Title)

	rec, env = a.do(http.MethodPost, "/api/emergency/alerts", "s", `{"type":"weather","confirm":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alert Sent!", decodeData[emergency.Prompt](t, env).Title)

	rec, _ = a.do(http.MethodPost, "/api/emergency/contacts/2/contact", "s", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = a.do(http.MethodPost, "/api/emergency/contacts/3/contact", "s", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec, _ = a.do(http.MethodPost, "/api/emergency/contacts/7/contact", "s", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = a.do(http.MethodGet, "/api/emergency", "s", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[emergency.Overview](t, env).Types, 6)
}

func TestMessaging(t *testing.T) {
	a := newTestAPI(t)

	_, env := a.do(http.MethodGet, "/api/conversations?q=watch", "s", "")
	convs := decodeData[[]map[string]any](t, env)
	require.Len(t, convs, 1)
	assert.Equal(t, "Neighborhood Watch", convs[0]["name"])

	rec, _ := a.do(http.MethodGet, "/api/conversations/9", "s", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = a.do(http.MethodPost, "/api/conversations/1/messages", "s", `{"text":"  "}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = a.do(http.MethodPost, "/api/conversations/1/messages", "s", `{"text":"See you at 3"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "See you at 3", decodeData[map[string]any](t, env)["content"])
}

func TestProfile(t *testing.T) {
	a := newTestAPI(t)

	rec, _ := a.do(http.MethodPut, "/api/profile/settings/location", "s", `{"value":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	_, env := a.do(http.MethodGet, "/api/profile", "s", "")
	v := decodeData[profile.View](t, env)
	assert.False(t, v.Settings["location"])
	assert.True(t, v.Settings["notifications"])

	rec, _ = a.do(http.MethodPut, "/api/profile/settings/darkmode", "s", `{"value":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = a.do(http.MethodPut, "/api/profile/settings/location", "s", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = a.do(http.MethodPost, "/api/profile/signout", "s", `{"confirm":true}`)
	assert.Equal(t, "Signed Out", decodeData[profile.SignOutPrompt](t, env).Title)
}
