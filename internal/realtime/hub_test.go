package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"neighborhood-share/internal/model"
	"neighborhood-share/internal/session"
)

func TestHub_StopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	assert.Equal(t, 0, h.Connected())
	cancel()
	<-stopped

	// after shutdown these must not block
	h.Broadcast(model.RealtimeEvent{Kind: model.EventMessage})
	assert.Equal(t, 0, h.Connected())
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHub(zaptest.NewLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(stopped)
	}()

	srv := httptest.NewServer(session.Middleware(http.HandlerFunc(h.ServeWS)))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)

	h.Broadcast(model.RealtimeEvent{Kind: model.EventCommunityAlert, Payload: map[string]string{"type": "fire"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Kind    string            `json:"kind"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, model.EventCommunityAlert, got.Kind)
	assert.Equal(t, "fire", got.Payload["type"])

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return h.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-stopped
}
