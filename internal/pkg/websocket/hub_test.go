package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startHub(t *testing.T, origins ...string) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	hub := NewHub(zerolog.Nop(), origins)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.ServeWS(w, r, 42)
	}))
	return hub, srv, cancel
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_BroadcastsEvents(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub, srv, cancel := startHub(t)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Type: EventPassCheckedIn, Entity: "pass", ID: 9, Data: map[string]string{"code": "abc"}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, EventPassCheckedIn, got.Type)
	assert.Equal(t, int64(9), got.ID)
	assert.False(t, got.Timestamp.IsZero())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-hub.Done()
}

func TestHub_ShutdownDisconnectsClients(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub, srv, cancel := startHub(t)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-hub.Done()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	// publishing after shutdown must not block
	hub.Publish(Event{Type: EventRegistrantDeleted})
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub, srv, cancel := startHub(t, "https://dashboard.mtq.example")
	defer srv.Close()
	defer func() { cancel(); <-hub.Done() }()

	header := http.Header{"Origin": {"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://dashboard.mtq.example")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	conn.Close()
}

func TestOriginAllowed(t *testing.T) {
	hub := NewHub(zerolog.Nop(), []string{"*"})
	assert.True(t, hub.originAllowed("https://anything"))

	hub = NewHub(zerolog.Nop(), nil)
	assert.True(t, hub.originAllowed(""))
	assert.False(t, hub.originAllowed("https://anything"))
}
