package websocket_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/websocket"
)

func newTestServer(t *testing.T, hub websocket.Hub) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.Upgrade(w, r)
		if err != nil {
			return
		}

		hub.ServeWS(conn, "user-1")
	}))
	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server) *gorilla.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

func waitForConnections(t *testing.T, hub websocket.Hub, expected int) {
	t.Helper()

	assert.Eventually(t, func() bool {
		return hub.Connections() == expected
	}, time.Second, 10*time.Millisecond)
}

func readPayload(t *testing.T, conn *gorilla.Conn) map[string]string {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(raw, &payload))

	return payload
}

func TestHub_BroadcastReachesNewClients(t *testing.T) {
	hub := websocket.New(&config.Config{})
	server := newTestServer(t, hub)

	conn := dial(t, server)
	waitForConnections(t, hub, 1)

	require.NoError(t, hub.Broadcast("room.state_changed", map[string]string{"roomID": "101"}))

	assert.Equal(t, "101", readPayload(t, conn)["roomID"])
}

func TestHub_SubscribeFiltersTopics(t *testing.T) {
	hub := websocket.New(&config.Config{})
	server := newTestServer(t, hub)

	conn := dial(t, server)
	waitForConnections(t, hub, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"action": websocket.ActionSubscribe, "topic": "bill.created"}))

	// the subscription is applied asynchronously by the read loop
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, hub.Broadcast("room.state_changed", map[string]string{"roomID": "101"}))
	require.NoError(t, hub.Broadcast("bill.created", map[string]string{"billID": "bill-1"}))

	assert.Equal(t, "bill-1", readPayload(t, conn)["billID"])
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := websocket.New(&config.Config{})
	server := newTestServer(t, hub)

	conn := dial(t, server)
	waitForConnections(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForConnections(t, hub, 0)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	cfg := &config.Config{}
	cfg.Websocket.AllowedOrigins = []string{"https://hotel.example.com"}

	hub := websocket.New(cfg)
	server := newTestServer(t, hub)

	url := "ws" + strings.TrimPrefix(server.URL, "http")

	_, resp, err := gorilla.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example.com"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := websocket.New(&config.Config{})

	assert.NoError(t, hub.Broadcast("booking.created", map[string]string{"id": "booking-1"}))
	assert.Zero(t, hub.Connections())
}
