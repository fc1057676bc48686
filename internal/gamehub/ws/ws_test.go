package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/gamehub-services/internal/comm"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) comm.WSMessage {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg comm.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubGreetsAndBroadcasts(t *testing.T) {
	hub := NewHub("instance-1")
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	first := dial(t, srv)
	second := dial(t, srv)

	for _, conn := range []*websocket.Conn{first, second} {
		hello := readMessage(t, conn)
		assert.Equal(t, "hello", hello.Type)

		var payload comm.Hello
		require.NoError(t, json.Unmarshal(hello.Data, &payload))
		assert.Equal(t, "instance-1", payload.InstanceId)
		assert.NotEmpty(t, payload.SocketId)
	}
	assert.Equal(t, 2, hub.Count())

	event := comm.NewGameEvent(comm.GameCreated, 7, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, hub.PublishGameEvent(context.Background(), event))

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		assert.Equal(t, comm.GameCreated, msg.Type)

		var got comm.GameEvent
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, int64(7), got.GameID)
		assert.True(t, got.At.Equal(event.At))
	}
}

func TestHubForgetsClosedClients(t *testing.T) {
	hub := NewHub("instance-1")
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)
	require.Equal(t, 1, hub.Count())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHubClose(t *testing.T) {
	hub := NewHub("instance-1")
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dial(t, srv)
	readMessage(t, conn)

	hub.Close()
	assert.Zero(t, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
