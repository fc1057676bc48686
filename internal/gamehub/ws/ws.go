package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/avvvet/gamehub-services/internal/comm"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// client serializes writes to one websocket connection.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(messageType, data)
}

// Hub fans catalog events out to every connected websocket client.
type Hub struct {
	connMap    sync.Map // socketId -> *client
	upgrader   websocket.Upgrader
	instanceId string
}

func NewHub(instanceId string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		instanceId: instanceId,
	}
}

// HandleWebSocket upgrades the request and keeps the client registered until
// it disconnects. Clients only listen; anything they send is discarded.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	c := &client{conn: conn}
	h.connMap.Store(socketId, c)
	log.Infof("New WebSocket connection established: %s", socketId)

	if err := h.sendHello(c, socketId); err != nil {
		log.Errorf("Failed to greet socket %s: %v", socketId, err)
		h.drop(socketId)
		return
	}

	done := make(chan struct{})
	go h.keepAlive(c, socketId, done)
	go h.readLoop(c, socketId, done)
}

func (h *Hub) sendHello(c *client, socketId string) error {
	data, err := json.Marshal(comm.Hello{SocketId: socketId, InstanceId: h.instanceId})
	if err != nil {
		return err
	}
	msg, err := json.Marshal(comm.WSMessage{Type: "hello", Data: data})
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, msg)
}

func (h *Hub) readLoop(c *client, socketId string, done chan struct{}) {
	defer func() {
		close(done)
		h.drop(socketId)
		log.Infof("Closing WebSocket connection: %s", socketId)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("WebSocket unexpected close error for socket %s: %v", socketId, err)
			}
			return
		}
	}
}

func (h *Hub) keepAlive(c *client, socketId string, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				log.Debugf("ping to socket %s failed: %v", socketId, err)
				return
			}
		}
	}
}

func (h *Hub) drop(socketId string) {
	if v, ok := h.connMap.LoadAndDelete(socketId); ok {
		v.(*client).conn.Close()
	}
}

// Broadcast sends event to every connected client. Clients that cannot be
// written to are dropped.
func (h *Hub) Broadcast(event comm.GameEvent) {
	envelope, err := event.Envelope()
	if err != nil {
		log.Errorf("Failed to encode game event %s: %v", event.ID, err)
		return
	}
	msg, err := json.Marshal(envelope)
	if err != nil {
		log.Errorf("Failed to encode game event %s: %v", event.ID, err)
		return
	}

	h.connMap.Range(func(key, value any) bool {
		socketId := key.(string)
		if err := value.(*client).write(websocket.TextMessage, msg); err != nil {
			log.Warnf("dropping socket %s: %v", socketId, err)
			h.drop(socketId)
		}
		return true
	})
}

// PublishGameEvent delivers event to this instance's clients only.
func (h *Hub) PublishGameEvent(_ context.Context, event comm.GameEvent) error {
	h.Broadcast(event)
	return nil
}

// Count reports how many clients are connected.
func (h *Hub) Count() int {
	n := 0
	h.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.connMap.Range(func(key, value any) bool {
		c := value.(*client)
		_ = c.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		h.drop(key.(string))
		return true
	})
}
