package websocket

//go:generate go run go.uber.org/mock/mockgen -source=./websocket.go -destination=./mocks/websocket_mock.go -package=mocks

import (
	"encoding/json"
	"fmt"
	"hotel/config"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4 * 1024
	defaultSendBuffer = 256

	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	TopicAll          = "*"
)

// Hub keeps the live dashboard connections and fans topic messages out to them.
type Hub interface {
	Upgrade(writer http.ResponseWriter, request *http.Request) (*websocket.Conn, error)
	ServeWS(conn *websocket.Conn, userID string)
	Broadcast(topic string, payload any) error
	Connections() int
}

type clientMessage struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

type connection struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

type hubImpl struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	upgrader    websocket.Upgrader
	sendBuffer  int
}

func New(cfg *config.Config) Hub {
	allowed := cfg.Websocket.AllowedOrigins

	sendBuffer := cfg.Websocket.SendBuffer
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}

	return &hubImpl{
		connections: make(map[*connection]struct{}),
		sendBuffer:  sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}

				return slices.Contains(allowed, r.Header.Get("Origin"))
			},
		},
	}
}

func (h *hubImpl) Upgrade(writer http.ResponseWriter, request *http.Request) (*websocket.Conn, error) {
	conn, err := h.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	return conn, nil
}

// ServeWS blocks until the client disconnects. New clients receive every topic.
func (h *hubImpl) ServeWS(conn *websocket.Conn, userID string) {
	c := &connection{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, h.sendBuffer),
		topics: map[string]bool{TopicAll: true},
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *hubImpl) Broadcast(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal websocket payload: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.connections {
		if !c.topics[TopicAll] && !c.topics[topic] {
			continue
		}

		select {
		case c.send <- data:
		default:
			log.Warn().Str("user_id", c.userID).Str("topic", topic).Msg("websocket client too slow, dropping message")
		}
	}

	return nil
}

func (h *hubImpl) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.connections)
}

func (h *hubImpl) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[c] = struct{}{}

	log.Info().Str("user_id", c.userID).Int("connections", len(h.connections)).Msg("websocket client connected")
}

func (h *hubImpl) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)

		log.Info().Str("user_id", c.userID).Int("connections", len(h.connections)).Msg("websocket client disconnected")
	}
}

func (h *hubImpl) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", c.userID).Msg("websocket read failed")
			}

			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Topic == "" {
			continue
		}

		h.mu.Lock()
		switch msg.Action {
		case ActionSubscribe:
			if msg.Topic != TopicAll {
				delete(c.topics, TopicAll)
			}

			c.topics[msg.Topic] = true
		case ActionUnsubscribe:
			delete(c.topics, msg.Topic)
		}
		h.mu.Unlock()
	}
}

func (h *hubImpl) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
