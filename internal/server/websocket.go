package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/magefree/arena-go/internal/game"
	"github.com/magefree/arena-go/internal/input"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	defaultMaxMessageSize = 1 << 20
	sendBuffer            = 256
)

// Message types exchanged over the websocket.
const (
	MessageSimulate = "simulate"
	MessageResult   = "result"
	MessageDone     = "done"
	MessageError    = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errClientClosed = errors.New("client closed")

// Message is one websocket frame.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type simulateFunc func(ctx context.Context, doc *input.Document, emit func(*game.Result) error) (game.Stats, error)

// Client is one websocket connection.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// ID returns the client's identifier.
func (c *Client) ID() string {
	return c.id
}

// queue hands a frame to the write pump.
func (c *Client) queue(msg outbound) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- data:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

func (c *Client) close() {
	c.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub tracks connected clients and runs their simulation requests.
type Hub struct {
	logger         *zap.Logger
	simulate       simulateFunc
	limiters       *limiterStore
	maxMessageSize int64

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	stopped    bool
	mu         sync.RWMutex
}

// newHub creates a hub. Run must be started before clients connect.
func newHub(simulate simulateFunc, limiters *limiterStore, maxMessageSize int64, logger *zap.Logger) *Hub {
	if maxMessageSize <= 0 {
		maxMessageSize = defaultMaxMessageSize
	}
	return &Hub{
		logger:         logger,
		simulate:       simulate,
		limiters:       limiters,
		maxMessageSize: maxMessageSize,
		clients:        make(map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		done:           make(chan struct{}),
	}
}

// Run processes registrations until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
			h.logger.Info("websocket hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client connected",
				zap.String("client_id", client.id),
				zap.Int("clients", count),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.limiters.forget(client.id)
			h.logger.Info("websocket client disconnected",
				zap.String("client_id", client.id),
				zap.Int("clients", count),
			)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop disconnects every client. Safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// ServeWs upgrades the request and starts the client's pumps.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		http.Error(w, "websocket hub is not running", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		id:     uuid.NewString(),
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		ctx:    ctx,
		cancel: cancel,
	}

	select {
	case h.register <- client:
		go client.writePump()
		go client.readPump()
	case <-h.done:
		cancel()
		conn.Close()
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
		if err := c.handle(data); err != nil {
			return
		}
	}
}

// handle serves one inbound frame. A returned error ends the connection.
func (c *Client) handle(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return c.fail(fmt.Errorf("malformed message: %w", err))
	}
	if msg.Type != MessageSimulate {
		return c.fail(fmt.Errorf("unsupported message type %q", msg.Type))
	}
	if !c.hub.limiters.allow(c.id) {
		return c.fail(errRateLimited)
	}

	doc, err := input.Parse(msg.Data)
	if err != nil {
		return c.fail(err)
	}

	stats, err := c.hub.simulate(c.ctx, doc, func(res *game.Result) error {
		return c.queue(outbound{Type: MessageResult, Data: res})
	})
	if err != nil {
		if c.ctx.Err() != nil {
			return err
		}
		return c.fail(err)
	}

	c.hub.logger.Debug("websocket simulation complete",
		zap.String("client_id", c.id),
		zap.Int("games_played", stats.GamesPlayed),
	)
	return c.queue(outbound{Type: MessageDone, Data: stats})
}

func (c *Client) fail(err error) error {
	c.hub.logger.Debug("websocket request rejected", zap.String("client_id", c.id), zap.Error(err))
	return c.queue(outbound{Type: MessageError, Data: errorPayload{Message: err.Error()}})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.cancel()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("websocket write error", zap.String("client_id", c.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
