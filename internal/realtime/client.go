// Package realtime maintains the single duplex connection to the giveaway
// backend and dispatches named server events to registered handlers.
//
// The client never reconnects on its own; page-level polling is the fallback
// when the push channel is gone.
package realtime

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rvalverde/wheelhouse/internal/logging"
)

const (
	handshakeTimeout = 20 * time.Second
	writeTimeout     = 10 * time.Second
)

// Handler receives the raw payload of one event occurrence.
type Handler func(data json.RawMessage)

type subscriber struct {
	id string
	fn Handler
}

// Client is the websocket client. Construct one per application with New and
// share it; Connect is idempotent and all methods are safe for concurrent
// use.
type Client struct {
	wsURL    string
	clientID string
	dialer   *websocket.Dialer
	log      logging.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	handlers  map[string][]subscriber
}

// New builds a client for the backend at baseURL (http/https; the scheme is
// rewritten to ws/wss and the /socket path appended).
func New(baseURL string, log logging.Logger) *Client {
	return &Client{
		wsURL:    websocketURL(baseURL),
		clientID: uuid.New().String(),
		dialer:   &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		log:      log,
		handlers: make(map[string][]subscriber),
	}
}

func websocketURL(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket"
	return u.String()
}

// Connect opens the connection and starts the read loop. It no-ops when a
// live connection already exists. Dial failures are returned, not retried.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return nil
	}

	conn, _, err := c.dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		c.log.Warn(ctx, "socket connect failed", "url", c.wsURL, "err", err.Error())
		return err
	}

	c.conn = conn
	c.connected = true
	c.log.Info(ctx, "socket connected", "url", c.wsURL, "client_id", c.clientID)

	go c.readLoop(conn)
	return nil
}

// Connected reports whether a live connection exists.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Close tears the connection down. Registered handlers stay registered.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.connected = false
	return err
}

// JoinWheelRoom asks the server for wheel-room events. Best effort: a silent
// no-op when not connected, no queueing.
func (c *Client) JoinWheelRoom() {
	c.emit(emitJoinWheel)
}

// JoinAdminRoom asks the server for admin-room events. Best effort like
// JoinWheelRoom.
func (c *Client) JoinAdminRoom() {
	c.emit(emitJoinAdmin)
}

func (c *Client) emit(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected || c.conn == nil {
		return
	}

	payload, _ := json.Marshal(joinPayload{ClientID: c.clientID})
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.conn.WriteJSON(message{Event: event, Data: payload}); err != nil {
		c.log.Warn(context.Background(), "socket emit failed", "event", event, "err", err.Error())
	}
}

// On registers a handler for a named event and returns its subscription id.
// Every registered handler fires on each occurrence, in registration order.
func (c *Client) On(event string, fn Handler) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := uuid.New().String()
	c.handlers[event] = append(c.handlers[event], subscriber{id: id, fn: fn})
	return id
}

// RemoveListener detaches one handler by the id returned from On.
func (c *Client) RemoveListener(event, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := c.handlers[event]
	for i, s := range subs {
		if s.id == id {
			c.handlers[event] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// RemoveAllListeners detaches every handler for the event.
func (c *Client) RemoveAllListeners(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

func (c *Client) readLoop(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if c.conn == conn {
				c.conn = nil
				c.connected = false
			}
			c.mu.Unlock()

			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn(ctx, "socket read failed", "err", err.Error())
			} else {
				c.log.Info(ctx, "socket disconnected")
			}
			return
		}

		var msg message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.log.Warn(ctx, "malformed socket frame", "err", err.Error())
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg message) {
	c.mu.Lock()
	subs := make([]subscriber, len(c.handlers[msg.Event]))
	copy(subs, c.handlers[msg.Event])
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(msg.Data)
	}
}

// OnCountdownUpdate registers a typed handler for countdown-update frames.
// Malformed payloads are dropped.
func (c *Client) OnCountdownUpdate(fn func(CountdownUpdate)) string {
	return c.On(EventCountdownUpdate, func(data json.RawMessage) {
		var upd CountdownUpdate
		if err := json.Unmarshal(data, &upd); err != nil {
			c.log.Warn(context.Background(), "bad countdown-update payload", "err", err.Error())
			return
		}
		fn(upd)
	})
}

// OnCountdownExpired registers a handler for countdown-expired.
func (c *Client) OnCountdownExpired(fn func()) string {
	return c.On(EventCountdownExpired, func(json.RawMessage) { fn() })
}

// OnGameSettingsUpdated registers a handler receiving the raw updated
// settings document.
func (c *Client) OnGameSettingsUpdated(fn func(json.RawMessage)) string {
	return c.On(EventGameSettingsUpdated, func(data json.RawMessage) { fn(data) })
}

// OnWinnerDeclared registers a typed handler for winner-declared frames.
func (c *Client) OnWinnerDeclared(fn func(WinnerDeclared)) string {
	return c.On(EventWinnerDeclared, func(data json.RawMessage) {
		var w WinnerDeclared
		if err := json.Unmarshal(data, &w); err != nil {
			c.log.Warn(context.Background(), "bad winner-declared payload", "err", err.Error())
			return
		}
		fn(w)
	})
}

// OnPasswordChangedLogout registers a handler for the forced-logout push.
func (c *Client) OnPasswordChangedLogout(fn func()) string {
	return c.On(EventPasswordChangedLogout, func(json.RawMessage) { fn() })
}
