package chat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxMessageBytes caps inbound frames. Sized for a 1MB encoded image
	// payload plus envelope overhead.
	maxMessageBytes = 1 << 20
)

// Client is the middleman between one websocket connection and the hub.
// Its connection id keys the session registry; origin is the network
// address used as the ban key.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	id     string
	origin string

	// closed is guarded by hub.mu and stops the send channel from being
	// closed twice when a forced disconnect races the read pump.
	closed bool
}

// NewClient wraps an upgraded connection. The send channel is buffered so
// broadcasts never block on a slow reader.
func NewClient(hub *Hub, conn *websocket.Conn, origin string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		id:     uuid.NewString(),
		origin: origin,
	}
}

func (c *Client) start() {
	if c.conn == nil {
		return
	}
	go c.writePump()
	go c.readPump()
}

// sendEvent queues an event for this client only. A full buffer drops the
// event; delivery is best-effort everywhere. The closed check runs under
// the hub lock: a reply racing a forced drop must land nowhere, never on
// a closed channel.
func (c *Client) sendEvent(event string, data interface{}) {
	ev, err := models.NewEvent(event, data)
	if err != nil {
		zap.S().Errorw("failed to marshal event", "event", event, "error", err)
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		zap.S().Errorw("failed to marshal event envelope", "event", event, "error", err)
		return
	}

	c.hub.mu.Lock()
	defer c.hub.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- payload:
	default:
		zap.S().Warnw("send buffer full, dropping event", "event", event, "origin", c.origin)
	}
}

// disconnect queues an explanatory login_error event and tears the
// connection down through the hub. Closing the send channel lets the
// write pump flush the queued notice before it emits the close frame, so
// a ban or kick target always learns why.
func (c *Client) disconnect(reason string) {
	c.sendEvent(models.EventLoginError, reason)
	c.hub.remove(c)
}

func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.S().Debugw("read error", "origin", c.origin, "error", err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			zap.S().Debugw("invalid event payload", "origin", c.origin, "error", err)
			continue
		}
		c.handleEvent(ev)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
