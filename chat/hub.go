package chat

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/databases"
	"github.com/lobbychat/lobby-chat-api/models"
)

// Hub owns every piece of shared chat state: the connected client set, the
// session registry, the message log, moderation state, and the account
// store. One mutex serializes the client set and the registry so the login
// sequence (online check, authenticate or register, admit) is atomic; the
// log and moderation state carry their own locks.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]bool
	sessions   *SessionRegistry
	history    *MessageLog
	moderation *Moderation
	accounts   databases.AccountDatabase
}

// NewHub creates a hub around the given account store.
func NewHub(accounts databases.AccountDatabase) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		sessions:   NewSessionRegistry(),
		history:    NewMessageLog(MaxHistory),
		moderation: NewModeration(),
		accounts:   accounts,
	}
}

// Moderation exposes the ban/timeout state for the connect-time ban check
// and the janitor.
func (h *Hub) Moderation() *Moderation {
	return h.moderation
}

// History exposes the message log.
func (h *Hub) History() *MessageLog {
	return h.history
}

// Register admits a connection into the client set, starts its pumps, and
// pushes the full history snapshot. History is sent to every connection
// regardless of auth status.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	h.mu.Unlock()
	zap.S().Infow("client connected", "origin", c.origin, "clients", count)

	// queue the snapshot before the pumps start so history is always the
	// first frame on the wire
	c.sendEvent(models.EventHistory, h.history.Snapshot())
	c.start()
}

// remove drops a connection from the client set and its session from the
// registry, then refreshes the presence list. Leave notices are
// deliberately suppressed so refresh churn stays quiet.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if !h.clients[c] && c.closed {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	c.closed = true
	sess, hadSession := h.sessions.Remove(c.id)
	users := h.sessions.ListActive()
	h.mu.Unlock()

	close(c.send)
	if hadSession {
		zap.S().Infow("client disconnected", "username", sess.Username, "origin", c.origin)
		h.Broadcast(models.EventUpdateUsers, users)
	}
}

// Broadcast delivers an event to every connected client. Delivery is
// best-effort: a client whose send buffer is full is dropped from the set
// and closed, in that order, so a stalled reader cannot wedge the hub.
func (h *Hub) Broadcast(event string, data interface{}) {
	ev, err := models.NewEvent(event, data)
	if err != nil {
		zap.S().Errorw("failed to marshal broadcast", "event", event, "error", err)
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		zap.S().Errorw("failed to marshal broadcast envelope", "event", event, "error", err)
		return
	}

	var stalled []*Client
	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			delete(h.clients, c)
			c.closed = true
			stalled = append(stalled, c)
		}
	}
	h.mu.Unlock()

	if len(stalled) == 0 {
		return
	}

	hadSession := false
	h.mu.Lock()
	for _, c := range stalled {
		if _, ok := h.sessions.Remove(c.id); ok {
			hadSession = true
		}
	}
	users := h.sessions.ListActive()
	h.mu.Unlock()

	for _, c := range stalled {
		zap.S().Warnw("dropping client with full send buffer", "origin", c.origin)
		close(c.send)
		if c.conn != nil {
			c.conn.Close()
		}
	}
	if hadSession {
		h.Broadcast(models.EventUpdateUsers, users)
	}
}

// findClientByUsername resolves a moderation target to its live
// connection. Callers must hold h.mu. Matching is exact-case, the same
// resolution the owner sees in the presence list.
func (h *Hub) findClientByUsername(username string) (*Client, models.Session, bool) {
	for c := range h.clients {
		if sess, ok := h.sessions.Get(c.id); ok && sess.Username == username {
			return c, sess, true
		}
	}
	return nil, models.Session{}, false
}

// Stats snapshots the counters served by the owner stats endpoint.
func (h *Hub) Stats() models.ServerStats {
	h.mu.Lock()
	active := h.sessions.Len()
	h.mu.Unlock()
	bans, timeouts := h.moderation.Counts()
	return models.ServerStats{
		ActiveSessions: active,
		HistoryLength:  h.history.Len(),
		BannedOrigins:  bans,
		ActiveTimeouts: timeouts,
	}
}
