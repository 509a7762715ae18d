package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/databases"
	"github.com/lobbychat/lobby-chat-api/models"
)

// Login failure reasons surfaced on the login_error channel.
const (
	errCredentialsRequired = "Username and password required."
	errAlreadyLoggedIn     = "User is already logged in."
	errIncorrectPassword   = "Incorrect password."
	errReservedName        = "Reserved name."

	// BannedNotice is emitted before closing a connection from a banned
	// origin, at connect time and on an owner ban.
	BannedNotice = "You are banned from this server."
	kickedNotice = "You have been kicked by the owner."
	bannedNotice = "You have been banned by the owner."
)

func (c *Client) handleEvent(ev models.Event) {
	switch ev.Event {
	case models.EventAttemptLogin:
		var req models.LoginRequest
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			return
		}
		c.handleLogin(req)
	case models.EventChatMessage:
		var text string
		if err := json.Unmarshal(ev.Data, &text); err != nil {
			return
		}
		c.handleChat(text, models.MessageTypeText)
	case models.EventImageMessage:
		var payload string
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			return
		}
		c.handleChat(payload, models.MessageTypeImage)
	case models.EventDeleteMessage:
		var id string
		if err := json.Unmarshal(ev.Data, &id); err != nil {
			return
		}
		c.handleDeleteMessage(id)
	case models.EventBanUser:
		var target string
		if err := json.Unmarshal(ev.Data, &target); err != nil {
			return
		}
		c.handleBanUser(target)
	case models.EventKickUser:
		var target string
		if err := json.Unmarshal(ev.Data, &target); err != nil {
			return
		}
		c.handleKickUser(target)
	case models.EventTimeoutUser:
		var req models.TimeoutRequest
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			return
		}
		c.handleTimeoutUser(req)
	default:
		zap.S().Debugw("unknown event", "event", ev.Event, "origin", c.origin)
	}
}

// handleLogin runs the single atomic login sequence: validate, online
// check, authenticate-or-register, admit. The hub lock is held across the
// whole sequence so two simultaneous logins cannot race past the online
// check. A rejected login never tears the connection down.
func (c *Client) handleLogin(req models.LoginRequest) {
	cleanName := strings.TrimSpace(req.Username)
	id := strings.ToLower(cleanName)

	if cleanName == "" || req.Password == "" {
		c.sendEvent(models.EventLoginError, errCredentialsRequired)
		return
	}

	h := c.hub
	h.mu.Lock()
	if h.sessions.IsOnline(id) {
		h.mu.Unlock()
		c.sendEvent(models.EventLoginError, errAlreadyLoggedIn)
		return
	}

	var role string
	var err error
	registered := false
	if h.accounts.Exists(id) {
		role, err = h.accounts.Authenticate(id, req.Password)
		if err != nil {
			h.mu.Unlock()
			c.sendEvent(models.EventLoginError, errIncorrectPassword)
			return
		}
	} else {
		role, err = h.accounts.Register(id, req.Password)
		if err != nil {
			h.mu.Unlock()
			if errors.Is(err, databases.ErrReservedName) {
				c.sendEvent(models.EventLoginError, errReservedName)
			} else {
				c.sendEvent(models.EventLoginError, errIncorrectPassword)
				zap.S().Errorw("registration failed", "username", id, "error", err)
			}
			return
		}
		registered = true
	}

	h.sessions.Admit(c.id, models.Session{Username: cleanName, Role: role, Origin: c.origin})
	users := h.sessions.ListActive()
	h.mu.Unlock()

	if registered {
		c.sendEvent(models.EventLoginSuccessMsg, "Account created! Logging in...")
	}
	c.sendEvent(models.EventLoginSuccess, models.LoginSuccess{Username: cleanName, Role: role})
	zap.S().Infow("login", "username", cleanName, "role", role, "registered", registered)

	h.Broadcast(models.EventSystemMessage, models.SystemMessage{Text: cleanName + " has joined the chat."})
	h.Broadcast(models.EventUpdateUsers, users)
}

// handleChat appends a text or image submission to the log and broadcasts
// it, sender included. Unauthenticated connections are ignored silently; a
// timed-out sender is told how long is left on either kind.
func (c *Client) handleChat(payload, kind string) {
	h := c.hub
	h.mu.Lock()
	sess, ok := h.sessions.Get(c.id)
	h.mu.Unlock()
	if !ok {
		return
	}

	if left := h.moderation.RemainingSeconds(sess.Username); left > 0 {
		c.sendEvent(models.EventLoginSuccessMsg, fmt.Sprintf("You are timed out for %ds.", left))
		return
	}

	msg := models.ChatMessage{
		ID:   uuid.NewString(),
		User: sess.Username,
		Role: sess.Role,
		Type: kind,
		Text: payload,
		Time: time.Now().Format("3:04 PM"),
	}
	h.history.Append(msg)
	h.Broadcast(models.EventChatMessage, msg)
}

// ownerSession returns the caller's session when it holds the owner role.
// Non-owner callers get ok=false and commands fall through silently: no
// error is emitted back, so probing reveals nothing.
func (c *Client) ownerSession() (models.Session, bool) {
	h := c.hub
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions.Get(c.id)
	if !ok || sess.Role != models.RoleOwner {
		return models.Session{}, false
	}
	return sess, true
}

func (c *Client) handleDeleteMessage(id string) {
	sess, ok := c.ownerSession()
	if !ok {
		return
	}
	if !c.hub.history.DeleteByID(id) {
		return
	}
	zap.S().Infow("message deleted", "by", sess.Username, "id", id)
	c.hub.Broadcast(models.EventMessageDeleted, id)
	c.hub.Broadcast(models.EventHistory, c.hub.history.Snapshot())
}

// handleBanUser bans the target's origin and force-closes their
// connection. A target with no live session cannot be resolved to an
// origin, so the command is a no-op.
func (c *Client) handleBanUser(target string) {
	sess, ok := c.ownerSession()
	if !ok {
		return
	}

	h := c.hub
	h.mu.Lock()
	targetClient, targetSess, found := h.findClientByUsername(target)
	h.mu.Unlock()
	if !found {
		return
	}

	h.moderation.Ban(targetSess.Origin)
	zap.S().Infow("ban", "by", sess.Username, "target", target, "origin", targetSess.Origin)
	targetClient.disconnect(bannedNotice)
	h.Broadcast(models.EventSystemMessage, models.SystemMessage{Text: target + " has been banned."})
}

// handleKickUser force-closes the target's connection without touching the
// ban set; nothing stops an immediate reconnect.
func (c *Client) handleKickUser(target string) {
	sess, ok := c.ownerSession()
	if !ok {
		return
	}

	h := c.hub
	h.mu.Lock()
	targetClient, _, found := h.findClientByUsername(target)
	h.mu.Unlock()
	if !found {
		return
	}

	zap.S().Infow("kick", "by", sess.Username, "target", target)
	targetClient.disconnect(kickedNotice)
	h.Broadcast(models.EventSystemMessage, models.SystemMessage{Text: target + " has been kicked."})
}

// handleTimeoutUser mutes the target whether or not they are online,
// overwriting any earlier expiry.
func (c *Client) handleTimeoutUser(req models.TimeoutRequest) {
	sess, ok := c.ownerSession()
	if !ok {
		return
	}

	c.hub.moderation.SetTimeout(req.Username, req.Duration)
	zap.S().Infow("timeout", "by", sess.Username, "target", req.Username, "seconds", req.Duration)
	c.hub.Broadcast(models.EventSystemMessage, models.SystemMessage{
		Text: fmt.Sprintf("%s has been muted for %d seconds.", req.Username, req.Duration),
	})
}
