package models

import "encoding/json"

// Client -> server event names.
const (
	EventAttemptLogin  = "attempt_login"
	EventChatMessage   = "chat_message"
	EventImageMessage  = "image_message"
	EventDeleteMessage = "delete_message"
	EventBanUser       = "ban_user"
	EventKickUser      = "kick_user"
	EventTimeoutUser   = "timeout_user"
)

// Server -> client event names. chat_message is shared with the inbound side.
const (
	EventHistory         = "history"
	EventLoginError      = "login_error"
	EventLoginSuccessMsg = "login_success_msg"
	EventLoginSuccess    = "login_success"
	EventSystemMessage   = "system_message"
	EventUpdateUsers     = "update_users"
	EventMessageDeleted  = "message_deleted"
)

// Event is the JSON envelope exchanged over the websocket in both
// directions. Data holds the event-specific payload.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewEvent wraps a payload in an Event envelope. Marshal errors are
// returned so callers can drop malformed payloads instead of sending
// half an envelope.
func NewEvent(name string, data interface{}) (Event, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Event: name, Data: b}, nil
}

// LoginRequest is the attempt_login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginSuccess is the login_success payload.
type LoginSuccess struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// TimeoutRequest is the timeout_user payload. Duration is in seconds.
type TimeoutRequest struct {
	Username string `json:"username"`
	Duration int    `json:"duration"`
}
