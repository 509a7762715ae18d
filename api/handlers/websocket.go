package handlers

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lobbychat/lobby-chat-api/chat"
	"github.com/lobbychat/lobby-chat-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// the chat frontend is served from the same process; browsers
		// connecting cross-origin are allowed like the source deployment
		return true
	},
}

// WebSocketHandler upgrades the connection and hands it to the chat hub.
// Banned origins are told so and closed before any login exchange; everyone
// else immediately receives the history snapshot via Register.
func (a *App) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade failed", "error", err)
		return
	}

	origin := clientOrigin(r)

	if a.Hub.Moderation().IsBanned(origin) {
		zap.S().Infow("rejected banned origin", "origin", origin)
		if ev, evErr := models.NewEvent(models.EventLoginError, chat.BannedNotice); evErr == nil {
			if payload, mErr := json.Marshal(ev); mErr == nil {
				_ = conn.WriteMessage(websocket.TextMessage, payload)
			}
		}
		conn.Close()
		return
	}

	client := chat.NewClient(a.Hub, conn, origin)
	a.Hub.Register(client)
}

// clientOrigin extracts the network address used as the ban key.
func clientOrigin(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
