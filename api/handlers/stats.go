package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lobbychat/lobby-chat-api/chat"
	"github.com/lobbychat/lobby-chat-api/config"
)

// Stats exported for testing purposes
type Stats struct {
	Hub *chat.Hub
}

// StatsHandler returns live server counters for the owner
func (s Stats) StatsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(s.Hub.Stats())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
