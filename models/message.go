package models

// Message kinds carried in ChatMessage.Type.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// ChatMessage is one entry in the chat history. Image messages reuse the
// Text field for the encoded payload.
type ChatMessage struct {
	ID   string `json:"id"`
	User string `json:"user"`
	Role string `json:"role"`
	Type string `json:"type"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// SystemMessage is the payload of a system_message broadcast.
type SystemMessage struct {
	Text string `json:"text"`
}
