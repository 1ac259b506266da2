package ws

import "encoding/json"

// Message represents a WebSocket message with type-based routing.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message types - Lobby
const (
	TypeCreateRoom = "create_room"
	TypeLeaveRoom  = "leave_room"
	TypeRunHistory = "run_history"
)

// Message types - Session control
const (
	TypeStart            = "start"
	TypeReturnToMenu     = "return_to_menu"
	TypeToggleFlashlight = "toggle_flashlight"
)

// Message types - Gameplay
const (
	TypeInput     = "input"
	TypeGameState = "game_state"
	TypeEvent     = "event"
	TypeNarration = "message"
)

// Message types - System
const (
	TypeError    = "error"
	TypeRoomInfo = "room_info"
)

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Message string `json:"message"`
}

// NewErrorMessage creates a Message with an error payload.
func NewErrorMessage(msg string) Message {
	data, _ := json.Marshal(ErrorMessage{Message: msg})
	return Message{Type: TypeError, Data: data}
}

// NewMessage creates a Message with a typed payload.
func NewMessage(msgType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: msgType, Data: data}, nil
}
