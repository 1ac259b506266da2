package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/ugaemi/eightpages-server/internal/game"
	"github.com/ugaemi/eightpages-server/internal/room"
	"github.com/ugaemi/eightpages-server/internal/ws"
)

// GameplayHandler handles session control and in-game messages.
type GameplayHandler struct {
	rm *room.Manager
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(rm *room.Manager) *GameplayHandler {
	return &GameplayHandler{rm: rm}
}

// HandleStart starts a run from the menu or an end screen.
func (h *GameplayHandler) HandleStart(client *ws.Client, _ ws.Message) {
	r := h.findRoom(client)
	if r == nil {
		return
	}
	if !r.Start() {
		client.SendMessage(ws.NewErrorMessage("session already running"))
	}
}

// HandleReturnToMenu abandons the current run or leaves an end screen.
func (h *GameplayHandler) HandleReturnToMenu(client *ws.Client, _ ws.Message) {
	r := h.findRoom(client)
	if r == nil {
		return
	}
	r.ReturnToMenu()
}

type flashlightResponse struct {
	On bool `json:"on"`
}

// HandleToggleFlashlight flips the flashlight and echoes its new state.
func (h *GameplayHandler) HandleToggleFlashlight(client *ws.Client, _ ws.Message) {
	r := h.findRoom(client)
	if r == nil {
		return
	}
	on := r.ToggleFlashlight()
	resp, _ := ws.NewMessage(ws.TypeToggleFlashlight, flashlightResponse{On: on})
	client.SendMessage(resp)
}

// HandleInput stores the latest input for the next tick.
func (h *GameplayHandler) HandleInput(client *ws.Client, msg ws.Message) {
	var in game.Input
	if err := json.Unmarshal(msg.Data, &in); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid input data"))
		return
	}

	r := h.findRoom(client)
	if r == nil {
		return
	}
	if !r.State().Running() {
		return
	}

	r.SetInput(in.Clamped())
	slog.Debug("input received", "room", r.Code, "forward", in.Forward, "strafe", in.Strafe)
}

func (h *GameplayHandler) findRoom(client *ws.Client) *room.Room {
	r := h.rm.FindRoomByClientID(client.ID)
	if r == nil {
		client.SendMessage(ws.NewErrorMessage("not in a room"))
	}
	return r
}
