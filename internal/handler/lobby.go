package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/ugaemi/eightpages-server/internal/room"
	"github.com/ugaemi/eightpages-server/internal/store"
	"github.com/ugaemi/eightpages-server/internal/ws"
)

const historyTimeout = 3 * time.Second

// LobbyHandler handles room lifecycle and history messages.
type LobbyHandler struct {
	rm   *room.Manager
	runs store.RunStore
}

// NewLobbyHandler creates a new lobby handler.
func NewLobbyHandler(rm *room.Manager, runs store.RunStore) *LobbyHandler {
	return &LobbyHandler{
		rm:   rm,
		runs: runs,
	}
}

// HandleCreateRoom gives the client its room and replies with room_info.
func (h *LobbyHandler) HandleCreateRoom(client *ws.Client, _ ws.Message) {
	r, created := h.rm.CreateRoom(client)
	r.SendInfo()

	if created {
		slog.Info("client created room", "client", client.ID, "room", r.Code)
	}
}

// HandleLeaveRoom handles a client leaving its room.
func (h *LobbyHandler) HandleLeaveRoom(client *ws.Client, _ ws.Message) {
	h.removeRoom(client)
}

// HandleDisconnect handles client disconnection.
func (h *LobbyHandler) HandleDisconnect(client *ws.Client) {
	h.removeRoom(client)
}

func (h *LobbyHandler) removeRoom(client *ws.Client) {
	r := h.rm.FindRoomByClientID(client.ID)
	if r == nil {
		return
	}
	h.rm.RemoveRoom(r.Code)
	slog.Info("client left", "client", client.ID, "room", r.Code)
}

type runHistoryRequest struct {
	Limit int `json:"limit"`
}

type runHistoryResponse struct {
	Runs []store.Run `json:"runs"`
}

// HandleRunHistory replies with the most recent finished runs.
func (h *LobbyHandler) HandleRunHistory(client *ws.Client, msg ws.Message) {
	var req runHistoryRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			client.SendMessage(ws.NewErrorMessage("invalid run history request"))
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()

	runs, err := h.runs.Recent(ctx, req.Limit)
	if err != nil {
		slog.Error("failed to load run history", "client", client.ID, "error", err)
		client.SendMessage(ws.NewErrorMessage("run history unavailable"))
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}

	resp, _ := ws.NewMessage(ws.TypeRunHistory, runHistoryResponse{Runs: runs})
	client.SendMessage(resp)
}
