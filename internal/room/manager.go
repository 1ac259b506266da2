package room

import (
	"log/slog"
	"math/rand"
	"sync"

	"github.com/ugaemi/eightpages-server/internal/ws"
)

// Manager manages all active rooms.
type Manager struct {
	rooms    map[string]*Room // code -> room
	byClient map[string]*Room // client ID -> room
	opts     Options
	seeds    *rand.Rand // per-room stalker seeds; guarded by mu
	mu       sync.RWMutex
}

// NewManager creates a new room manager. Every room it creates shares opts.
func NewManager(opts Options) *Manager {
	opts = opts.withDefaults()
	return &Manager{
		rooms:    make(map[string]*Room),
		byClient: make(map[string]*Room),
		opts:     opts,
		seeds:    rand.New(rand.NewSource(opts.Seed)),
	}
}

// CreateRoom creates a new room for client. A client owns at most one room;
// asking again returns the existing one.
func (m *Manager) CreateRoom(client *ws.Client) (*Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.byClient[client.ID]; ok {
		return r, false
	}

	existing := make(map[string]bool, len(m.rooms))
	for code := range m.rooms {
		existing[code] = true
	}

	code := GenerateCode(existing)
	opts := m.opts
	opts.Seed = m.seeds.Int63()
	r := NewRoom(code, client, opts)
	m.rooms[code] = r
	m.byClient[client.ID] = r

	slog.Info("room created", "code", code, "client", client.ID)
	return r, true
}

// GetRoom returns a room by its code.
func (m *Manager) GetRoom(code string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[code]
}

// FindRoomByClientID finds the room owned by a client.
func (m *Manager) FindRoomByClientID(clientID string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byClient[clientID]
}

// RemoveRoom closes and removes a room by its code.
func (m *Manager) RemoveRoom(code string) {
	m.mu.Lock()
	r, ok := m.rooms[code]
	if ok {
		delete(m.rooms, code)
		delete(m.byClient, r.ClientID)
	}
	m.mu.Unlock()

	if ok {
		r.Close()
		slog.Info("room removed", "code", code)
	}
}

// RoomCount returns the number of active rooms.
func (m *Manager) RoomCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// Shutdown closes every room.
func (m *Manager) Shutdown() {
	m.mu.RLock()
	codes := make([]string, 0, len(m.rooms))
	for code := range m.rooms {
		codes = append(codes, code)
	}
	m.mu.RUnlock()

	for _, code := range codes {
		m.RemoveRoom(code)
	}
}
