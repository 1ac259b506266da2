package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/eightpages-server/internal/game"
	"github.com/ugaemi/eightpages-server/internal/store"
)

func TestManager_CreateRoom(t *testing.T) {
	m := NewManager(Options{Tuning: game.DefaultTuning(), Runs: store.NewMemoryStore(10)})
	c1 := mockClient("client1")
	c2 := mockClient("client2")

	r1, created := m.CreateRoom(c1)
	require.True(t, created)
	assert.Len(t, r1.Code, codeLength)

	again, created := m.CreateRoom(c1)
	assert.False(t, created, "one room per client")
	assert.Same(t, r1, again)

	r2, created := m.CreateRoom(c2)
	require.True(t, created)
	assert.NotEqual(t, r1.Code, r2.Code)

	assert.Equal(t, 2, m.RoomCount())
	assert.Same(t, r1, m.GetRoom(r1.Code))
	assert.Same(t, r2, m.FindRoomByClientID("client2"))
}

func TestManager_RemoveRoom(t *testing.T) {
	runs := store.NewMemoryStore(10)
	m := NewManager(Options{Tuning: game.DefaultTuning(), Runs: runs})
	c := mockClient("client1")
	r, _ := m.CreateRoom(c)
	require.True(t, r.Start())

	m.RemoveRoom(r.Code)

	assert.Nil(t, m.GetRoom(r.Code))
	assert.Nil(t, m.FindRoomByClientID("client1"))
	assert.Equal(t, 0, m.RoomCount())
	assert.Equal(t, game.StateMenu, r.State(), "running session is closed")

	m.RemoveRoom(r.Code)
}

func TestManager_Shutdown(t *testing.T) {
	m := NewManager(Options{Tuning: game.DefaultTuning()})
	for _, id := range []string{"a", "b", "c"} {
		m.CreateRoom(mockClient(id))
	}
	m.Shutdown()
	assert.Equal(t, 0, m.RoomCount())
}

func TestGenerateCode(t *testing.T) {
	existing := map[string]bool{}
	for i := 0; i < 200; i++ {
		code := GenerateCode(existing)
		require.Len(t, code, codeLength)
		assert.False(t, existing[code])
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "O")
		existing[code] = true
	}
}

func TestManager_RoomsGetDistinctStalkerSeeds(t *testing.T) {
	tun := game.DefaultTuning()
	tun.BaseTeleportCooldown = 0.01
	tun.MinTeleportCooldown = 0.01
	m := NewManager(Options{Tuning: tun, Seed: 7})

	// firstTeleport creates a room, ticks it once and removes it again, so
	// both rooms are created on an otherwise empty manager.
	firstTeleport := func(clientID string) game.Vec3 {
		r, created := m.CreateRoom(mockClient(clientID))
		require.True(t, created)
		defer m.RemoveRoom(r.Code)

		stopCh, ok := r.begin()
		require.True(t, ok)
		require.True(t, r.tick(stopCh))
		pos := r.session.StalkerPosition()
		require.NotEqual(t, game.StalkerStart, pos, "stalker teleported")
		return pos
	}

	first := firstTeleport("client1")
	second := firstTeleport("client2")
	assert.NotEqual(t, first, second)
}
