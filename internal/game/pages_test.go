package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(PageLayout[:], CollectRadius)
}

func TestNewRegistry_AllActive(t *testing.T) {
	r := newTestRegistry()
	assert.Len(t, r.Active(), TotalPages)
	assert.Equal(t, 0, r.Collected())
	assert.Equal(t, TotalPages, r.Total())
}

func TestRegistry_Collect(t *testing.T) {
	page3 := PageLayout[3]

	tests := []struct {
		name      string
		pos       Vec3
		wantPages []int
	}{
		{"standing on page", Vec3{X: page3.X, Y: EyeHeight, Z: page3.Z}, []int{3}},
		{"just inside radius", Vec3{X: page3.X + 2.3, Y: PageHeight, Z: page3.Z}, []int{3}},
		{"exactly at radius", Vec3{X: page3.X + CollectRadius, Y: PageHeight, Z: page3.Z}, nil},
		{"far away", PlayerStart, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			events := r.Collect(tt.pos)

			var got []int
			for _, ev := range events {
				got = append(got, ev.PageID)
			}
			assert.Equal(t, tt.wantPages, got)
		})
	}
}

func TestRegistry_Collect_Idempotent(t *testing.T) {
	r := newTestRegistry()
	pos := PageLayout[0]

	require.Len(t, r.Collect(pos), 1)
	for i := 0; i < 10; i++ {
		assert.Empty(t, r.Collect(pos), "collected page must never fire again")
	}

	assert.Equal(t, 1, r.Collected())
	for _, p := range r.Active() {
		assert.NotEqual(t, 0, p.ID)
	}
}

func TestRegistry_Collect_TwoPagesSameTick(t *testing.T) {
	r := NewRegistry([]Vec3{{X: 1}, {X: -1}, {X: 50}}, CollectRadius)

	events := r.Collect(Vec3{})
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].PageID)
	assert.Equal(t, 1, events[1].PageID)
	assert.Equal(t, 2, r.Collected())
}

func TestRegistry_ProgressMatchesInactiveCount(t *testing.T) {
	r := newTestRegistry()
	for i, pos := range PageLayout {
		r.Collect(pos)
		assert.Equal(t, i+1, r.Collected())
		assert.Equal(t, r.Total()-len(r.Active()), r.Collected())
	}
	assert.Empty(t, r.Active())
}

func TestRegistry_PagesReturnsCopy(t *testing.T) {
	r := newTestRegistry()
	pages := r.Pages()
	pages[0].Active = false

	assert.Len(t, r.Active(), TotalPages)
}
