package game

// PageLayout is the fixed forest placement of the eight pages.
var PageLayout = [TotalPages]Vec3{
	{X: 40, Y: PageHeight, Z: 40},
	{X: -60, Y: PageHeight, Z: 30},
	{X: 25, Y: PageHeight, Z: -80},
	{X: -85, Y: PageHeight, Z: -50},
	{X: 80, Y: PageHeight, Z: -30},
	{X: 20, Y: PageHeight, Z: 90},
	{X: -40, Y: PageHeight, Z: -40},
	{X: 70, Y: PageHeight, Z: 70},
}

// Page is a collectible. Position never changes after creation.
type Page struct {
	ID       int  `json:"id"`
	Position Vec3 `json:"position"`
	Active   bool `json:"active"`
}

// CollectEvent reports a page picked up this tick.
type CollectEvent struct {
	PageID   int  `json:"page_id"`
	Position Vec3 `json:"position"`
}

// Registry tracks which pages are still in the forest.
type Registry struct {
	pages  []Page
	radius float64
}

// NewRegistry creates a registry with every page of layout active.
func NewRegistry(layout []Vec3, radius float64) *Registry {
	pages := make([]Page, len(layout))
	for i, pos := range layout {
		pages[i] = Page{ID: i, Position: pos, Active: true}
	}
	return &Registry{pages: pages, radius: radius}
}

// Collect deactivates every active page within the collection radius of pos
// and returns one event per page, in ID order.
func (r *Registry) Collect(pos Vec3) []CollectEvent {
	var events []CollectEvent
	for i := range r.pages {
		p := &r.pages[i]
		if !p.Active {
			continue
		}
		if Distance(pos, p.Position) < r.radius {
			p.Active = false
			events = append(events, CollectEvent{PageID: p.ID, Position: p.Position})
		}
	}
	return events
}

// Active returns the pages not yet collected, in ID order.
func (r *Registry) Active() []Page {
	active := make([]Page, 0, len(r.pages))
	for _, p := range r.pages {
		if p.Active {
			active = append(active, p)
		}
	}
	return active
}

// Pages returns a copy of every page, collected or not.
func (r *Registry) Pages() []Page {
	out := make([]Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// Collected returns how many pages have been picked up.
func (r *Registry) Collected() int {
	n := 0
	for _, p := range r.pages {
		if !p.Active {
			n++
		}
	}
	return n
}

// Total returns the number of pages in the layout.
func (r *Registry) Total() int {
	return len(r.pages)
}
