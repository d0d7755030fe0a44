// Package world holds the tile maps: their bounds, blocked tiles and exits.
// Maps are immutable once loaded and looked up by id through a Registry.
package world

import (
	"fmt"
	"sort"
)

// Position is a tile-grid coordinate.
type Position struct {
	X int
	Y int
}

// Add returns p shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns the grid distance between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Exit sends the player to Destination on map Target.
type Exit struct {
	Target      string
	Destination Position
}

// MapDescriptor describes one map.
type MapDescriptor struct {
	ID     string
	Image  string
	BGM    string
	Width  int
	Height int

	Blocked map[Position]struct{}
	Exits   map[Position]Exit
}

// InBounds reports whether p lies in [0,Width)x[0,Height).
func (m *MapDescriptor) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// IsBlocked reports whether p is a wall tile.
func (m *MapDescriptor) IsBlocked(p Position) bool {
	_, ok := m.Blocked[p]
	return ok
}

// Walkable reports whether p is inside the map and not a wall. NPC occupancy
// is not a property of the map and is checked by the caller.
func (m *MapDescriptor) Walkable(p Position) bool {
	return m.InBounds(p) && !m.IsBlocked(p)
}

// ExitAt returns the exit on tile p, if any.
func (m *MapDescriptor) ExitAt(p Position) (Exit, bool) {
	e, ok := m.Exits[p]
	return e, ok
}

// BlockedTiles returns the wall tiles in row-major order.
func (m *MapDescriptor) BlockedTiles() []Position {
	out := make([]Position, 0, len(m.Blocked))
	for p := range m.Blocked {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

// ExitTiles returns the exit tiles in row-major order.
func (m *MapDescriptor) ExitTiles() []Position {
	out := make([]Position, 0, len(m.Exits))
	for p := range m.Exits {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

// Registry indexes maps by id.
type Registry struct {
	maps map[string]*MapDescriptor
}

// NewRegistry builds a registry. Duplicate or empty ids are an error.
func NewRegistry(maps ...*MapDescriptor) (*Registry, error) {
	r := &Registry{maps: make(map[string]*MapDescriptor, len(maps))}
	for _, m := range maps {
		if m.ID == "" {
			return nil, fmt.Errorf("map with empty id")
		}
		if _, exists := r.maps[m.ID]; exists {
			return nil, fmt.Errorf("duplicate map id: %q", m.ID)
		}
		r.maps[m.ID] = m
	}
	return r, nil
}

// Get returns the map with the given id.
func (r *Registry) Get(id string) (*MapDescriptor, bool) {
	m, ok := r.maps[id]
	return m, ok
}

// Has reports whether id names a loaded map.
func (r *Registry) Has(id string) bool {
	_, ok := r.maps[id]
	return ok
}

// IDs returns all map ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.maps))
	for id := range r.maps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of maps.
func (r *Registry) Len() int {
	return len(r.maps)
}

// CheckExits returns one error per exit whose target map is unknown or whose
// destination lies outside the target map. These are not load failures: a
// transition through such an exit is aborted at runtime.
func (r *Registry) CheckExits() []error {
	var problems []error
	for _, id := range r.IDs() {
		m := r.maps[id]
		for _, p := range m.ExitTiles() {
			e := m.Exits[p]
			target, ok := r.maps[e.Target]
			if !ok {
				problems = append(problems, fmt.Errorf("map %q: exit at %s targets unknown map %q", id, p, e.Target))
				continue
			}
			if !target.InBounds(e.Destination) {
				problems = append(problems, fmt.Errorf("map %q: exit at %s lands outside map %q at %s", id, p, e.Target, e.Destination))
			}
		}
	}
	return problems
}
