package engine

import (
	"sort"
	"sync"
)

// Registry tracks the players of one game scope. It is the single source of
// truth for who is connected and where, within that scope. State lives for
// the process lifetime only; there is no persistence.
type Registry struct {
	mu      sync.RWMutex
	players map[string]*Player
	nextSeq uint64
}

// NewRegistry creates an empty player registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[string]*Player)}
}

// Register inserts a player record. An existing entry with the same ID is
// overwritten silently; the ID generator makes that effectively unreachable
// for distinct connections.
func (r *Registry) Register(p *Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.seq = r.nextSeq
	r.nextSeq++
	r.players[p.ID] = p
}

// UpdateTransform overwrites the transform fields of the player with the
// given ID and reports whether the player was present. A missing ID is not
// an error: an update racing a disconnect is simply dropped.
func (r *Registry) UpdateTransform(id string, t Transform) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return false
	}
	p.Position = t.Position
	p.Rotation = t.Rotation
	p.Velocity = t.Velocity
	p.OnFloor = t.OnFloor
	return true
}

// Get returns a copy of the player with the given ID.
func (r *Registry) Get(id string) (*Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return nil, false
	}
	cp := *p
	return &cp, true
}

// Remove deletes the player if present; removing an unknown ID is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// Snapshot returns copies of all current players in join order, optionally
// excluding one ID (used so a joining connection's init payload lists only
// the other players). Pass "" to exclude nobody.
func (r *Registry) Snapshot(excludeID string) []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if p.ID == excludeID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Count returns the number of registered players.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
