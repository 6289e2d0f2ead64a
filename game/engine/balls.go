package engine

import (
	"sync"
	"time"
)

// DefaultBallLifetime is how long a thrown ball stays in the live set.
const DefaultBallLifetime = 10 * time.Second

// BallRegistry tracks in-flight balls for one game scope. Each spawn
// schedules exactly one expiry via time.AfterFunc; an expiry firing after
// the ball was already removed, or after Stop, does nothing.
type BallRegistry struct {
	mu       sync.Mutex
	lifetime time.Duration
	balls    []Ball
	timers   map[string]*time.Timer
}

// NewBallRegistry creates a ball registry with the given lifetime. A
// non-positive lifetime falls back to DefaultBallLifetime.
func NewBallRegistry(lifetime time.Duration) *BallRegistry {
	if lifetime <= 0 {
		lifetime = DefaultBallLifetime
	}
	return &BallRegistry{
		lifetime: lifetime,
		timers:   make(map[string]*time.Timer),
	}
}

// Spawn creates a ball with a fresh ID and timestamp, appends it to the live
// set, and schedules its removal after the configured lifetime.
func (b *BallRegistry) Spawn(pos, vel Vector3) *Ball {
	b.mu.Lock()
	defer b.mu.Unlock()

	ball := Ball{
		ID:        NewID(),
		Position:  pos,
		Velocity:  vel,
		Timestamp: time.Now().UnixMilli(),
	}
	b.balls = append(b.balls, ball)
	b.timers[ball.ID] = time.AfterFunc(b.lifetime, func() { b.Expire(ball.ID) })
	return &ball
}

// Expire removes the ball if it is still live. Unknown or already-removed
// IDs are ignored.
func (b *BallRegistry) Expire(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.timers, id)
	for i, ball := range b.balls {
		if ball.ID == id {
			b.balls = append(b.balls[:i], b.balls[i+1:]...)
			return
		}
	}
}

// Snapshot returns the currently live balls, oldest first. It only seeds
// newly joining clients, so being stale by up to one lifetime is fine.
func (b *BallRegistry) Snapshot() []Ball {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Ball, len(b.balls))
	copy(out, b.balls)
	return out
}

// Count returns the number of live balls.
func (b *BallRegistry) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.balls)
}

// Stop cancels all outstanding expiry timers and clears the live set. A
// timer that already fired finds nothing to remove.
func (b *BallRegistry) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	b.balls = nil
}
