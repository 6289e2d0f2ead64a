// Package engine holds the relay's core state: player registries, projectile
// registries, and color palettes.
//
// The engine package implements:
//   - Player records with client-reported transforms
//   - Thread-safe per-game player registries
//   - Short-lived ball (projectile) tracking with automatic expiry
//   - Deterministic round-robin color assignment
//   - Opaque identifier generation
//
// Trust Model:
//
// The relay performs no physics validation. Transforms arrive from clients
// and are stored and rebroadcast verbatim; a client can report any position
// it likes. This is a deliberate property of the protocol, not an oversight.
//
// Concurrency:
//
// Every WebSocket connection runs its own reader goroutine, so all registries
// and counters in this package guard their state with mutexes. Snapshots
// return copies; callers never share memory with registry internals.
//
// Usage:
//
//	players := engine.NewRegistry()
//	players.Register(&engine.Player{ID: engine.NewID()})
//
//	balls := engine.NewBallRegistry(10 * time.Second)
//	ball := balls.Spawn(pos, vel)
//	// ball is removed from the live set automatically after the lifetime.
package engine
