package engine

import "github.com/google/uuid"

// Vector3 is a 3-component float vector using the wire field names the
// browser clients send (three.js convention).
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform is the client-reported movement state carried by an
// updatePosition message. Rotation is Euler angles.
type Transform struct {
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
	Velocity Vector3 `json:"velocity"`
	OnFloor  bool    `json:"onFloor"`
}

// Player is the relay's record of one connected client.
//
// ID is assigned when the connection opens and never changes. Color is an
// integer for the standalone climbandwin palette, a hex string for the
// combined-server climbandwin palette, and absent for pengstrike players;
// the any type lets both palette encodings share one wire field.
type Player struct {
	ID       string  `json:"id"`
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
	Velocity Vector3 `json:"velocity"`
	OnFloor  bool    `json:"onFloor"`
	Color    any     `json:"color,omitempty"`

	seq uint64 // join order within a registry, for stable snapshots
}

// Ball is a short-lived projectile spawn event. The server never simulates
// its trajectory; clients integrate it locally from the broadcast spawn,
// so the record is immutable after creation.
type Ball struct {
	ID        string  `json:"id"`
	Position  Vector3 `json:"position"`
	Velocity  Vector3 `json:"velocity"`
	Timestamp int64   `json:"timestamp"` // spawn time, unix milliseconds
}

// NewID returns an opaque identifier for players and balls. Uniqueness is
// probabilistic; no deduplication against live registries is performed.
func NewID() string {
	return uuid.NewString()
}
