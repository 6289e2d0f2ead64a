package service

import (
	"context"
	"errors"

	"github.com/pengstrike/gameserver/game/config"
	"github.com/pengstrike/gameserver/game/engine"
)

// Game names as they appear on the wire in gameType messages.
const (
	GamePengstrike  = "pengstrike"
	GameClimbandwin = "climbandwin"
)

var (
	ErrUnknownGame       = errors.New("unknown game")
	ErrBallsNotSupported = errors.New("game does not support balls")
)

// GameDef binds a wire-level game name to a settings variant.
type GameDef struct {
	Name    string
	Variant config.Variant
}

// GameInfo summarizes one game scope for the REST API.
type GameInfo struct {
	Name         string `json:"name"`
	Players      int    `json:"players"`
	Balls        int    `json:"balls"`
	BallsEnabled bool   `json:"ballsEnabled"`
}

// ServerStats aggregates counts across all game scopes.
type ServerStats struct {
	Games   int `json:"games"`
	Players int `json:"players"`
	Balls   int `json:"balls"`
}

// JoinResult is everything a newly joined connection needs for its init
// payload: its own player record and a snapshot of the scope.
type JoinResult struct {
	Player   *engine.Player
	Others   []*engine.Player
	Balls    []engine.Ball
	HasBalls bool
}

// RelayService defines the state operations behind the relay protocol.
type RelayService interface {
	// Join registers a player in a game scope and returns the scope
	// snapshot. Joining again with the same ID re-registers the player.
	Join(ctx context.Context, game, playerID string) (*JoinResult, error)

	// UpdatePosition overwrites a player's transform and reports whether
	// the player was registered. Updates for unknown players are dropped.
	UpdatePosition(ctx context.Context, game, playerID string, t engine.Transform) bool

	// ThrowBall spawns a ball in a game scope.
	ThrowBall(ctx context.Context, game string, pos, vel engine.Vector3) (*engine.Ball, error)

	// Leave removes a player from a game scope. Unknown players are a no-op.
	Leave(ctx context.Context, game, playerID string)

	// Games lists all game scopes with current counts.
	Games(ctx context.Context) []GameInfo

	// Players returns the players of one game scope in join order.
	Players(ctx context.Context, game string) ([]*engine.Player, error)

	// Balls returns the live balls of one game scope, oldest first.
	Balls(ctx context.Context, game string) ([]engine.Ball, error)

	// Stats returns aggregate counts across all scopes.
	Stats(ctx context.Context) ServerStats

	// Stop cancels outstanding ball timers. The service is unusable after.
	Stop()
}
