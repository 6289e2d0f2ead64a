package websocket

import "github.com/pengstrike/gameserver/game/engine"

// Message type tags on the wire.
const (
	typeGameType       = "gameType"
	typeUpdatePosition = "updatePosition"
	typeThrowBall      = "throwBall"
	typeInit           = "init"
	typePlayerJoined   = "playerJoined"
	typePlayerUpdate   = "playerUpdate"
	typePlayerLeft     = "playerLeft"
	typeBallThrown     = "ballThrown"
)

// clientMessage is the superset of everything a client may send. Fields not
// used by a given type are simply left zero.
type clientMessage struct {
	Type     string         `json:"type"`
	GameType string         `json:"gameType,omitempty"`
	Position engine.Vector3 `json:"position"`
	Rotation engine.Vector3 `json:"rotation"`
	Velocity engine.Vector3 `json:"velocity"`
	OnFloor  bool           `json:"onFloor"`
}

// initMessage seeds a joining client with its identity and the scope state.
// The standalone climbandwin server sends objects, the combined server
// sends balls only for games that have them; pointers keep absent lists off
// the wire entirely.
type initMessage struct {
	Type        string           `json:"type"`
	PlayerID    string           `json:"playerId"`
	PlayerColor any              `json:"playerColor,omitempty"`
	Players     []*engine.Player `json:"players"`
	Objects     *[]engine.Ball   `json:"objects,omitempty"`
	Balls       *[]engine.Ball   `json:"balls,omitempty"`
}

type playerJoinedMessage struct {
	Type   string         `json:"type"`
	Player *engine.Player `json:"player"`
}

type playerUpdateMessage struct {
	Type     string         `json:"type"`
	PlayerID string         `json:"playerId"`
	Position engine.Vector3 `json:"position"`
	Rotation engine.Vector3 `json:"rotation"`
	Velocity engine.Vector3 `json:"velocity"`
	OnFloor  bool           `json:"onFloor"`
}

type playerLeftMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type ballThrownMessage struct {
	Type string       `json:"type"`
	Ball *engine.Ball `json:"ball"`
}
