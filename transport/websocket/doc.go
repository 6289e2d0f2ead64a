// Package websocket implements the relay's real-time transport.
//
// A Hub tracks every open connection in the process. Broadcasts go to all
// hub members regardless of which game they joined; the combined server
// shares one hub across its games, so climbandwin clients receive
// pengstrike events and are expected to ignore IDs they do not know.
//
// Each connection gets a Client with a buffered send channel and a write
// pump goroutine, the standard gorilla/websocket pattern. The read side
// lives in Handler, which parses client messages and drives the relay
// service:
//
//	gameType       -> join a game scope, reply with init
//	updatePosition -> store transform, relay playerUpdate to others
//	throwBall      -> spawn ball, broadcast ballThrown to everyone
//
// Malformed or unknown messages are logged and skipped; they never close
// the connection. A disconnect always broadcasts playerLeft, even when the
// connection never completed a join.
package websocket
