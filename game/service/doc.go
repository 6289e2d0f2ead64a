// Package service implements the relay's game-facing operations behind a
// transport-agnostic interface.
//
// A RelayService owns one scope per registered game: a player registry, an
// optional ball registry, and a color palette, all driven by that game's
// settings. The WebSocket transport calls Join, UpdatePosition, ThrowBall
// and Leave as messages arrive; the REST API reads the same state through
// Games, Players, Balls and Stats.
//
// The service mutates state and reports results. It does not broadcast;
// fanning events out to connections is the transport's job.
package service
