// Package mcp exposes the relay server's read-only state over the Model
// Context Protocol, so AI assistants can inspect running games.
//
// The client is a thin proxy: every tool call is translated into a request
// against the REST API and the JSON response is rendered as text. It holds
// no game state of its own, which keeps it safe to run beside any number
// of other observers.
package mcp
