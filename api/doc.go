// Package api provides the HTTP surface of the combined relay server: a
// small read-only REST API over the game state, the /ws WebSocket endpoint,
// and static serving of the bundled game assets.
//
// Endpoints:
//
//	GET /api/games                  - all games with player/ball counts
//	GET /api/games/{game}/players   - players of one game
//	GET /api/games/{game}/balls     - live balls of one game
//	GET /api/stats                  - aggregate counts
//	GET /api/health                 - liveness probe
//	    /ws                         - relay WebSocket
//	    /                           - static assets, / serves the game page
package api
