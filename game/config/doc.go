// Package config provides per-game settings for the relay server.
//
// Each game variant ships with built-in defaults (spawn height, color
// palette, ball support, ball lifetime) that can be overridden by a JSON
// file in the configs directory. A missing directory or file simply means
// the defaults apply, so the server runs with no configs at all.
//
// Variants:
//   - pengstrike: spawn at ground level, no colors, balls enabled
//   - climbandwin: combined-server scope, hex string palette, no balls
//   - climbandwin-standalone: elevated spawn, integer palette, no balls
//
// Usage:
//
//	manager := config.NewManager("configs")
//	settings, err := manager.Settings(config.VariantPengstrike)
//	if err != nil {
//		log.Fatal(err)
//	}
package config
