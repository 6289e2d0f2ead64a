package service

import (
	"context"
	"fmt"

	"github.com/pengstrike/gameserver/game/config"
	"github.com/pengstrike/gameserver/game/engine"
)

// gameScope is the live state of one game: who is in it, what colors new
// joiners get, and the in-flight balls (nil when the game has none).
type gameScope struct {
	name        string
	players     *engine.Registry
	palette     *engine.Palette
	balls       *engine.BallRegistry
	spawnHeight float64
}

// relayService is the default RelayService implementation. Scopes are fixed
// at construction; per-scope registries handle their own locking.
type relayService struct {
	scopes map[string]*gameScope
	order  []string
}

// NewRelayService builds a relay service with one scope per game
// definition, resolving each game's settings through the config manager.
func NewRelayService(cfg *config.Manager, games ...GameDef) (RelayService, error) {
	s := &relayService{scopes: make(map[string]*gameScope)}
	for _, def := range games {
		settings, err := cfg.Settings(def.Variant)
		if err != nil {
			return nil, fmt.Errorf("failed to configure game %s: %w", def.Name, err)
		}
		scope := &gameScope{
			name:        def.Name,
			players:     engine.NewRegistry(),
			palette:     paletteFor(settings.Palette),
			spawnHeight: settings.SpawnHeight,
		}
		if settings.Balls {
			scope.balls = engine.NewBallRegistry(settings.BallLifetime())
		}
		s.scopes[def.Name] = scope
		s.order = append(s.order, def.Name)
	}
	return s, nil
}

func paletteFor(kind config.PaletteKind) *engine.Palette {
	switch kind {
	case config.PaletteInt:
		return engine.NewPalette(engine.StandaloneColors)
	case config.PaletteHex:
		return engine.NewPalette(engine.CombinedColors)
	default:
		return nil
	}
}

func (s *relayService) scope(game string) (*gameScope, error) {
	sc, ok := s.scopes[game]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	return sc, nil
}

func (s *relayService) Join(ctx context.Context, game, playerID string) (*JoinResult, error) {
	sc, err := s.scope(game)
	if err != nil {
		return nil, err
	}

	p := &engine.Player{
		ID:       playerID,
		Position: engine.Vector3{Y: sc.spawnHeight},
		Color:    sc.palette.Next(),
	}
	sc.players.Register(p)

	// Return a copy so the caller cannot mutate registry state.
	joined, _ := sc.players.Get(playerID)
	res := &JoinResult{
		Player:   joined,
		Others:   sc.players.Snapshot(playerID),
		HasBalls: sc.balls != nil,
	}
	if sc.balls != nil {
		res.Balls = sc.balls.Snapshot()
	}
	return res, nil
}

func (s *relayService) UpdatePosition(ctx context.Context, game, playerID string, t engine.Transform) bool {
	sc, err := s.scope(game)
	if err != nil {
		return false
	}
	return sc.players.UpdateTransform(playerID, t)
}

func (s *relayService) ThrowBall(ctx context.Context, game string, pos, vel engine.Vector3) (*engine.Ball, error) {
	sc, err := s.scope(game)
	if err != nil {
		return nil, err
	}
	if sc.balls == nil {
		return nil, fmt.Errorf("%w: %s", ErrBallsNotSupported, game)
	}
	return sc.balls.Spawn(pos, vel), nil
}

func (s *relayService) Leave(ctx context.Context, game, playerID string) {
	sc, err := s.scope(game)
	if err != nil {
		return
	}
	sc.players.Remove(playerID)
}

func (s *relayService) Games(ctx context.Context) []GameInfo {
	out := make([]GameInfo, 0, len(s.order))
	for _, name := range s.order {
		sc := s.scopes[name]
		info := GameInfo{
			Name:         sc.name,
			Players:      sc.players.Count(),
			BallsEnabled: sc.balls != nil,
		}
		if sc.balls != nil {
			info.Balls = sc.balls.Count()
		}
		out = append(out, info)
	}
	return out
}

func (s *relayService) Players(ctx context.Context, game string) ([]*engine.Player, error) {
	sc, err := s.scope(game)
	if err != nil {
		return nil, err
	}
	return sc.players.Snapshot(""), nil
}

func (s *relayService) Balls(ctx context.Context, game string) ([]engine.Ball, error) {
	sc, err := s.scope(game)
	if err != nil {
		return nil, err
	}
	if sc.balls == nil {
		return nil, fmt.Errorf("%w: %s", ErrBallsNotSupported, game)
	}
	return sc.balls.Snapshot(), nil
}

func (s *relayService) Stats(ctx context.Context) ServerStats {
	stats := ServerStats{Games: len(s.scopes)}
	for _, sc := range s.scopes {
		stats.Players += sc.players.Count()
		if sc.balls != nil {
			stats.Balls += sc.balls.Count()
		}
	}
	return stats
}

func (s *relayService) Stop() {
	for _, sc := range s.scopes {
		if sc.balls != nil {
			sc.balls.Stop()
		}
	}
}
