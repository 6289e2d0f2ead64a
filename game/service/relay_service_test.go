package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pengstrike/gameserver/game/config"
	"github.com/pengstrike/gameserver/game/engine"
)

func newTestService(t *testing.T) RelayService {
	t.Helper()
	svc, err := NewRelayService(config.NewManager(t.TempDir()),
		GameDef{Name: GamePengstrike, Variant: config.VariantPengstrike},
		GameDef{Name: GameClimbandwin, Variant: config.VariantClimbandwin},
	)
	require.NoError(t, err)
	t.Cleanup(svc.Stop)
	return svc
}

func TestJoinPengstrike(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, err := svc.Join(ctx, GamePengstrike, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", res.Player.ID)
	assert.Equal(t, 1.0, res.Player.Position.Y)
	assert.Nil(t, res.Player.Color)
	assert.Empty(t, res.Others)
	assert.True(t, res.HasBalls)
	require.NotNil(t, res.Balls)
	assert.Empty(t, res.Balls)
}

func TestJoinClimbandwinColors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Join(ctx, GameClimbandwin, "a")
	require.NoError(t, err)
	second, err := svc.Join(ctx, GameClimbandwin, "b")
	require.NoError(t, err)

	assert.Equal(t, "#ff0000", first.Player.Color)
	assert.Equal(t, "#00ff00", second.Player.Color)
	assert.False(t, second.HasBalls)
	assert.Nil(t, second.Balls)

	require.Len(t, second.Others, 1)
	assert.Equal(t, "a", second.Others[0].ID)
}

func TestJoinUnknownGame(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Join(context.Background(), "tetris", "p1")
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestJoinAgainReRegisters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Join(ctx, GameClimbandwin, "p1")
	require.NoError(t, err)
	res, err := svc.Join(ctx, GameClimbandwin, "p1")
	require.NoError(t, err)

	// same ID gets a fresh record and the next palette color
	assert.Equal(t, "#00ff00", res.Player.Color)
	assert.Empty(t, res.Others)
}

func TestUpdatePosition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Join(ctx, GamePengstrike, "p1")
	require.NoError(t, err)

	tr := engine.Transform{Position: engine.Vector3{X: 3, Y: 4, Z: 5}, OnFloor: true}
	assert.True(t, svc.UpdatePosition(ctx, GamePengstrike, "p1", tr))

	players, err := svc.Players(ctx, GamePengstrike)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, tr.Position, players[0].Position)
	assert.True(t, players[0].OnFloor)
}

func TestUpdatePositionUnknownPlayer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.False(t, svc.UpdatePosition(ctx, GamePengstrike, "ghost", engine.Transform{}))
	assert.False(t, svc.UpdatePosition(ctx, "tetris", "ghost", engine.Transform{}))
}

func TestThrowBall(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ball, err := svc.ThrowBall(ctx, GamePengstrike, engine.Vector3{X: 1}, engine.Vector3{Z: -2})
	require.NoError(t, err)
	assert.NotEmpty(t, ball.ID)
	assert.Equal(t, 1.0, ball.Position.X)

	balls, err := svc.Balls(ctx, GamePengstrike)
	require.NoError(t, err)
	assert.Len(t, balls, 1)
}

func TestThrowBallNotSupported(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.ThrowBall(ctx, GameClimbandwin, engine.Vector3{}, engine.Vector3{})
	assert.ErrorIs(t, err, ErrBallsNotSupported)

	_, err = svc.Balls(ctx, GameClimbandwin)
	assert.ErrorIs(t, err, ErrBallsNotSupported)

	_, err = svc.ThrowBall(ctx, "tetris", engine.Vector3{}, engine.Vector3{})
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestBallLifetimeFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pengstrike.json"),
		[]byte(`{"ballLifetimeMs": 30}`), 0644))

	svc, err := NewRelayService(config.NewManager(dir),
		GameDef{Name: GamePengstrike, Variant: config.VariantPengstrike})
	require.NoError(t, err)
	defer svc.Stop()
	ctx := context.Background()

	_, err = svc.ThrowBall(ctx, GamePengstrike, engine.Vector3{}, engine.Vector3{})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		balls, err := svc.Balls(ctx, GamePengstrike)
		return err == nil && len(balls) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestLeave(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Join(ctx, GamePengstrike, "p1")
	require.NoError(t, err)

	svc.Leave(ctx, GamePengstrike, "p1")
	players, err := svc.Players(ctx, GamePengstrike)
	require.NoError(t, err)
	assert.Empty(t, players)

	// leaving again, or from an unknown game, is a no-op
	svc.Leave(ctx, GamePengstrike, "p1")
	svc.Leave(ctx, "tetris", "p1")
}

func TestGamesAndStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Join(ctx, GamePengstrike, "p1")
	require.NoError(t, err)
	_, err = svc.Join(ctx, GameClimbandwin, "c1")
	require.NoError(t, err)
	_, err = svc.ThrowBall(ctx, GamePengstrike, engine.Vector3{}, engine.Vector3{})
	require.NoError(t, err)

	games := svc.Games(ctx)
	require.Len(t, games, 2)
	assert.Equal(t, GameInfo{Name: GamePengstrike, Players: 1, Balls: 1, BallsEnabled: true}, games[0])
	assert.Equal(t, GameInfo{Name: GameClimbandwin, Players: 1, Balls: 0, BallsEnabled: false}, games[1])

	stats := svc.Stats(ctx)
	assert.Equal(t, ServerStats{Games: 2, Players: 2, Balls: 1}, stats)
}

func TestPlayersUnknownGame(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Players(context.Background(), "tetris")
	assert.ErrorIs(t, err, ErrUnknownGame)
}
