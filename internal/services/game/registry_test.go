package game

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/storage/memory"
	"github.com/iqbalShafiq/word-battle-game/internal/testutil"
)

type registryFixture struct {
	registry    *Registry
	clock       *clockwork.FakeClock
	store       *memory.Storage
	broadcaster *recordingBroadcaster
}

func newRegistryFixture(t *testing.T, cfg Config) registryFixture {
	t.Helper()

	clk := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New()
	broadcaster := newRecordingBroadcaster()

	valid := map[string]bool{"cats": true, "rose": true, "net": true}
	registry := NewRegistry(cfg, store,
		stubWords{valid: valid},
		scoring.New(),
		stubLetters{pool: []string{"c", "a", "t", "s", "e", "r", "n", "o"}},
		broadcaster, clk, testutil.NopLogger())

	return registryFixture{
		registry:    registry,
		clock:       clk,
		store:       store,
		broadcaster: broadcaster,
	}
}

func TestRegistry_CreateGame_RequiresEnoughPlayers(t *testing.T) {
	f := newRegistryFixture(t, DefaultConfig())

	err := f.registry.CreateGame(context.Background(), []model.PlayerID{"p1"}, model.ModeClassic)
	assert.ErrorIs(t, err, model.ErrInsufficientPlayers)
	assert.Zero(t, f.registry.Count())
}

func TestRegistry_CreateGame_AnnouncesMatch(t *testing.T) {
	f := newRegistryFixture(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, f.store.SavePlayer(ctx, &model.Player{ID: "p1", Username: "alice"}))
	require.NoError(t, f.store.SavePlayer(ctx, &model.Player{ID: "p2", Username: "bob"}))

	require.NoError(t, f.registry.CreateGame(ctx, []model.PlayerID{"p1", "p2"}, model.ModeClassic))
	assert.Equal(t, 1, f.registry.Count())

	ev, ok := f.broadcaster.lastOfType("p2", protocol.EventGameCreated)
	require.True(t, ok)
	created := ev.(protocol.GameCreated)
	assert.Equal(t, model.ModeClassic, created.Mode)
	require.Len(t, created.Players, 2)
	assert.Equal(t, "alice", created.Players[0].Username)
	assert.Equal(t, "bob", created.Players[1].Username)

	sess, err := f.store.GetGameSession(ctx, created.GameID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaiting, sess.Status)
	assert.Equal(t, []model.PlayerID{"p1", "p2"}, sess.Players)

	room, ok := f.registry.Get(created.GameID)
	require.True(t, ok)
	assert.Equal(t, model.StatusWaiting, room.Status())
}

func TestRegistry_CreateGame_StartsFirstRound(t *testing.T) {
	f := newRegistryFixture(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, f.registry.CreateGame(ctx, []model.PlayerID{"p1", "p2"}, model.ModeClassic))

	f.clock.Advance(DefaultConfig().StartDelay)
	require.Eventually(t, func() bool {
		return f.broadcaster.countFor("p1", protocol.EventRoundStarted) == 1
	}, waitFor, time.Millisecond)
}

func TestRegistry_HandlePlayerDisconnect(t *testing.T) {
	f := newRegistryFixture(t, DefaultConfig())
	ctx := context.Background()

	require.NoError(t, f.registry.CreateGame(ctx, []model.PlayerID{"p1", "p2"}, model.ModeClassic))
	require.Equal(t, 1, f.registry.Count())

	f.registry.HandlePlayerDisconnect(ctx, "p1")

	// Dropping below the minimum ends the game and removes the room
	assert.Zero(t, f.registry.Count())
	ev, ok := f.broadcaster.lastOfType("p2", protocol.EventGameEnded)
	require.True(t, ok)
	assert.Equal(t, ReasonDisconnect, ev.(protocol.GameEnded).Reason)
}

func TestRegistry_SweepStale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoundDuration = 10 * time.Hour // keep the round open while the room idles
	cfg.StaleThreshold = time.Hour
	f := newRegistryFixture(t, cfg)
	ctx := context.Background()

	require.NoError(t, f.registry.CreateGame(ctx, []model.PlayerID{"p1", "p2"}, model.ModeClassic))

	f.clock.Advance(cfg.StartDelay)
	require.Eventually(t, func() bool {
		return f.broadcaster.countFor("p1", protocol.EventRoundStarted) == 1
	}, waitFor, time.Millisecond)

	// Not yet stale
	f.clock.Advance(cfg.StaleThreshold / 2)
	assert.Zero(t, f.registry.SweepStale(ctx))
	assert.Equal(t, 1, f.registry.Count())

	f.clock.Advance(cfg.StaleThreshold)
	assert.Equal(t, 1, f.registry.SweepStale(ctx))
	assert.Zero(t, f.registry.Count())

	ev, ok := f.broadcaster.lastOfType("p1", protocol.EventGameEnded)
	require.True(t, ok)
	assert.Equal(t, ReasonTimeout, ev.(protocol.GameEnded).Reason)

	// A second sweep finds nothing and nothing is re-broadcast
	assert.Zero(t, f.registry.SweepStale(ctx))
	assert.Equal(t, 1, f.broadcaster.countFor("p1", protocol.EventGameEnded))
}
