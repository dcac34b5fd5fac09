package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/clock"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
)

// Registry tracks live game rooms, creates new games for matched groups and
// reaps rooms that have gone stale.
type Registry struct {
	cfg         Config
	store       storage.Storage
	words       WordValidator
	scoring     *scoring.Service
	letters     LetterGenerator
	broadcaster session.Broadcaster
	clock       clock.Clock
	logger      *slog.Logger

	mu    sync.RWMutex
	rooms map[model.GameID]*Room
}

// NewRegistry creates a room registry
func NewRegistry(
	cfg Config,
	store storage.Storage,
	wordsSvc WordValidator,
	scoringSvc *scoring.Service,
	lettersGen LetterGenerator,
	broadcaster session.Broadcaster,
	clk clock.Clock,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		cfg:         cfg,
		store:       store,
		words:       wordsSvc,
		scoring:     scoringSvc,
		letters:     lettersGen,
		broadcaster: broadcaster,
		clock:       clk,
		logger:      logger,
		rooms:       make(map[model.GameID]*Room),
	}
}

// CreateGame persists a new session for the matched players, builds its room,
// announces it, and arms the start countdown. A persistence failure aborts
// cleanly so the caller can retry the group.
func (reg *Registry) CreateGame(ctx context.Context, players []model.PlayerID, mode model.GameMode) error {
	if len(players) < reg.cfg.MinPlayers {
		return model.ErrInsufficientPlayers
	}

	sess := &model.GameSession{
		ID:        model.GameID(uuid.NewString()),
		Players:   append([]model.PlayerID(nil), players...),
		Mode:      mode,
		Status:    model.StatusWaiting,
		CreatedAt: reg.clock.Now(),
	}
	if err := reg.store.SaveGameSession(ctx, sess); err != nil {
		return err
	}

	room := newRoom(sess, reg.cfg, reg.store, reg.words, reg.scoring, reg.letters,
		reg.broadcaster, reg.clock, reg.logger, reg.removeRoom)

	reg.mu.Lock()
	reg.rooms[sess.ID] = room
	reg.mu.Unlock()

	reg.logger.Info("game created",
		slog.String("game_id", string(sess.ID)),
		slog.String("mode", string(mode)),
		slog.Int("player_count", len(players)),
	)

	reg.broadcaster.SendToMany(players,
		protocol.NewGameCreated(sess.ID, mode, reg.playerInfos(ctx, players)))

	room.ScheduleStart()
	return nil
}

// playerInfos resolves usernames for the match announcement, falling back to
// the raw ID when a profile lookup fails
func (reg *Registry) playerInfos(ctx context.Context, players []model.PlayerID) []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(players))
	for _, id := range players {
		username := string(id)
		if player, err := reg.store.GetPlayer(ctx, id); err == nil {
			username = player.Username
		}
		infos = append(infos, protocol.PlayerInfo{ID: id, Username: username})
	}
	return infos
}

// Get returns the live room for a game, if any
func (reg *Registry) Get(id model.GameID) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[id]
	return room, ok
}

// Count returns the number of live rooms
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

func (reg *Registry) removeRoom(id model.GameID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

// snapshot copies the room set so callers can work without holding the
// registry lock (room methods take the room lock; never nest the two)
func (reg *Registry) snapshot() []*Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	rooms := make([]*Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// HandlePlayerDisconnect removes the player from every room they are in
func (reg *Registry) HandlePlayerDisconnect(ctx context.Context, playerID model.PlayerID) {
	for _, room := range reg.snapshot() {
		if room.HandleDisconnect(ctx, playerID) {
			reg.logger.Info("handled disconnect",
				slog.String("player_id", string(playerID)),
				slog.String("game_id", string(room.ID())),
			)
		}
	}
}

// SweepStale force-ends rooms idle for longer than the stale threshold.
// Each reaped room broadcasts exactly one GameEnded with reason "timeout".
func (reg *Registry) SweepStale(ctx context.Context) int {
	now := reg.clock.Now()
	reaped := 0
	for _, room := range reg.snapshot() {
		if now.Sub(room.LastActivity()) < reg.cfg.StaleThreshold {
			continue
		}
		reg.logger.Warn("reaping stale game",
			slog.String("game_id", string(room.ID())),
			slog.Time("last_activity", room.LastActivity()),
		)
		room.ForceEnd(ctx, ReasonTimeout)
		reaped++
	}
	return reaped
}

// Run sweeps for stale rooms until the context is cancelled
func (reg *Registry) Run(ctx context.Context) {
	ticker := reg.clock.NewTicker(reg.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			reg.SweepStale(ctx)
		}
	}
}
