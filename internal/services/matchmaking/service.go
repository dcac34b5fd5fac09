package matchmaking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/clock"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
)

// GameCreator starts a game for a matched group of players
type GameCreator interface {
	CreateGame(ctx context.Context, players []model.PlayerID, mode model.GameMode) error
}

// Config holds matchmaking settings
type Config struct {
	// RequiredPlayers is the group size popped per match, by mode
	RequiredPlayers map[model.GameMode]int
	// TickInterval is how often queues are re-checked for matches
	TickInterval time.Duration
}

// DefaultConfig matches every mode as a two-player game
func DefaultConfig() Config {
	return Config{
		RequiredPlayers: map[model.GameMode]int{
			model.ModeClassic:     2,
			model.ModeVoiceBattle: 2,
			model.ModeAsymmetric:  2,
			model.ModeTimeAttack:  2,
		},
		TickInterval: 5 * time.Second,
	}
}

// modeQueue is one mode's FIFO. Its mutex is held across a whole match
// cycle, so pops for the same mode are mutually exclusive while different
// modes proceed independently.
type modeQueue struct {
	mu      sync.Mutex
	players []model.PlayerID
}

// Service queues players per mode and hands matched groups to the game layer
type Service struct {
	cfg         Config
	games       GameCreator
	broadcaster session.Broadcaster
	clock       clock.Clock
	logger      *slog.Logger

	mu     sync.RWMutex
	queues map[model.GameMode]*modeQueue
}

// New creates a matchmaking service
func New(cfg Config, games GameCreator, broadcaster session.Broadcaster, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		cfg:         cfg,
		games:       games,
		broadcaster: broadcaster,
		clock:       clk,
		logger:      logger,
		queues:      make(map[model.GameMode]*modeQueue),
	}
}

func (s *Service) queue(mode model.GameMode) *modeQueue {
	s.mu.RLock()
	q, ok := s.queues[mode]
	s.mu.RUnlock()
	if ok {
		return q
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if q, ok = s.queues[mode]; !ok {
		q = &modeQueue{}
		s.queues[mode] = q
	}
	return q
}

// Join puts a player in the queue for a mode and immediately tries to form a
// match. Re-joining is idempotent: the old entry is dropped and the player
// is appended at the back. Returns the player's 1-based queue position.
func (s *Service) Join(ctx context.Context, playerID model.PlayerID, mode model.GameMode) (int, error) {
	if !mode.Valid() {
		return 0, model.ErrInvalidMode
	}

	q := s.queue(mode)

	q.mu.Lock()
	q.remove(playerID)
	q.players = append(q.players, playerID)
	position := len(q.players)
	q.mu.Unlock()

	s.logger.Info("player joined queue",
		slog.String("player_id", string(playerID)),
		slog.String("mode", string(mode)),
		slog.Int("position", position),
	)

	s.broadcaster.SendTo(playerID, protocol.NewQueueJoined(position))

	s.matchMode(ctx, mode)
	return position, nil
}

// Leave removes the player from every mode queue
func (s *Service) Leave(playerID model.PlayerID) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for mode, q := range s.queues {
		q.mu.Lock()
		if q.remove(playerID) {
			s.logger.Info("player left queue",
				slog.String("player_id", string(playerID)),
				slog.String("mode", string(mode)),
			)
		}
		q.mu.Unlock()
	}
}

// InQueue reports whether the player is waiting in any mode
func (s *Service) InQueue(playerID model.PlayerID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.queues {
		q.mu.Lock()
		found := q.contains(playerID)
		q.mu.Unlock()
		if found {
			return true
		}
	}
	return false
}

// QueueLength returns the number of players waiting for a mode
func (s *Service) QueueLength(mode model.GameMode) int {
	q := s.queue(mode)
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}

// matchMode pops full groups from one mode's queue FIFO and starts games for
// them. If game creation fails the group goes back to the FRONT of the queue
// in its original order, to be retried on the next tick.
func (s *Service) matchMode(ctx context.Context, mode model.GameMode) {
	required := s.cfg.RequiredPlayers[mode]
	if required <= 0 {
		return
	}

	q := s.queue(mode)
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.players) >= required {
		group := append([]model.PlayerID(nil), q.players[:required]...)
		q.players = append(q.players[:0], q.players[required:]...)

		if err := s.games.CreateGame(ctx, group, mode); err != nil {
			s.logger.Error("failed to create game, re-queueing group",
				slog.String("mode", string(mode)),
				slog.Int("group_size", len(group)),
				slog.String("error", err.Error()),
			)
			q.players = append(group, q.players...)
			return
		}
	}
}

// MatchAll runs one match pass over every mode queue
func (s *Service) MatchAll(ctx context.Context) {
	s.mu.RLock()
	modes := make([]model.GameMode, 0, len(s.queues))
	for mode := range s.queues {
		modes = append(modes, mode)
	}
	s.mu.RUnlock()

	for _, mode := range modes {
		s.matchMode(ctx, mode)
	}
}

// Run periodically retries matching until the context is cancelled
func (s *Service) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.MatchAll(ctx)
		}
	}
}

// remove deletes the player from the queue, reporting whether it was present.
// Caller holds q.mu.
func (q *modeQueue) remove(playerID model.PlayerID) bool {
	for i, p := range q.players {
		if p == playerID {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// contains reports queue membership. Caller holds q.mu.
func (q *modeQueue) contains(playerID model.PlayerID) bool {
	for _, p := range q.players {
		if p == playerID {
			return true
		}
	}
	return false
}
