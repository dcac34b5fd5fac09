package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/clock"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/services/words"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
)

// Reasons reported in GameEnded events
const (
	ReasonCompleted  = "completed"
	ReasonDisconnect = "player_disconnected"
	ReasonTimeout    = "timeout"
)

// Room runs one game session's state machine. All mutations happen under its
// mutex, so events for a room always go out in transition order. At most one
// timer is pending at any time; scheduling anything cancels the previous one.
type Room struct {
	cfg         Config
	store       storage.Storage
	words       WordValidator
	scoring     *scoring.Service
	letters     LetterGenerator
	broadcaster session.Broadcaster
	clock       clock.Clock
	logger      *slog.Logger
	onEnd       func(model.GameID)

	mu             sync.Mutex
	id             model.GameID
	mode           model.GameMode
	players        []model.PlayerID
	status         model.GameStatus
	roundNumber    int
	currentRound   *model.Round
	roundStartedAt time.Time
	streaks        map[model.PlayerID]int
	totals         map[model.PlayerID]int
	createdAt      time.Time
	lastActivity   time.Time
	timer          clockwork.Timer
	timerSeq       uint64
}

func newRoom(
	sess *model.GameSession,
	cfg Config,
	store storage.Storage,
	wordsSvc WordValidator,
	scoringSvc *scoring.Service,
	lettersGen LetterGenerator,
	broadcaster session.Broadcaster,
	clk clock.Clock,
	logger *slog.Logger,
	onEnd func(model.GameID),
) *Room {
	totals := make(map[model.PlayerID]int, len(sess.Players))
	for _, p := range sess.Players {
		totals[p] = 0
	}

	return &Room{
		cfg:          cfg,
		store:        store,
		words:        wordsSvc,
		scoring:      scoringSvc,
		letters:      lettersGen,
		broadcaster:  broadcaster,
		clock:        clk,
		logger:       logger.With(slog.String("game_id", string(sess.ID))),
		onEnd:        onEnd,
		id:           sess.ID,
		mode:         sess.Mode,
		players:      append([]model.PlayerID(nil), sess.Players...),
		status:       model.StatusWaiting,
		streaks:      make(map[model.PlayerID]int, len(sess.Players)),
		totals:       totals,
		createdAt:    sess.CreatedAt,
		lastActivity: sess.CreatedAt,
	}
}

// ID returns the game's identifier
func (r *Room) ID() model.GameID {
	return r.id
}

// Status returns the room's current lifecycle state
func (r *Room) Status() model.GameStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Players returns a snapshot of the current participant set
func (r *Room) Players() []model.PlayerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.PlayerID(nil), r.players...)
}

// HasPlayer reports whether the player is currently a participant
func (r *Room) HasPlayer(playerID model.PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasPlayer(playerID)
}

// CurrentRoundID returns the active round's ID, or empty outside a round
func (r *Room) CurrentRoundID() model.RoundID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.currentRound == nil {
		return ""
	}
	return r.currentRound.ID
}

// LastActivity returns when the room last saw player or lifecycle activity
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Touch marks the room as active (chat and other non-mutating traffic)
func (r *Room) Touch() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touch()
}

// ScheduleStart arms the countdown to the first round
func (r *Room) ScheduleStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != model.StatusWaiting {
		return
	}
	r.schedule(r.cfg.StartDelay, r.startNextRound)
}

// SubmitWord validates, scores and records a word for the active round.
// Invalid, duplicate and late words come back as a failed result; only a
// wrong game or a stale round ID is an error.
func (r *Room) SubmitWord(ctx context.Context, playerID model.PlayerID, roundID model.RoundID, word string) (protocol.WordResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasPlayer(playerID) {
		return protocol.WordResult{}, model.ErrNotInGame
	}
	// Words race the round timer in every game; a submission landing after
	// the round closed is answered with a failed result, not an error
	if r.status != model.StatusRoundActive || r.currentRound == nil {
		return protocol.NewWordResult(r.id, roundID, playerID, words.Normalize(word), false, 0), nil
	}
	if roundID != "" && roundID != r.currentRound.ID {
		return protocol.WordResult{}, model.ErrRoundMismatch
	}

	r.touch()
	normalized := words.Normalize(word)

	// One scoring chance per (player, word) pair per round
	for _, sub := range r.currentRound.Submissions {
		if sub.PlayerID == playerID && words.Normalize(sub.Word) == normalized {
			return protocol.NewWordResult(r.id, r.currentRound.ID, playerID, normalized, false, 0), nil
		}
	}

	valid := r.words.Validate(normalized, r.currentRound.Letters)

	score := 0
	if valid {
		r.streaks[playerID]++
		elapsed := r.clock.Now().Sub(r.roundStartedAt)
		score = r.scoring.ScoreWord(normalized) +
			r.scoring.TimeBonus(elapsed, r.cfg.RoundDuration) +
			r.scoring.StreakBonus(r.streaks[playerID])
	} else {
		r.streaks[playerID] = 0
	}

	sub := model.Submission{
		PlayerID:    playerID,
		Word:        normalized,
		Valid:       valid,
		Score:       score,
		SubmittedAt: r.clock.Now(),
	}
	r.currentRound.Submissions = append(r.currentRound.Submissions, sub)

	// The in-memory round is authoritative; a persistence hiccup only delays
	// the stored copy
	if err := r.store.AddSubmission(ctx, r.currentRound.ID, sub); err != nil {
		r.logger.Warn("failed to persist submission",
			slog.String("round_id", string(r.currentRound.ID)),
			slog.String("error", err.Error()),
		)
	}

	return protocol.NewWordResult(r.id, r.currentRound.ID, playerID, normalized, valid, score), nil
}

// EndRoundEarly ends the active round before its timer fires. A request
// arriving after the round already closed is a no-op.
func (r *Room) EndRoundEarly(ctx context.Context, playerID model.PlayerID, roundID model.RoundID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.hasPlayer(playerID) {
		return model.ErrNotInGame
	}
	if r.status != model.StatusRoundActive || r.currentRound == nil {
		return nil
	}
	if roundID != "" && roundID != r.currentRound.ID {
		return model.ErrRoundMismatch
	}

	r.cancelTimer()
	r.endRound(ctx)
	return nil
}

// HandleDisconnect removes a participant. It reports whether the player was
// in this room. Dropping below the minimum player count ends the game.
func (r *Room) HandleDisconnect(ctx context.Context, playerID model.PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)
	r.touch()

	r.logger.Info("player left game",
		slog.String("player_id", string(playerID)),
		slog.Int("remaining", len(r.players)),
	)

	if r.status != model.StatusGameOver && len(r.players) < r.cfg.MinPlayers {
		r.endGame(ctx, ReasonDisconnect)
	}
	return true
}

// ForceEnd ends the game immediately with the given reason. Safe to call on
// an already-finished room; only the first call broadcasts GameEnded.
func (r *Room) ForceEnd(ctx context.Context, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endGame(ctx, reason)
}

// --- internals; every method below assumes r.mu is held ---

func (r *Room) hasPlayer(playerID model.PlayerID) bool {
	for _, p := range r.players {
		if p == playerID {
			return true
		}
	}
	return false
}

func (r *Room) touch() {
	r.lastActivity = r.clock.Now()
}

// schedule arms the room's single timer, cancelling any previous one. A
// generation counter makes fires from cancelled timers no-ops even if they
// were already in flight.
func (r *Room) schedule(d time.Duration, fn func(ctx context.Context)) {
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timerSeq++
	seq := r.timerSeq

	r.timer = r.clock.AfterFunc(d, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if seq != r.timerSeq {
			return // cancelled or superseded while firing
		}
		r.timer = nil
		fn(context.Background())
	})
}

func (r *Room) cancelTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.timerSeq++
}

func (r *Room) startNextRound(ctx context.Context) {
	if r.status == model.StatusGameOver {
		return
	}

	next := r.roundNumber + 1
	if next > r.cfg.MaxRounds {
		r.endGame(ctx, ReasonCompleted)
		return
	}

	round := &model.Round{
		ID:        model.RoundID(uuid.NewString()),
		GameID:    r.id,
		Number:    next,
		Letters:   r.letters.Generate(r.cfg.LettersPerRound),
		StartedAt: r.clock.Now(),
	}

	if err := r.store.SaveRound(ctx, round); err != nil {
		// Retryable: try the same round number again after a break
		r.logger.Error("failed to persist round, will retry",
			slog.Int("round_number", next),
			slog.String("error", err.Error()),
		)
		r.schedule(r.cfg.BreakDuration, r.startNextRound)
		return
	}

	r.roundNumber = next
	r.currentRound = round
	r.roundStartedAt = round.StartedAt
	r.status = model.StatusRoundActive
	r.touch()
	r.persistStatus(ctx)

	r.logger.Info("round started",
		slog.String("round_id", string(round.ID)),
		slog.Int("round_number", next),
	)

	info := protocol.RoundInfo{
		ID:          round.ID,
		GameID:      round.GameID,
		RoundNumber: round.Number,
		Letters:     round.Letters,
	}
	r.broadcaster.SendToMany(r.players, protocol.NewRoundStarted(info, r.cfg.RoundDuration))

	r.schedule(r.cfg.RoundDuration, func(ctx context.Context) {
		r.endRound(ctx)
	})
}

func (r *Room) endRound(ctx context.Context) {
	if r.status != model.StatusRoundActive || r.currentRound == nil {
		return
	}

	round := r.currentRound

	scores := make(map[model.PlayerID]int, len(r.players))
	for _, p := range r.players {
		scores[p] = 0
	}

	var (
		winningWord   string
		winningPlayer model.PlayerID
		bestScore     = -1
	)
	for _, sub := range round.Submissions {
		if !sub.Valid {
			continue
		}
		scores[sub.PlayerID] += sub.Score
		if sub.Score > bestScore {
			bestScore = sub.Score
			winningWord = sub.Word
			winningPlayer = sub.PlayerID
		}
	}

	for p, sc := range scores {
		r.totals[p] += sc
	}

	r.currentRound = nil
	r.status = model.StatusRoundOver
	r.touch()
	r.persistStatus(ctx)

	r.logger.Info("round ended",
		slog.String("round_id", string(round.ID)),
		slog.Int("round_number", round.Number),
		slog.Int("submissions", len(round.Submissions)),
	)

	r.broadcaster.SendToMany(r.players,
		protocol.NewRoundEnded(r.id, round.ID, round.Number, scores, winningWord, winningPlayer))

	if r.roundNumber >= r.cfg.MaxRounds {
		r.endGame(ctx, ReasonCompleted)
		return
	}
	r.schedule(r.cfg.BreakDuration, r.startNextRound)
}

// endGame finishes the session exactly once: later calls are no-ops, so
// GameEnded is never broadcast twice regardless of what triggered the end.
func (r *Room) endGame(ctx context.Context, reason string) {
	if r.status == model.StatusGameOver {
		return
	}

	r.cancelTimer()
	r.currentRound = nil
	r.status = model.StatusGameOver
	r.touch()

	winner := r.scoring.DetermineWinner(r.totals)

	if err := r.store.SaveGameSession(ctx, &model.GameSession{
		ID:        r.id,
		Players:   append([]model.PlayerID(nil), r.players...),
		Mode:      r.mode,
		Status:    model.StatusGameOver,
		WinnerID:  winner,
		CreatedAt: r.createdAt,
		EndedAt:   r.clock.Now(),
	}); err != nil {
		r.logger.Error("failed to persist game end", slog.String("error", err.Error()))
	}

	scores := make(map[model.PlayerID]int, len(r.totals))
	for p, total := range r.totals {
		scores[p] = total
		if err := r.store.UpdatePlayerStats(ctx, p, p == winner, total); err != nil {
			r.logger.Warn("failed to update player stats",
				slog.String("player_id", string(p)),
				slog.String("error", err.Error()),
			)
		}
	}

	r.logger.Info("game ended",
		slog.String("reason", reason),
		slog.String("winner_id", string(winner)),
	)

	r.broadcaster.SendToMany(r.players, protocol.NewGameEnded(r.id, scores, winner, reason))

	if r.onEnd != nil {
		r.onEnd(r.id)
	}
}

func (r *Room) persistStatus(ctx context.Context) {
	if err := r.store.SaveGameSession(ctx, &model.GameSession{
		ID:        r.id,
		Players:   append([]model.PlayerID(nil), r.players...),
		Mode:      r.mode,
		Status:    r.status,
		CreatedAt: r.createdAt,
	}); err != nil {
		r.logger.Warn("failed to persist game status",
			slog.String("status", string(r.status)),
			slog.String("error", err.Error()),
		)
	}
}
