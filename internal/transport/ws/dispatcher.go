package ws

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/clock"
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/services/game"
	"github.com/iqbalShafiq/word-battle-game/internal/services/matchmaking"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
)

// Dispatcher routes decoded client commands to the matchmaking and game
// layers. It never closes the connection over a bad command: failures come
// back to the sender as Error events.
type Dispatcher struct {
	sessions *session.Registry
	queue    *matchmaking.Service
	games    *game.Registry
	store    storage.Storage
	clock    clock.Clock
	logger   *slog.Logger
}

// NewDispatcher creates a command dispatcher
func NewDispatcher(
	sessions *session.Registry,
	queue *matchmaking.Service,
	games *game.Registry,
	store storage.Storage,
	clk clock.Clock,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		sessions: sessions,
		queue:    queue,
		games:    games,
		store:    store,
		clock:    clk,
		logger:   logger,
	}
}

// HandleCommand processes one COMMAND payload on behalf of the authenticated
// player. The playerId field inside the payload is ignored: identity comes
// from the connection.
func (d *Dispatcher) HandleCommand(ctx context.Context, playerID model.PlayerID, payload []byte) {
	cmd, err := protocol.DecodeCommand(payload)
	if err != nil {
		d.sendError(playerID, protocol.CodeInvalidMessage, err.Error())
		return
	}

	d.logger.Debug("handling command",
		slog.String("player_id", string(playerID)),
		slog.String("command", string(cmd.CommandType())),
	)

	switch c := cmd.(type) {
	case protocol.JoinQueue:
		d.handleJoinQueue(ctx, playerID, c)
	case protocol.LeaveQueue:
		d.queue.Leave(playerID)
	case protocol.SubmitWord:
		d.handleSubmitWord(ctx, playerID, c)
	case protocol.EndRound:
		d.handleEndRound(ctx, playerID, c)
	case protocol.ChatMessage:
		d.handleChat(ctx, playerID, c)
	case protocol.LeaveGame:
		d.handleLeaveGame(ctx, playerID, c)
	}
}

// HandleDisconnect cleans up everything tied to a dropped connection
func (d *Dispatcher) HandleDisconnect(ctx context.Context, playerID model.PlayerID) {
	d.queue.Leave(playerID)
	d.games.HandlePlayerDisconnect(ctx, playerID)
}

func (d *Dispatcher) handleJoinQueue(ctx context.Context, playerID model.PlayerID, cmd protocol.JoinQueue) {
	if _, err := d.queue.Join(ctx, playerID, cmd.GameMode); err != nil {
		if errors.Is(err, model.ErrInvalidMode) {
			d.sendError(playerID, protocol.CodeInvalidMode, "unknown game mode")
			return
		}
		d.sendError(playerID, protocol.CodeInternalError, "failed to join queue")
	}
}

func (d *Dispatcher) handleSubmitWord(ctx context.Context, playerID model.PlayerID, cmd protocol.SubmitWord) {
	room, ok := d.games.Get(cmd.GameID)
	if !ok {
		d.sendError(playerID, protocol.CodeGameNotFound, "game not found")
		return
	}

	result, err := room.SubmitWord(ctx, playerID, cmd.RoundID, cmd.Word)
	if err != nil {
		d.sendError(playerID, errorCode(err), err.Error())
		return
	}

	// The submitter always sees the result; opponents only learn about
	// scoring words
	d.sessions.SendTo(playerID, result)
	if result.Valid {
		d.sessions.SendToManyExcept(room.Players(), playerID, result)
	}
}

func (d *Dispatcher) handleEndRound(ctx context.Context, playerID model.PlayerID, cmd protocol.EndRound) {
	room, ok := d.games.Get(cmd.GameID)
	if !ok {
		d.sendError(playerID, protocol.CodeGameNotFound, "game not found")
		return
	}

	if err := room.EndRoundEarly(ctx, playerID, cmd.RoundID); err != nil {
		d.sendError(playerID, errorCode(err), err.Error())
	}
}

func (d *Dispatcher) handleChat(ctx context.Context, playerID model.PlayerID, cmd protocol.ChatMessage) {
	room, ok := d.games.Get(cmd.GameID)
	if !ok {
		d.sendError(playerID, protocol.CodeGameNotFound, "game not found")
		return
	}
	if !room.HasPlayer(playerID) {
		d.sendError(playerID, protocol.CodeNotInGame, "not in this game")
		return
	}

	username := string(playerID)
	if player, err := d.store.GetPlayer(ctx, playerID); err == nil {
		username = player.Username
	}

	room.Touch()
	d.sessions.SendToMany(room.Players(),
		protocol.NewChatReceived(cmd.GameID, playerID, username, cmd.Message, d.clock.Now()))
}

func (d *Dispatcher) handleLeaveGame(ctx context.Context, playerID model.PlayerID, cmd protocol.LeaveGame) {
	if room, ok := d.games.Get(cmd.GameID); ok {
		room.HandleDisconnect(ctx, playerID)
	}
	d.queue.Leave(playerID)
	d.sessions.Disconnect(playerID)
}

func (d *Dispatcher) sendError(playerID model.PlayerID, code, message string) {
	d.sessions.SendTo(playerID, protocol.NewError(code, message))
}

// errorCode maps game-layer errors to protocol error codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, model.ErrNotInGame):
		return protocol.CodeNotInGame
	case errors.Is(err, model.ErrRoundNotActive), errors.Is(err, model.ErrRoundMismatch):
		return protocol.CodeRoundNotActive
	case errors.Is(err, model.ErrGameNotFound), errors.Is(err, model.ErrGameOver):
		return protocol.CodeGameNotFound
	default:
		return protocol.CodeInternalError
	}
}
