package session

import (
	"log/slog"
	"sync"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
)

// Conn is a live connection handle for one player. Send must not block:
// implementations enqueue and report failure rather than stalling the caller.
type Conn interface {
	Send(event protocol.Event) error
	Close() error
}

// Registry maps players to their live connections and fans events out to them
type Registry struct {
	logger *slog.Logger

	mu    sync.RWMutex
	conns map[model.PlayerID]Conn
}

// NewRegistry creates an empty connection registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		conns:  make(map[model.PlayerID]Conn),
	}
}

// Register stores the connection for a player. A player reconnecting
// supersedes their previous handle, which is closed.
func (r *Registry) Register(playerID model.PlayerID, conn Conn) {
	r.mu.Lock()
	old := r.conns[playerID]
	r.conns[playerID] = conn
	r.mu.Unlock()

	if old != nil && old != conn {
		_ = old.Close()
		r.logger.Info("superseded existing connection",
			slog.String("player_id", string(playerID)),
		)
	}
}

// Unregister removes the player's connection, but only if the stored handle
// is the given one: a superseded connection's cleanup must not evict its
// replacement.
func (r *Registry) Unregister(playerID model.PlayerID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[playerID] == conn {
		delete(r.conns, playerID)
	}
}

// Disconnect closes and removes the player's connection, if any
func (r *Registry) Disconnect(playerID model.PlayerID) {
	r.mu.Lock()
	conn, ok := r.conns[playerID]
	if ok {
		delete(r.conns, playerID)
	}
	r.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}

// IsConnected reports whether a player currently has a registered connection
func (r *Registry) IsConnected(playerID model.PlayerID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[playerID]
	return ok
}

// Count returns the number of registered connections
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// SendTo delivers an event to one player, best-effort. A missing or failed
// connection is logged and swallowed.
func (r *Registry) SendTo(playerID model.PlayerID, event protocol.Event) {
	r.mu.RLock()
	conn, ok := r.conns[playerID]
	r.mu.RUnlock()

	if !ok {
		return
	}

	if err := conn.Send(event); err != nil {
		r.logger.Warn("failed to send event",
			slog.String("player_id", string(playerID)),
			slog.String("event", string(event.EventType())),
			slog.String("error", err.Error()),
		)
	}
}

// SendToMany delivers an event to each recipient independently: one failing
// or missing connection never affects delivery to the others.
func (r *Registry) SendToMany(playerIDs []model.PlayerID, event protocol.Event) {
	for _, playerID := range playerIDs {
		r.SendTo(playerID, event)
	}
}

// SendToManyExcept fans out to every recipient except one
func (r *Registry) SendToManyExcept(playerIDs []model.PlayerID, except model.PlayerID, event protocol.Event) {
	for _, playerID := range playerIDs {
		if playerID == except {
			continue
		}
		r.SendTo(playerID, event)
	}
}

// Broadcaster is the outbound-delivery interface game logic depends on
type Broadcaster interface {
	SendTo(playerID model.PlayerID, event protocol.Event)
	SendToMany(playerIDs []model.PlayerID, event protocol.Event)
	SendToManyExcept(playerIDs []model.PlayerID, except model.PlayerID, event protocol.Event)
}

var _ Broadcaster = (*Registry)(nil)
