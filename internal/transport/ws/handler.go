package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
)

// Handler upgrades authenticated HTTP requests to game connections.
// Clients connect to GET /ws?token=<session token>.
type Handler struct {
	auth       *auth.Service
	sessions   *session.Registry
	dispatcher *Dispatcher
	logger     *slog.Logger
	upgrader   websocket.Upgrader
}

// NewHandler creates the websocket entry point
func NewHandler(authSvc *auth.Service, sessions *session.Registry, dispatcher *Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{
		auth:       authSvc,
		sessions:   sessions,
		dispatcher: dispatcher,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	playerID, err := h.auth.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newClient(playerID, conn, h.dispatcher, h.sessions, h.logger)
	h.sessions.Register(playerID, client)

	h.logger.Info("player connected", slog.String("player_id", string(playerID)))

	go client.writePump()
	go client.readPump()
}
