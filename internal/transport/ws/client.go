package ws

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/protocol"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer
	maxMessageSize = 4096
	// Outbound frame buffer per connection
	sendBufferSize = 256
)

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Client is one player's live websocket connection. Outbound frames go
// through a buffered channel drained by writePump, so Send never blocks: a
// slow consumer overflows its own buffer and loses the frame, nothing else.
type Client struct {
	playerID   model.PlayerID
	conn       *websocket.Conn
	dispatcher *Dispatcher
	sessions   *session.Registry
	logger     *slog.Logger

	send chan []byte

	mu     sync.Mutex
	closed bool

	teardownOnce sync.Once
}

func newClient(
	playerID model.PlayerID,
	conn *websocket.Conn,
	dispatcher *Dispatcher,
	sessions *session.Registry,
	logger *slog.Logger,
) *Client {
	return &Client{
		playerID:   playerID,
		conn:       conn,
		dispatcher: dispatcher,
		sessions:   sessions,
		logger:     logger.With(slog.String("player_id", string(playerID))),
		send:       make(chan []byte, sendBufferSize),
	}
}

// Send enqueues an event for delivery. It never blocks: a full buffer or a
// closed connection is reported as an error for the caller to log.
func (c *Client) Send(event protocol.Event) error {
	data, err := protocol.EncodeEvent(event)
	if err != nil {
		return err
	}
	return c.enqueue(data)
}

func (c *Client) enqueue(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close shuts the underlying connection down; readPump notices and runs the
// full teardown.
func (c *Client) Close() error {
	return c.conn.Close()
}

// teardown runs exactly once per connection, no matter whether the peer hung
// up, the server closed the socket, or the player left the game.
func (c *Client) teardown() {
	c.teardownOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()

		c.sessions.Unregister(c.playerID, c)
		c.dispatcher.HandleDisconnect(context.Background(), c.playerID)
		_ = c.conn.Close()

		c.logger.Info("connection closed")
	})
}

// readPump reads frames from the socket and routes them until the connection
// drops. It runs in its own goroutine, one per connection.
func (c *Client) readPump() {
	defer c.teardown()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}

		env, err := protocol.DecodeEnvelope(data)
		if err != nil {
			_ = c.Send(protocol.NewError(protocol.CodeInvalidMessage, err.Error()))
			continue
		}

		switch env.Type {
		case protocol.MessagePing:
			if frame, err := protocol.EncodePong(); err == nil {
				_ = c.enqueue(frame)
			}
		case protocol.MessageCommand:
			c.dispatcher.HandleCommand(context.Background(), c.playerID, env.Command)
		default:
			// Clients only send commands and pings
			_ = c.Send(protocol.NewError(protocol.CodeInvalidMessage, "unexpected message type"))
		}
	}
}

// writePump drains the send channel onto the socket and keeps the connection
// alive with pings. It runs in its own goroutine, one per connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var _ session.Conn = (*Client)(nil)
