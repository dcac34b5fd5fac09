package protocol

import (
	"encoding/json"
	"time"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

// EventType identifies a server event
type EventType string

const (
	EventQueueJoined  EventType = "QueueJoined"
	EventGameCreated  EventType = "GameCreated"
	EventRoundStarted EventType = "RoundStarted"
	EventWordResult   EventType = "WordResult"
	EventRoundEnded   EventType = "RoundEnded"
	EventGameEnded    EventType = "GameEnded"
	EventChatReceived EventType = "ChatReceived"
	EventError        EventType = "Error"
)

// Error codes carried by Error events
const (
	CodeInvalidMessage = "INVALID_MESSAGE"
	CodeInvalidMode    = "INVALID_MODE"
	CodeInvalidWord    = "INVALID_WORD"
	CodeGameNotFound   = "GAME_NOT_FOUND"
	CodeNotInGame      = "NOT_IN_GAME"
	CodeRoundNotActive = "ROUND_NOT_ACTIVE"
	CodeInternalError  = "INTERNAL_ERROR"
)

// Event is implemented by every server event variant
type Event interface {
	EventType() EventType
}

// PlayerInfo is the public view of a player sent to clients
type PlayerInfo struct {
	ID       model.PlayerID `json:"id"`
	Username string         `json:"username"`
}

// RoundInfo is the public view of a round sent to clients
type RoundInfo struct {
	ID          model.RoundID `json:"id"`
	GameID      model.GameID  `json:"gameId"`
	RoundNumber int           `json:"roundNumber"`
	Letters     []string      `json:"letters"`
}

// QueueJoined confirms entry into a matchmaking queue
type QueueJoined struct {
	Type                 EventType `json:"type"`
	Position             int       `json:"position"`
	EstimatedWaitSeconds int       `json:"estimatedWaitTime"`
}

func (QueueJoined) EventType() EventType { return EventQueueJoined }

// NewQueueJoined builds a QueueJoined for the given 1-based queue position
func NewQueueJoined(position int) QueueJoined {
	return QueueJoined{
		Type:                 EventQueueJoined,
		Position:             position,
		EstimatedWaitSeconds: position * 10,
	}
}

// GameCreated announces a new match to its participants
type GameCreated struct {
	Type    EventType      `json:"type"`
	GameID  model.GameID   `json:"gameId"`
	Mode    model.GameMode `json:"gameMode"`
	Players []PlayerInfo   `json:"players"`
}

func (GameCreated) EventType() EventType { return EventGameCreated }

func NewGameCreated(gameID model.GameID, mode model.GameMode, players []PlayerInfo) GameCreated {
	return GameCreated{Type: EventGameCreated, GameID: gameID, Mode: mode, Players: players}
}

// RoundStarted announces a new round and its letter pool
type RoundStarted struct {
	Type             EventType    `json:"type"`
	GameID           model.GameID `json:"gameId"`
	Round            RoundInfo    `json:"round"`
	TimeLimitSeconds int          `json:"timeLimit"`
}

func (RoundStarted) EventType() EventType { return EventRoundStarted }

func NewRoundStarted(round RoundInfo, timeLimit time.Duration) RoundStarted {
	return RoundStarted{
		Type:             EventRoundStarted,
		GameID:           round.GameID,
		Round:            round,
		TimeLimitSeconds: int(timeLimit.Seconds()),
	}
}

// WordResult reports the outcome of a word submission
type WordResult struct {
	Type     EventType      `json:"type"`
	GameID   model.GameID   `json:"gameId"`
	RoundID  model.RoundID  `json:"roundId"`
	PlayerID model.PlayerID `json:"playerId"`
	Word     string         `json:"word"`
	Valid    bool           `json:"isValid"`
	Score    int            `json:"score"`
}

func (WordResult) EventType() EventType { return EventWordResult }

func NewWordResult(gameID model.GameID, roundID model.RoundID, playerID model.PlayerID, word string, valid bool, score int) WordResult {
	return WordResult{
		Type:     EventWordResult,
		GameID:   gameID,
		RoundID:  roundID,
		PlayerID: playerID,
		Word:     word,
		Valid:    valid,
		Score:    score,
	}
}

// RoundEnded reports per-player round scores and the winning word
type RoundEnded struct {
	Type            EventType              `json:"type"`
	GameID          model.GameID           `json:"gameId"`
	RoundID         model.RoundID          `json:"roundId"`
	RoundNumber     int                    `json:"roundNumber"`
	Scores          map[model.PlayerID]int `json:"scores"`
	WinningWord     string                 `json:"winningWord"`
	WinningPlayerID model.PlayerID         `json:"winningPlayerId"`
}

func (RoundEnded) EventType() EventType { return EventRoundEnded }

func NewRoundEnded(gameID model.GameID, roundID model.RoundID, roundNumber int, scores map[model.PlayerID]int, winningWord string, winningPlayerID model.PlayerID) RoundEnded {
	return RoundEnded{
		Type:            EventRoundEnded,
		GameID:          gameID,
		RoundID:         roundID,
		RoundNumber:     roundNumber,
		Scores:          scores,
		WinningWord:     winningWord,
		WinningPlayerID: winningPlayerID,
	}
}

// GameEnded reports final totals, the winner (empty on a tie) and why the game ended
type GameEnded struct {
	Type     EventType              `json:"type"`
	GameID   model.GameID           `json:"gameId"`
	Scores   map[model.PlayerID]int `json:"scores"`
	WinnerID model.PlayerID         `json:"winnerId"`
	Reason   string                 `json:"reason"`
}

func (GameEnded) EventType() EventType { return EventGameEnded }

func NewGameEnded(gameID model.GameID, scores map[model.PlayerID]int, winnerID model.PlayerID, reason string) GameEnded {
	return GameEnded{Type: EventGameEnded, GameID: gameID, Scores: scores, WinnerID: winnerID, Reason: reason}
}

// ChatReceived relays a chat line to everyone in the game
type ChatReceived struct {
	Type     EventType      `json:"type"`
	GameID   model.GameID   `json:"gameId"`
	PlayerID model.PlayerID `json:"playerId"`
	Username string         `json:"username"`
	Message  string         `json:"message"`
	SentAt   time.Time      `json:"sentAt"`
}

func (ChatReceived) EventType() EventType { return EventChatReceived }

func NewChatReceived(gameID model.GameID, playerID model.PlayerID, username, message string, sentAt time.Time) ChatReceived {
	return ChatReceived{
		Type:     EventChatReceived,
		GameID:   gameID,
		PlayerID: playerID,
		Username: username,
		Message:  message,
		SentAt:   sentAt,
	}
}

// Error reports a command failure without closing the connection
type Error struct {
	Type    EventType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

func (Error) EventType() EventType { return EventError }

func NewError(code, message string) Error {
	return Error{Type: EventError, Code: code, Message: message}
}

type eventHeader struct {
	Type EventType `json:"type"`
}

// DecodeEvent parses a raw event payload into its concrete variant.
// Used on the client side of the protocol.
func DecodeEvent(data []byte) (Event, error) {
	var hdr eventHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, ErrMalformedMessage
	}

	var (
		ev  Event
		err error
	)
	switch hdr.Type {
	case EventQueueJoined:
		var e QueueJoined
		err = json.Unmarshal(data, &e)
		ev = e
	case EventGameCreated:
		var e GameCreated
		err = json.Unmarshal(data, &e)
		ev = e
	case EventRoundStarted:
		var e RoundStarted
		err = json.Unmarshal(data, &e)
		ev = e
	case EventWordResult:
		var e WordResult
		err = json.Unmarshal(data, &e)
		ev = e
	case EventRoundEnded:
		var e RoundEnded
		err = json.Unmarshal(data, &e)
		ev = e
	case EventGameEnded:
		var e GameEnded
		err = json.Unmarshal(data, &e)
		ev = e
	case EventChatReceived:
		var e ChatReceived
		err = json.Unmarshal(data, &e)
		ev = e
	case EventError:
		var e Error
		err = json.Unmarshal(data, &e)
		ev = e
	default:
		return nil, ErrUnknownEvent
	}
	if err != nil {
		return nil, ErrMalformedMessage
	}
	return ev, nil
}
