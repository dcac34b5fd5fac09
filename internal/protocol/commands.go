package protocol

import (
	"encoding/json"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

// CommandType identifies a client command
type CommandType string

const (
	CommandJoinQueue   CommandType = "JoinQueue"
	CommandLeaveQueue  CommandType = "LeaveQueue"
	CommandSubmitWord  CommandType = "SubmitWord"
	CommandEndRound    CommandType = "EndRound"
	CommandChatMessage CommandType = "ChatMessage"
	CommandLeaveGame   CommandType = "LeaveGame"
)

// Command is implemented by every client command variant
type Command interface {
	CommandType() CommandType
}

// JoinQueue asks to enter the matchmaking queue for a mode
type JoinQueue struct {
	PlayerID model.PlayerID `json:"playerId"`
	GameMode model.GameMode `json:"gameMode"`
}

func (JoinQueue) CommandType() CommandType { return CommandJoinQueue }

// LeaveQueue withdraws from all matchmaking queues
type LeaveQueue struct {
	PlayerID model.PlayerID `json:"playerId"`
}

func (LeaveQueue) CommandType() CommandType { return CommandLeaveQueue }

// SubmitWord submits a word for the current round
type SubmitWord struct {
	PlayerID model.PlayerID `json:"playerId"`
	GameID   model.GameID   `json:"gameId"`
	RoundID  model.RoundID  `json:"roundId"`
	Word     string         `json:"word"`
}

func (SubmitWord) CommandType() CommandType { return CommandSubmitWord }

// EndRound asks to end the current round early for everyone
type EndRound struct {
	PlayerID model.PlayerID `json:"playerId"`
	GameID   model.GameID   `json:"gameId"`
	RoundID  model.RoundID  `json:"roundId"`
}

func (EndRound) CommandType() CommandType { return CommandEndRound }

// ChatMessage sends a chat line to everyone in the game
type ChatMessage struct {
	PlayerID model.PlayerID `json:"playerId"`
	GameID   model.GameID   `json:"gameId"`
	Message  string         `json:"message"`
}

func (ChatMessage) CommandType() CommandType { return CommandChatMessage }

// LeaveGame leaves the current game and tears down the connection
type LeaveGame struct {
	PlayerID model.PlayerID `json:"playerId"`
	GameID   model.GameID   `json:"gameId"`
}

func (LeaveGame) CommandType() CommandType { return CommandLeaveGame }

// commandHeader peeks at the discriminator before full decoding
type commandHeader struct {
	Type CommandType `json:"type"`
}

// DecodeCommand parses a command payload into its concrete variant
func DecodeCommand(data []byte) (Command, error) {
	if len(data) == 0 {
		return nil, ErrMissingCommand
	}

	var hdr commandHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, ErrMalformedMessage
	}

	var (
		cmd Command
		err error
	)
	switch hdr.Type {
	case CommandJoinQueue:
		var c JoinQueue
		err = json.Unmarshal(data, &c)
		cmd = c
	case CommandLeaveQueue:
		var c LeaveQueue
		err = json.Unmarshal(data, &c)
		cmd = c
	case CommandSubmitWord:
		var c SubmitWord
		err = json.Unmarshal(data, &c)
		cmd = c
	case CommandEndRound:
		var c EndRound
		err = json.Unmarshal(data, &c)
		cmd = c
	case CommandChatMessage:
		var c ChatMessage
		err = json.Unmarshal(data, &c)
		cmd = c
	case CommandLeaveGame:
		var c LeaveGame
		err = json.Unmarshal(data, &c)
		cmd = c
	default:
		return nil, ErrUnknownCommand
	}

	if err != nil {
		return nil, ErrMalformedMessage
	}
	return cmd, nil
}
