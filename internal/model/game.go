package model

import "time"

// GameID uniquely identifies a game session
type GameID string

// RoundID uniquely identifies a round within a game
type RoundID string

// GameMode selects the matchmaking pool and ruleset for a game
type GameMode string

const (
	ModeClassic     GameMode = "CLASSIC"
	ModeVoiceBattle GameMode = "VOICE_BATTLE"
	ModeAsymmetric  GameMode = "ASYMMETRIC"
	ModeTimeAttack  GameMode = "TIME_ATTACK"
)

// Valid reports whether the mode is one of the known game modes
func (m GameMode) Valid() bool {
	switch m {
	case ModeClassic, ModeVoiceBattle, ModeAsymmetric, ModeTimeAttack:
		return true
	}
	return false
}

// GameStatus tracks where a session is in its lifecycle
type GameStatus string

const (
	StatusWaiting     GameStatus = "WAITING"
	StatusRoundActive GameStatus = "ROUND_ACTIVE"
	StatusRoundOver   GameStatus = "ROUND_OVER"
	StatusGameOver    GameStatus = "GAME_OVER"
)

// GameSession is the persistent record of a match
type GameSession struct {
	ID        GameID
	Players   []PlayerID
	Mode      GameMode
	Status    GameStatus
	WinnerID  PlayerID // empty until the game ends, and on a tie
	CreatedAt time.Time
	EndedAt   time.Time
}

// HasPlayer reports whether the given player is part of this session
func (g *GameSession) HasPlayer(id PlayerID) bool {
	for _, p := range g.Players {
		if p == id {
			return true
		}
	}
	return false
}

// Round is one timed round of a game
type Round struct {
	ID          RoundID
	GameID      GameID
	Number      int // 1-based
	Letters     []string
	StartedAt   time.Time
	Submissions []Submission
}

// Submission records one word submitted during a round
type Submission struct {
	PlayerID    PlayerID
	Word        string
	Valid       bool
	Score       int
	SubmittedAt time.Time
}
