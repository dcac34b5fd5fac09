package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// PlayerStats tracks a player's lifetime record
type PlayerStats struct {
	GamesPlayed int `json:"gamesPlayed"`
	GamesWon    int `json:"gamesWon"`
	TotalScore  int `json:"totalScore"`
}

// Player represents a game participant's profile
type Player struct {
	ID           PlayerID
	Username     string
	Stats        PlayerStats
	CreatedAt    time.Time
	LastActiveAt time.Time
}

// Credentials holds authentication data for a player
// Stored separately from the profile so the hash never travels with it
type Credentials struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
