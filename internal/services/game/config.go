package game

import "time"

// Config holds the tunable rules of a game
type Config struct {
	// MaxRounds is the number of rounds per game
	MaxRounds int
	// RoundDuration is how long players have to submit words each round
	RoundDuration time.Duration
	// BreakDuration is the pause between rounds
	BreakDuration time.Duration
	// StartDelay is the pause between match creation and the first round
	StartDelay time.Duration
	// LettersPerRound is the size of the letter pool dealt each round
	LettersPerRound int
	// MinPlayers is the fewest players a game can continue with
	MinPlayers int
	// StaleThreshold is how long a room may sit idle before being reaped
	StaleThreshold time.Duration
	// SweepInterval is how often the registry scans for stale rooms
	SweepInterval time.Duration
}

// DefaultConfig returns the standard ruleset
func DefaultConfig() Config {
	return Config{
		MaxRounds:       5,
		RoundDuration:   60 * time.Second,
		BreakDuration:   5 * time.Second,
		StartDelay:      5 * time.Second,
		LettersPerRound: 8,
		MinPlayers:      2,
		StaleThreshold:  2 * time.Hour,
		SweepInterval:   5 * time.Minute,
	}
}
