package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound  = errors.New("game not found")
	ErrGameOver      = errors.New("game is already over")
	ErrNotInGame     = errors.New("player is not in this game")
	ErrInvalidMode   = errors.New("invalid game mode")
	ErrGameNotActive = errors.New("game has no active round")

	ErrInsufficientPlayers = errors.New("not enough players for a game")

	// Round errors
	ErrRoundNotFound  = errors.New("round not found")
	ErrRoundNotActive = errors.New("round is not active")
	ErrRoundMismatch  = errors.New("round is not the current round")
	ErrDuplicateWord  = errors.New("word already submitted this round")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
