package storage

import (
	"context"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error)
	UpdatePlayerStats(ctx context.Context, id model.PlayerID, won bool, score int) error

	// Credential operations
	SaveCredentials(ctx context.Context, creds *model.Credentials) error
	GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error)

	// Game session operations
	SaveGameSession(ctx context.Context, session *model.GameSession) error
	GetGameSession(ctx context.Context, id model.GameID) (*model.GameSession, error)
	DeleteGameSession(ctx context.Context, id model.GameID) error

	// Round operations
	SaveRound(ctx context.Context, round *model.Round) error
	GetRound(ctx context.Context, id model.RoundID) (*model.Round, error)
	AddSubmission(ctx context.Context, roundID model.RoundID, sub model.Submission) error
	GetRoundsForGame(ctx context.Context, gameID model.GameID) ([]*model.Round, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
