package response

import (
	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
)

// PlayerStats represents a player's lifetime stats in API responses
type PlayerStats struct {
	GamesPlayed int `json:"games_played"`
	GamesWon    int `json:"games_won"`
	TotalScore  int `json:"total_score"`
}

// Player represents a player in API responses
type Player struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Stats    PlayerStats `json:"stats"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:       string(p.ID),
		Username: p.Username,
		Stats: PlayerStats{
			GamesPlayed: p.Stats.GamesPlayed,
			GamesWon:    p.Stats.GamesWon,
			TotalScore:  p.Stats.TotalScore,
		},
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// ValidateWord is the response for the word validation endpoint
type ValidateWord struct {
	Word  string `json:"word"`
	Valid bool   `json:"valid"`
	Score int    `json:"score"`
}
