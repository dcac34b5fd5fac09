package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players         map[model.PlayerID]*model.Player
	credentials     map[model.PlayerID]*model.Credentials
	usernameIndex   map[string]model.PlayerID
	sessions        map[model.GameID]*model.GameSession
	rounds          map[model.RoundID]*model.Round
	roundsByGame    map[model.GameID][]model.RoundID
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:       make(map[model.PlayerID]*model.Player),
		credentials:   make(map[model.PlayerID]*model.Credentials),
		usernameIndex: make(map[string]model.PlayerID),
		sessions:      make(map[model.GameID]*model.GameSession),
		rounds:        make(map[model.RoundID]*model.Round),
		roundsByGame:  make(map[model.GameID][]model.RoundID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *player
	s.players[player.ID] = &copied
	s.usernameIndex[player.Username] = player.ID
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) UpdatePlayerStats(ctx context.Context, id model.PlayerID, won bool, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	player.Stats.GamesPlayed++
	if won {
		player.Stats.GamesWon++
	}
	player.Stats.TotalScore += score
	return nil
}

// Credential operations

func (s *Storage) SaveCredentials(ctx context.Context, creds *model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *creds
	s.credentials[creds.PlayerID] = &copied
	s.usernameIndex[creds.Username] = creds.PlayerID
	return nil
}

func (s *Storage) GetCredentialsByUsername(ctx context.Context, username string) (*model.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	creds, ok := s.credentials[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *creds
	return &copied, nil
}

// Game session operations

func (s *Storage) SaveGameSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *session
	copied.Players = append([]model.PlayerID(nil), session.Players...)
	s.sessions[session.ID] = &copied
	return nil
}

func (s *Storage) GetGameSession(ctx context.Context, id model.GameID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	copied := *session
	copied.Players = append([]model.PlayerID(nil), session.Players...)
	return &copied, nil
}

func (s *Storage) DeleteGameSession(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	for _, roundID := range s.roundsByGame[id] {
		delete(s.rounds, roundID)
	}
	delete(s.roundsByGame, id)
	return nil
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, round *model.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := copyRound(round)
	if _, exists := s.rounds[round.ID]; !exists {
		s.roundsByGame[round.GameID] = append(s.roundsByGame[round.GameID], round.ID)
	}
	s.rounds[round.ID] = copied
	return nil
}

func (s *Storage) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.rounds[id]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	return copyRound(round), nil
}

func (s *Storage) AddSubmission(ctx context.Context, roundID model.RoundID, sub model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	round, ok := s.rounds[roundID]
	if !ok {
		return model.ErrRoundNotFound
	}
	round.Submissions = append(round.Submissions, sub)
	return nil
}

func (s *Storage) GetRoundsForGame(ctx context.Context, gameID model.GameID) ([]*model.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.roundsByGame[gameID]
	rounds := make([]*model.Round, 0, len(ids))
	for _, id := range ids {
		if round, ok := s.rounds[id]; ok {
			rounds = append(rounds, copyRound(round))
		}
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
	return rounds, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}

func copyRound(round *model.Round) *model.Round {
	copied := *round
	copied.Letters = append([]string(nil), round.Letters...)
	copied.Submissions = append([]model.Submission(nil), round.Submissions...)
	return &copied
}
