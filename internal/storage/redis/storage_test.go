package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour
	cfg.RoundTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "player-1",
		Username:  "alice",
		CreatedAt: time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerByUsername() {
	player := &model.Player{ID: "player-1", Username: "alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	retrieved, err := s.storage.GetPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), retrieved.ID)
}

func (s *StorageSuite) TestUpdatePlayerStats() {
	player := &model.Player{ID: "player-1", Username: "alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	s.Require().NoError(s.storage.UpdatePlayerStats(s.ctx, "player-1", true, 42))

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1, retrieved.Stats.GamesPlayed)
	s.Equal(1, retrieved.Stats.GamesWon)
	s.Equal(42, retrieved.Stats.TotalScore)
}

// Credential tests

func (s *StorageSuite) TestSaveAndGetCredentials() {
	creds := &model.Credentials{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}

	err := s.storage.SaveCredentials(s.ctx, creds)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetCredentialsByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(creds.PlayerID, retrieved.PlayerID)
	s.Equal(creds.PasswordHash, retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetCredentialsNotFound() {
	_, err := s.storage.GetCredentialsByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Game session tests

func (s *StorageSuite) TestSaveAndGetGameSession() {
	session := &model.GameSession{
		ID:        "game-1",
		Players:   []model.PlayerID{"p1", "p2"},
		Mode:      model.ModeClassic,
		Status:    model.StatusRoundActive,
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveGameSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGameSession(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(session.Players, retrieved.Players)
	s.Equal(model.StatusRoundActive, retrieved.Status)
}

func (s *StorageSuite) TestGetGameSessionNotFound() {
	_, err := s.storage.GetGameSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSessionTTLApplied() {
	session := &model.GameSession{ID: "game-1", Players: []model.PlayerID{"p1", "p2"}}
	s.Require().NoError(s.storage.SaveGameSession(s.ctx, session))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetGameSession(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestDeleteGameSessionRemovesRounds() {
	session := &model.GameSession{ID: "game-1", Players: []model.PlayerID{"p1", "p2"}}
	s.Require().NoError(s.storage.SaveGameSession(s.ctx, session))
	s.Require().NoError(s.storage.SaveRound(s.ctx, &model.Round{ID: "round-1", GameID: "game-1", Number: 1}))

	s.Require().NoError(s.storage.DeleteGameSession(s.ctx, "game-1"))

	_, err := s.storage.GetGameSession(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	_, err = s.storage.GetRound(s.ctx, "round-1")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

// Round tests

func (s *StorageSuite) TestSaveAndGetRound() {
	round := &model.Round{
		ID:      "round-1",
		GameID:  "game-1",
		Number:  1,
		Letters: []string{"c", "a", "t", "s"},
	}

	err := s.storage.SaveRound(s.ctx, round)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Equal(round.Letters, retrieved.Letters)
}

func (s *StorageSuite) TestAddSubmission() {
	round := &model.Round{ID: "round-1", GameID: "game-1", Number: 1}
	s.Require().NoError(s.storage.SaveRound(s.ctx, round))

	sub := model.Submission{PlayerID: "p1", Word: "cat", Valid: true, Score: 5}
	s.Require().NoError(s.storage.AddSubmission(s.ctx, "round-1", sub))

	retrieved, err := s.storage.GetRound(s.ctx, "round-1")
	s.Require().NoError(err)
	s.Require().Len(retrieved.Submissions, 1)
	s.Equal("cat", retrieved.Submissions[0].Word)
}

func (s *StorageSuite) TestAddSubmissionRoundNotFound() {
	err := s.storage.AddSubmission(s.ctx, "nonexistent", model.Submission{})
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *StorageSuite) TestGetRoundsForGameOrdered() {
	s.Require().NoError(s.storage.SaveRound(s.ctx, &model.Round{ID: "round-2", GameID: "game-1", Number: 2}))
	s.Require().NoError(s.storage.SaveRound(s.ctx, &model.Round{ID: "round-1", GameID: "game-1", Number: 1}))

	rounds, err := s.storage.GetRoundsForGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().Len(rounds, 2)
	s.Equal(1, rounds[0].Number)
	s.Equal(2, rounds[1].Number)
}

func (s *StorageSuite) TestGetRoundsForGameEmpty() {
	rounds, err := s.storage.GetRoundsForGame(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(rounds)
}

// Dictionary tests

func (s *StorageSuite) TestDictionaryNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"cat", "dog", "sun"}
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, words))

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}
