package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Base word scoring

func (s *ServiceSuite) TestScoreEmptyWord() {
	s.Equal(0, s.service.ScoreWord(""))
	s.Equal(0, s.service.ScoreWord("   "))
}

func (s *ServiceSuite) TestScoreShortWordIsLetterSum() {
	// c=3, a=1, t=1; no length bonus below 4 letters
	s.Equal(5, s.service.ScoreWord("cat"))
}

func (s *ServiceSuite) TestScoreIsCaseInsensitive() {
	s.Equal(s.service.ScoreWord("cat"), s.service.ScoreWord("CaT"))
}

func (s *ServiceSuite) TestScoreAppliesLengthBonus() {
	// t=1, r=1, e=1, e=1 = 4, plus +1 for length 4
	s.Equal(5, s.service.ScoreWord("tree"))
	// s=1, t=1, o=1, n=1, e=1 = 5, plus +2 for length 5
	s.Equal(7, s.service.ScoreWord("stone"))
}

func (s *ServiceSuite) TestScoreAppliesRareLetterBonus() {
	// j=8, a=1, m=3 = 12, plus +5 rare letter
	s.Equal(17, s.service.ScoreWord("jam"))
	// q=10, u=1, i=1, z=10 = 22, plus +1 length, plus +5 rare (flat, not per letter)
	s.Equal(28, s.service.ScoreWord("quiz"))
}

func (s *ServiceSuite) TestLongerWordNeverScoresLess() {
	words := []string{"at", "ate", "late", "plate", "plates"}
	prev := 0
	for _, w := range words {
		score := s.service.ScoreWord(w)
		s.GreaterOrEqual(score, prev, "word %q", w)
		prev = score
	}
}

// Time bonus

func (s *ServiceSuite) TestTimeBonusZeroAfterHalfway() {
	s.Equal(0, s.service.TimeBonus(31*time.Second, 60*time.Second))
	s.Equal(0, s.service.TimeBonus(60*time.Second, 60*time.Second))
}

func (s *ServiceSuite) TestTimeBonusScalesWithSpeed() {
	s.Equal(10, s.service.TimeBonus(0, 60*time.Second))
	s.Equal(7, s.service.TimeBonus(15*time.Second, 60*time.Second))
	s.Equal(5, s.service.TimeBonus(30*time.Second, 60*time.Second))
}

func (s *ServiceSuite) TestTimeBonusDegenerateInputs() {
	s.Equal(0, s.service.TimeBonus(10*time.Second, 0))
	s.Equal(0, s.service.TimeBonus(-time.Second, 60*time.Second))
}

// Streak bonus

func (s *ServiceSuite) TestStreakBonusTiers() {
	s.Equal(0, s.service.StreakBonus(0))
	s.Equal(0, s.service.StreakBonus(2))
	s.Equal(5, s.service.StreakBonus(3))
	s.Equal(5, s.service.StreakBonus(4))
	s.Equal(10, s.service.StreakBonus(5))
	s.Equal(10, s.service.StreakBonus(12))
}

// Winner determination

func (s *ServiceSuite) TestDetermineWinner() {
	winner := s.service.DetermineWinner(map[model.PlayerID]int{
		"p1": 30,
		"p2": 45,
	})
	s.Equal(model.PlayerID("p2"), winner)
}

func (s *ServiceSuite) TestDetermineWinnerTieIsEmpty() {
	winner := s.service.DetermineWinner(map[model.PlayerID]int{
		"p1": 30,
		"p2": 30,
	})
	s.Equal(model.PlayerID(""), winner)
}

func (s *ServiceSuite) TestDetermineWinnerEmptyTotals() {
	s.Equal(model.PlayerID(""), s.service.DetermineWinner(nil))
}
