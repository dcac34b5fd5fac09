package scoring

import (
	"strings"
	"time"

	"github.com/iqbalShafiq/word-battle-game/internal/model"
)

// Per-letter base values
var letterScores = map[rune]int{
	'a': 1, 'b': 3, 'c': 3, 'd': 2, 'e': 1, 'f': 4, 'g': 2, 'h': 4,
	'i': 1, 'j': 8, 'k': 5, 'l': 1, 'm': 3, 'n': 1, 'o': 1, 'p': 3,
	'q': 10, 'r': 1, 's': 1, 't': 1, 'u': 1, 'v': 4, 'w': 4, 'x': 8,
	'y': 4, 'z': 10,
}

// Length bonus tiers; the highest tier not exceeding the word length applies
var lengthBonuses = []struct {
	length int
	bonus  int
}{
	{10, 15}, {9, 11}, {8, 8}, {7, 5}, {6, 3}, {5, 2}, {4, 1},
}

// Letters that award a flat rarity bonus when present
const rareLetters = "qzxj"

// RareLetterBonus is added once if a word contains any rare letter
const RareLetterBonus = 5

// Service computes word scores and round bonuses
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ScoreWord computes the base score for a word: the sum of its letter
// values, plus a length tier bonus, plus a flat bonus if it contains a
// rare letter. Case-insensitive.
func (s *Service) ScoreWord(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return 0
	}

	score := 0
	for _, r := range word {
		score += letterScores[r]
	}

	for _, tier := range lengthBonuses {
		if len(word) >= tier.length {
			score += tier.bonus
			break
		}
	}

	if strings.ContainsAny(word, rareLetters) {
		score += RareLetterBonus
	}

	return score
}

// TimeBonus rewards early submissions. Submissions in the second half of
// the round earn nothing; earlier ones earn up to 10 scaled linearly.
func (s *Service) TimeBonus(elapsed, roundDuration time.Duration) int {
	if roundDuration <= 0 || elapsed < 0 || elapsed > roundDuration/2 {
		return 0
	}
	fraction := 1 - float64(elapsed)/float64(roundDuration)
	return int(fraction * 10)
}

// StreakBonus rewards consecutive valid submissions within a game
func (s *Service) StreakBonus(streak int) int {
	switch {
	case streak >= 5:
		return 10
	case streak >= 3:
		return 5
	default:
		return 0
	}
}

// DetermineWinner returns the player with the highest total, or empty on a tie
func (s *Service) DetermineWinner(totals map[model.PlayerID]int) model.PlayerID {
	var (
		winner model.PlayerID
		best   int
		tied   bool
		first  = true
	)
	for playerID, total := range totals {
		switch {
		case first || total > best:
			winner, best, tied, first = playerID, total, false, false
		case total == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return winner
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWord(word string) int
	TimeBonus(elapsed, roundDuration time.Duration) int
	StreakBonus(streak int) int
	DetermineWinner(totals map[model.PlayerID]int) model.PlayerID
}

var _ ServiceInterface = (*Service)(nil)
