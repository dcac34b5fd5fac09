package game

import (
	"github.com/iqbalShafiq/word-battle-game/internal/services/letters"
	"github.com/iqbalShafiq/word-battle-game/internal/services/words"
)

// LetterGenerator deals the letter pool for a round
type LetterGenerator interface {
	Generate(count int) []string
}

// WordValidator decides whether a submitted word scores against a pool
type WordValidator interface {
	Validate(word string, pool []string) bool
}

var (
	_ LetterGenerator = (*letters.Generator)(nil)
	_ WordValidator   = (*words.Service)(nil)
)
