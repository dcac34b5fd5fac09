package letters

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/random"
)

type GeneratorSuite struct {
	suite.Suite
	generator *Generator
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.generator = New(random.New())
}

func (s *GeneratorSuite) isVowel(letter string) bool {
	switch letter {
	case "a", "e", "i", "o", "u":
		return true
	}
	return false
}

func (s *GeneratorSuite) TestGeneratePoolSize() {
	pool := s.generator.Generate(DefaultPoolSize)
	s.Len(pool, DefaultPoolSize)
}

func (s *GeneratorSuite) TestGenerateZeroOrNegative() {
	s.Nil(s.generator.Generate(0))
	s.Nil(s.generator.Generate(-3))
}

func (s *GeneratorSuite) TestGenerateLettersAreLowercase() {
	pool := s.generator.Generate(DefaultPoolSize)
	for _, l := range pool {
		s.Len(l, 1)
		s.True(l[0] >= 'a' && l[0] <= 'z', "letter %q", l)
	}
}

func (s *GeneratorSuite) TestGenerateVowelBounds() {
	// Repeat to cover the randomness; the invariant must hold every time
	for i := 0; i < 200; i++ {
		pool := s.generator.Generate(DefaultPoolSize)

		vowelCount := 0
		for _, l := range pool {
			if s.isVowel(l) {
				vowelCount++
			}
		}

		s.GreaterOrEqual(vowelCount, 2)
		s.LessOrEqual(vowelCount, 3) // 40% of 8
	}
}

func (s *GeneratorSuite) TestGenerateSmallPoolHasAVowel() {
	for i := 0; i < 100; i++ {
		pool := s.generator.Generate(4)

		vowelCount := 0
		for _, l := range pool {
			if s.isVowel(l) {
				vowelCount++
			}
		}

		s.GreaterOrEqual(vowelCount, 1)
	}
}

func (s *GeneratorSuite) TestGenerateRepeatCap() {
	for i := 0; i < 200; i++ {
		pool := s.generator.Generate(DefaultPoolSize)

		counts := make(map[string]int)
		for _, l := range pool {
			counts[l]++
		}
		for letter, n := range counts {
			s.LessOrEqual(n, 3, "letter %q appeared %d times", letter, n)
		}
	}
}
