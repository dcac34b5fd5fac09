package letters

import (
	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/random"
)

// DefaultPoolSize is the number of letters dealt each round
const DefaultPoolSize = 8

type weightedLetter struct {
	letter string
	weight int
}

// Vowel and consonant frequencies, tuned so most pools can form real words
var (
	vowels = []weightedLetter{
		{"a", 8}, {"e", 12}, {"i", 7}, {"o", 8}, {"u", 3},
	}
	consonants = []weightedLetter{
		{"t", 9}, {"n", 6}, {"r", 6}, {"s", 6},
		{"d", 4}, {"l", 4},
		{"c", 3}, {"m", 3},
		{"b", 2}, {"f", 2}, {"g", 2}, {"h", 2}, {"p", 2}, {"w", 2}, {"y", 2},
		{"j", 1}, {"k", 1}, {"q", 1}, {"v", 1}, {"x", 1}, {"z", 1},
	}
)

// Generator produces weighted random letter pools for rounds
type Generator struct {
	random random.Random
}

// New creates a new letter Generator
func New(rnd random.Random) *Generator {
	return &Generator{random: rnd}
}

// Generate returns a shuffled pool of lowercase letters. The pool always
// contains a playable mix: at least 2 vowels for pools of 6 or more (1
// otherwise), at most 40% vowels, and no letter appears more than 3 times.
func (g *Generator) Generate(count int) []string {
	if count <= 0 {
		return nil
	}

	minVowels := 1
	if count >= 6 {
		minVowels = 2
	}
	if minVowels > count {
		minVowels = count
	}
	maxVowels := count * 2 / 5
	if upper := count - minVowels; maxVowels > upper {
		maxVowels = upper
	}
	if maxVowels < minVowels {
		maxVowels = minVowels
	}

	vowelCount := minVowels + g.random.Intn(maxVowels-minVowels+1)

	seen := make(map[string]int, count)
	pool := make([]string, 0, count)
	for i := 0; i < vowelCount; i++ {
		pool = append(pool, g.pick(vowels, seen))
	}
	for len(pool) < count {
		pool = append(pool, g.pick(consonants, seen))
	}

	g.shuffle(pool)
	return pool
}

// pick draws one weighted letter, softly capping repeats: a letter already
// drawn twice is only kept 20% of the time, and never appears a fourth time.
func (g *Generator) pick(set []weightedLetter, seen map[string]int) string {
	const maxAttempts = 20

	for attempt := 0; attempt < maxAttempts; attempt++ {
		l := g.weightedChoice(set)
		switch {
		case seen[l] < 2:
			seen[l]++
			return l
		case seen[l] == 2 && g.random.Intn(100) < 20:
			seen[l]++
			return l
		}
	}

	// Weights make this near-unreachable; fall back to the least-used letter
	best := set[0].letter
	for _, wl := range set {
		if seen[wl.letter] < seen[best] {
			best = wl.letter
		}
	}
	seen[best]++
	return best
}

func (g *Generator) weightedChoice(set []weightedLetter) string {
	total := 0
	for _, wl := range set {
		total += wl.weight
	}
	roll := g.random.Intn(total)
	for _, wl := range set {
		roll -= wl.weight
		if roll < 0 {
			return wl.letter
		}
	}
	return set[len(set)-1].letter
}

// shuffle is a Fisher-Yates shuffle using the injected randomness
func (g *Generator) shuffle(pool []string) {
	for i := len(pool) - 1; i > 0; i-- {
		j := g.random.Intn(i + 1)
		pool[i], pool[j] = pool[j], pool[i]
	}
}
