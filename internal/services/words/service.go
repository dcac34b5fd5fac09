package words

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/random"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
)

// MinWordLength is the shortest word accepted in play
const MinWordLength = 3

// Service provides dictionary lookups and word validation against letter pools
type Service struct {
	storage storage.Storage
	random  random.Random

	mu     sync.RWMutex
	words  map[string]struct{}
	list   []string // insertion-ordered copy for random word sets
	loaded bool
}

// New creates a new word validation service
func New(store storage.Storage, rnd random.Random) *Service {
	return &Service{
		storage: store,
		random:  rnd,
		words:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	loaded, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(loaded)
}

// LoadFromFile loads dictionary words from a file (one word per line)
// and persists them to storage for future runs
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var loaded []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			loaded = append(loaded, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, loaded); err != nil {
		return err
	}

	return s.loadWords(loaded)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(loaded []string) error {
	return s.loadWords(loaded)
}

func (s *Service) loadWords(loaded []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(loaded))
	s.list = s.list[:0]
	for _, word := range loaded {
		word = Normalize(word)
		if len(word) < MinWordLength || !isAlpha(word) {
			continue
		}
		if _, ok := s.words[word]; ok {
			continue
		}
		s.words[word] = struct{}{}
		s.list = append(s.list, word)
	}
	s.loaded = true
	return nil
}

// Normalize trims and lowercases a word for comparison
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

func isAlpha(word string) bool {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return len(word) > 0
}

// IsInDictionary checks whether a normalized word exists in the dictionary
func (s *Service) IsInDictionary(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}
	_, ok := s.words[Normalize(word)]
	return ok
}

// CanFormWord checks whether the word can be assembled from the letter pool,
// consuming each pooled letter at most once
func (s *Service) CanFormWord(word string, pool []string) bool {
	word = Normalize(word)
	if word == "" {
		return false
	}

	available := make(map[rune]int, len(pool))
	for _, l := range pool {
		for _, r := range strings.ToLower(l) {
			available[r]++
		}
	}

	for _, r := range word {
		if available[r] == 0 {
			return false
		}
		available[r]--
	}
	return true
}

// Validate applies all play rules: minimum length, formable from the pool,
// and present in the dictionary
func (s *Service) Validate(word string, pool []string) bool {
	word = Normalize(word)
	if len(word) < MinWordLength {
		return false
	}
	if !s.CanFormWord(word, pool) {
		return false
	}
	return s.IsInDictionary(word)
}

// Suggest returns up to max dictionary words formable from the pool
func (s *Service) Suggest(pool []string, max int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []string
	for _, word := range s.list {
		if len(results) >= max {
			break
		}
		if s.CanFormWord(word, pool) {
			results = append(results, word)
		}
	}
	return results
}

// RandomWords returns count distinct random dictionary words
func (s *Service) RandomWords(count int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if count >= len(s.list) {
		result := make([]string, len(s.list))
		copy(result, s.list)
		return result
	}

	picked := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := s.random.Intn(len(s.list))
		if _, ok := picked[idx]; ok {
			continue
		}
		picked[idx] = struct{}{}
		result = append(result, s.list[idx])
	}
	return result
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
	IsInDictionary(word string) bool
	CanFormWord(word string, pool []string) bool
	Validate(word string, pool []string) bool
	Suggest(pool []string, max int) []string
	RandomWords(count int) []string
	IsLoaded() bool
	WordCount() int
}

var _ ServiceInterface = (*Service)(nil)
