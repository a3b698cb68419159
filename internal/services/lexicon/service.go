package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/C0deSamurai/verdant-ecstasy/internal/model"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage"
)

// MinWordLength is the shortest word that can be played
const MinWordLength = 2

// Service holds the word list and answers word-game queries against it
type Service struct {
	storage storage.WordStore
	logger  *slog.Logger

	mu         sync.RWMutex
	words      map[string]struct{}
	alphagrams map[string][]string
	loaded     bool
}

// New creates a new LexiconService
func New(storage storage.WordStore, logger *slog.Logger) *Service {
	return &Service{
		storage:    storage,
		logger:     logger,
		words:      make(map[string]struct{}),
		alphagrams: make(map[string][]string),
	}
}

// LoadFromStorage loads the word list from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words, "storage")
}

// LoadFromFile loads the word list from a file (one word per line) and saves
// it to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words, path)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words, "memory")
}

func (s *Service) loadWords(words []string, source string) error {
	normalised := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToUpper(strings.TrimSpace(w))
		return w, w != "" && isLetters(w)
	}))

	index := make(map[string][]string)
	set := make(map[string]struct{}, len(normalised))
	for _, w := range normalised {
		set[w] = struct{}{}
		key := alphagram(w)
		index[key] = append(index[key], w)
	}

	s.mu.Lock()
	s.words = set
	s.alphagrams = index
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("dictionary loaded",
		slog.String("source", source),
		slog.Int("word_count", len(set)),
		slog.Int("skipped", len(words)-len(set)),
	)
	return nil
}

// IsValidWord checks if a word is in the word list. Words must be at least
// MinWordLength letters; case is ignored.
func (s *Service) IsValidWord(word string) bool {
	if len(word) < MinWordLength {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToUpper(word)]
	return ok
}

// InvalidWords returns the words that are not in the word list, keeping
// their order
func (s *Service) InvalidWords(words []string) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		return !s.IsValidWord(w)
	})
}

// IsLoaded returns whether the word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the word list
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Anagrams returns every word that uses all of the given letters. A '?' is a
// blank and matches any letter.
func (s *Service) Anagrams(letters string) []string {
	rack, blanks, ok := parseRack(letters)
	if !ok {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if blanks == 0 {
		return sortedWords(s.alphagrams[alphagram(rack)])
	}

	size := len(rack) + blanks
	var results []string
	for key, words := range s.alphagrams {
		if len(key) == size && fits(key, rack, blanks) {
			results = append(results, words...)
		}
	}
	return sortedWords(results)
}

// Subanagrams returns every word that can be made from some of the given
// letters, longest first
func (s *Service) Subanagrams(letters string) []string {
	rack, blanks, ok := parseRack(letters)
	if !ok {
		return []string{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	size := len(rack) + blanks
	var results []string
	for key, words := range s.alphagrams {
		if len(key) >= MinWordLength && len(key) <= size && fits(key, rack, blanks) {
			results = append(results, words...)
		}
	}
	results = sortedWords(results)
	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i]) > len(results[j])
	})
	return results
}

// PatternMatch returns every word matching pattern. '?' matches exactly one
// letter and '*' matches any run of letters, including none.
func (s *Service) PatternMatch(pattern string) ([]string, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := lo.Filter(lo.Keys(s.words), func(w string, _ int) bool {
		return re.MatchString(w)
	})
	return sortedWords(matches), nil
}

// FrontHooks returns the letters that can be put in front of word to make
// another word
func (s *Service) FrontHooks(word string) string {
	word = strings.ToUpper(word)
	return s.hooks(func(letter rune) string { return string(letter) + word })
}

// BackHooks returns the letters that can be put after word to make another
// word
func (s *Service) BackHooks(word string) string {
	word = strings.ToUpper(word)
	return s.hooks(func(letter rune) string { return word + string(letter) })
}

func (s *Service) hooks(extend func(rune) string) string {
	var sb strings.Builder
	for _, letter := range model.Alphabet {
		if s.IsValidWord(extend(letter)) {
			sb.WriteRune(letter)
		}
	}
	return sb.String()
}

// parseRack splits query letters into sorted letters and a blank count
func parseRack(letters string) (string, int, bool) {
	letters = strings.ToUpper(letters)
	blanks := strings.Count(letters, string(model.BlankKind))
	rack := strings.ReplaceAll(letters, string(model.BlankKind), "")
	if !isLetters(rack) {
		return "", 0, false
	}
	return alphagram(rack), blanks, true
}

// fits reports whether key (an alphagram) can be spelled with the sorted
// rack letters plus blanks
func fits(key, rack string, blanks int) bool {
	i := 0
	for _, r := range key {
		for i < len(rack) && rune(rack[i]) < r {
			i++
		}
		if i < len(rack) && rune(rack[i]) == r {
			i++
			continue
		}
		if blanks == 0 {
			return false
		}
		blanks--
	}
	return true
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", model.ErrInvalidSyntax)
	}
	var sb strings.Builder
	sb.WriteString("^")
	for _, r := range strings.ToUpper(pattern) {
		switch {
		case r == '?':
			sb.WriteString("[A-Z]")
		case r == '*':
			sb.WriteString("[A-Z]*")
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		default:
			return nil, fmt.Errorf("%w: unexpected %q in pattern %q", model.ErrInvalidSyntax, r, pattern)
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

func alphagram(word string) string {
	letters := []rune(word)
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func sortedWords(words []string) []string {
	out := append([]string{}, words...)
	sort.Strings(out)
	return out
}

// ServiceInterface is the lexicon API used by other services
type ServiceInterface interface {
	model.Lexicon
	IsLoaded() bool
	WordCount() int
	InvalidWords(words []string) []string
	Subanagrams(letters string) []string
	FrontHooks(word string) string
	BackHooks(word string) string
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)
