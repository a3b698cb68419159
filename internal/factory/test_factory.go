package factory

import (
	"time"

	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/mocks"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage/memory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, board.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small word list covering the test games
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 2-letter words
		"aa", "ab", "ad", "ah", "ai", "am", "an", "at", "ax", "be",
		"do", "ea", "ed", "en", "er", "es", "et", "ex", "go", "ha",
		"he", "hi", "in", "is", "it", "na", "ne", "no", "of", "on",
		"or", "pa", "pi", "qi", "re", "si", "so", "ta", "te", "ti",
		"to", "up", "xi", "za",
		// 3-letter words
		"ape", "ate", "eat", "eta", "hat", "nap", "pan", "pin", "qat", "rap",
		"rat", "sat", "tan", "tea", "zap", "zax", "zea",
		// 4-letter words
		"harp", "pang", "ping", "quip", "rang", "ring", "sing", "zany",
		// 5 and longer
		"angst", "bunch", "garnet", "harping", "quixote", "sequins", "garnets", "strange",
	}
	return t.LexiconService.LoadWords(words)
}
