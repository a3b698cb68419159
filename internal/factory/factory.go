package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/clock"
	"github.com/C0deSamurai/verdant-ecstasy/internal/dependencies/random"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/board"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/lexicon"
	"github.com/C0deSamurai/verdant-ecstasy/internal/services/scoring"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage"
	"github.com/C0deSamurai/verdant-ecstasy/internal/storage/memory"
	redisstorage "github.com/C0deSamurai/verdant-ecstasy/internal/storage/redis"
	"github.com/C0deSamurai/verdant-ecstasy/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	LexiconService *lexicon.Service
	ScoringService *scoring.Service
	BoardService   *board.Service
	HubManager     *sse.HubManager

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the word list (optional)
	// If empty, the lexicon must be loaded manually
	DictionaryPath string
	// ValidateWords rejects moves that form words missing from the lexicon
	ValidateWords bool
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	var closers []io.Closer

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	boardCfg := board.DefaultConfig()
	boardCfg.ValidateWords = cfg.ValidateWords

	app := newWithDependencies(store, clock.New(), random.New(), boardCfg, logger)
	app.closers = closers

	if cfg.DictionaryPath != "" {
		if err := app.LexiconService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
			app.Close()
			return nil, fmt.Errorf("loading dictionary: %w", err)
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, boardCfg board.Config, logger *slog.Logger) *App {
	lexiconService := lexicon.New(store, logger)
	scoringService := scoring.New(lexiconService)
	boardService := board.New(store, scoringService, clk, rnd, boardCfg, logger)

	hubManager := sse.NewHubManager(logger)
	boardService.SetNotifier(sse.NewBroadcaster(hubManager, logger))

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		LexiconService: lexiconService,
		ScoringService: scoringService,
		BoardService:   boardService,
		HubManager:     hubManager,
	}
}

// Close stops live-update hubs and releases storage connections
func (a *App) Close() {
	a.HubManager.Shutdown()
	for _, c := range a.closers {
		_ = c.Close()
	}
}
