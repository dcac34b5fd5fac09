package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/clock"
	"github.com/iqbalShafiq/word-battle-game/internal/dependencies/random"
	"github.com/iqbalShafiq/word-battle-game/internal/services/auth"
	"github.com/iqbalShafiq/word-battle-game/internal/services/game"
	"github.com/iqbalShafiq/word-battle-game/internal/services/letters"
	"github.com/iqbalShafiq/word-battle-game/internal/services/matchmaking"
	"github.com/iqbalShafiq/word-battle-game/internal/services/scoring"
	"github.com/iqbalShafiq/word-battle-game/internal/services/words"
	"github.com/iqbalShafiq/word-battle-game/internal/session"
	"github.com/iqbalShafiq/word-battle-game/internal/storage"
	"github.com/iqbalShafiq/word-battle-game/internal/storage/memory"
	redisstorage "github.com/iqbalShafiq/word-battle-game/internal/storage/redis"
	"github.com/iqbalShafiq/word-battle-game/internal/transport/ws"
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
	WordsService       *words.Service
	ScoringService     *scoring.Service
	LetterGenerator    *letters.Generator
	AuthService        *auth.Service
	SessionRegistry    *session.Registry
	GameRegistry       *game.Registry
	MatchmakingService *matchmaking.Service

	// Transport
	Dispatcher       *ws.Dispatcher
	WebsocketHandler *ws.Handler
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, the dictionary is loaded from storage
	DictionaryPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds round timing and scoring knobs (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// MatchmakingConfig holds queue sizing and tick settings (optional)
	// If zero value, defaults to matchmaking.DefaultConfig()
	MatchmakingConfig matchmaking.Config
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
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Fill in defaults for zero-value configs
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	gameCfg := cfg.GameConfig
	if gameCfg.MaxRounds == 0 {
		gameCfg = game.DefaultConfig()
	}
	mmCfg := cfg.MatchmakingConfig
	if mmCfg.RequiredPlayers == nil {
		mmCfg = matchmaking.DefaultConfig()
	}

	app := newWithDependencies(store, clk, rnd, authCfg, gameCfg, mmCfg, logger)

	if cfg.DictionaryPath != "" {
		if err := app.WordsService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
			return nil, err
		}
	} else {
		// Best effort: a previously persisted dictionary may exist
		if err := app.WordsService.LoadFromStorage(context.Background()); err != nil {
			logger.Warn("no dictionary loaded at startup", slog.String("error", err.Error()))
		}
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	gameCfg game.Config,
	mmCfg matchmaking.Config,
	logger *slog.Logger,
) *App {
	// Create services
	wordsService := words.New(store, rnd)
	scoringService := scoring.New()
	letterGenerator := letters.New(rnd)
	authService := auth.New(store, clk, authCfg)
	sessionRegistry := session.NewRegistry(logger)
	gameRegistry := game.NewRegistry(gameCfg, store, wordsService, scoringService, letterGenerator, sessionRegistry, clk, logger)
	matchmakingService := matchmaking.New(mmCfg, gameRegistry, sessionRegistry, clk, logger)

	// Create transport
	dispatcher := ws.NewDispatcher(sessionRegistry, matchmakingService, gameRegistry, store, clk, logger)
	websocketHandler := ws.NewHandler(authService, sessionRegistry, dispatcher, logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		WordsService:       wordsService,
		ScoringService:     scoringService,
		LetterGenerator:    letterGenerator,
		AuthService:        authService,
		SessionRegistry:    sessionRegistry,
		GameRegistry:       gameRegistry,
		MatchmakingService: matchmakingService,
		Dispatcher:         dispatcher,
		WebsocketHandler:   websocketHandler,
	}
}
