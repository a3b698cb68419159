package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/C0deSamurai/verdant-ecstasy/internal/api"
	"github.com/C0deSamurai/verdant-ecstasy/internal/config"
	"github.com/C0deSamurai/verdant-ecstasy/internal/factory"
	"github.com/C0deSamurai/verdant-ecstasy/internal/server"
	redisstorage "github.com/C0deSamurai/verdant-ecstasy/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate has already checked the level
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		ValidateWords: cfg.ValidateWords,
		Logger:        logger,
		StorageType:   cfg.StorageType,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.Prefix = cfg.RedisPrefix
		redisCfg.GameTTL = cfg.GameTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	// A stored word list survives restarts with redis storage; the file is
	// only needed when nothing has been stored yet.
	if err := app.LexiconService.LoadFromStorage(context.Background()); err != nil {
		if err := app.LexiconService.LoadFromFile(context.Background(), cfg.DictionaryPath); err != nil {
			logger.Warn("could not load dictionary, word checks are disabled",
				slog.String("path", cfg.DictionaryPath),
				slog.String("error", err.Error()))
		}
	}

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	serverCfg.ShutdownTimeout = cfg.ShutdownTimeout
	srv := api.NewServer(server.NewHandler(app, logger), serverCfg, logger)
	srv.OnShutdown(app.HubManager.Shutdown)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		slog.String("addr", serverCfg.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.Int("dictionary_words", app.LexiconService.WordCount()))

	if err := srv.ListenAndRun(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		app.Close()
		os.Exit(1)
	}

	logger.Info("server stopped")
}
