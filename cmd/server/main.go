package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/scrabble-go/internal/api"
	"github.com/mcoot/scrabble-go/internal/config"
	"github.com/mcoot/scrabble-go/internal/factory"
	"github.com/mcoot/scrabble-go/internal/scheduler"
	redisstorage "github.com/mcoot/scrabble-go/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		SQLitePath:  cfg.SQLitePath,
	}
	factoryCfg.AuthConfig.SessionDuration = cfg.SessionDuration

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("SCRABBLE_REDIS_URL required when storage type is redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Storage.Close() }()

	// Load the word list; without one, word validation is disabled
	loadDictionary(app, cfg, logger)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
	})

	// Start maintenance jobs
	sched, err := scheduler.New(app.AuthService, app.HubManager, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	defer func() { _ = sched.Stop() }()

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// loadDictionary loads the word list from a URL or file, preferring the URL
func loadDictionary(app *factory.App, cfg config.Config, logger *slog.Logger) {
	if cfg.DictionaryURL != "" {
		if err := app.DictionaryService.LoadFromURL(context.Background(), cfg.DictionaryURL); err != nil {
			logger.Warn("could not load dictionary from URL",
				slog.String("url", cfg.DictionaryURL),
				slog.String("error", err.Error()))
		} else {
			logger.Info("dictionary loaded",
				slog.String("source", cfg.DictionaryURL),
				slog.Int("words", app.DictionaryService.WordCount()))
			return
		}
	}

	if cfg.DictionaryPath != "" {
		if err := app.DictionaryService.LoadFromFile(cfg.DictionaryPath); err != nil {
			logger.Warn("could not load dictionary",
				slog.String("path", cfg.DictionaryPath),
				slog.String("error", err.Error()))
			return
		}
		logger.Info("dictionary loaded",
			slog.String("source", cfg.DictionaryPath),
			slog.Int("words", app.DictionaryService.WordCount()))
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
