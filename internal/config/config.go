package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, loaded from the environment.
type Config struct {
	Host string `env:"SCRABBLE_HOST"`
	Port int    `env:"SCRABBLE_PORT" envDefault:"8080"`

	// StorageType selects the storage backend: memory, sqlite or redis
	StorageType string `env:"SCRABBLE_STORAGE_TYPE" envDefault:"sqlite"`
	SQLitePath  string `env:"SCRABBLE_SQLITE_PATH" envDefault:"scrabble.db"`
	RedisURL    string `env:"SCRABBLE_REDIS_URL"`

	// DictionaryPath and DictionaryURL are alternative word list sources.
	// With neither set, word validation is disabled.
	DictionaryPath string `env:"SCRABBLE_DICTIONARY_PATH" envDefault:"data/words.txt"`
	DictionaryURL  string `env:"SCRABBLE_DICTIONARY_URL"`

	SessionDuration time.Duration `env:"SCRABBLE_SESSION_DURATION" envDefault:"24h"`

	LogLevel string `env:"SCRABBLE_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
