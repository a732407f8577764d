// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the client's environment-backed configuration. A .env file is
// honored via godotenv autoload in main.
type Config struct {
	// ServerURL is the game server's websocket endpoint.
	ServerURL string `env:"AGAINST_SERVER_URL" envDefault:"ws://localhost:8080/ws"`

	// GameID identifies the game to join. Required.
	GameID string `env:"AGAINST_GAME_ID"`

	// IdentityFile stores the persistent player id. Defaults to a file
	// under the user config dir when empty.
	IdentityFile string `env:"AGAINST_IDENTITY_FILE"`

	// LogLevel is a logrus level name.
	LogLevel string `env:"AGAINST_LOG_LEVEL" envDefault:"info"`

	// RedisAddr enables the inbound-event journal when non-empty.
	RedisAddr    string `env:"AGAINST_REDIS_ADDR"`
	RedisDB      int    `env:"AGAINST_REDIS_DB" envDefault:"0"`
	JournalQueue string `env:"AGAINST_JOURNAL_QUEUE" envDefault:"against_events"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
