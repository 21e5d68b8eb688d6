package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type Config struct {
	OsuClientID     string `env:"OSU_CLIENT_ID"`
	OsuClientSecret string `env:"OSU_CLIENT_SECRET"`
	OsuBaseURL      string `env:"OSU_BASE_URL" envDefault:"https://osu.ppy.sh"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	SyncBaseURL    string `env:"SYNC_BASE_URL" envDefault:"http://localhost:8081"`

	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	SyncPort   string `env:"SYNC_PORT" envDefault:"8081"`
	SyncDBPath string `env:"SYNC_DB_PATH" envDefault:"sync.db"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env (if present) and the process environment. Credentials for the
// osu! API are only required by the tracker, see Validate.
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	cfg.OsuBaseURL = strings.TrimRight(cfg.OsuBaseURL, "/")
	cfg.SyncBaseURL = strings.TrimRight(cfg.SyncBaseURL, "/")

	logger.Info().
		Str("storage_backend", cfg.StorageBackend).
		Str("data_dir", cfg.DataDir).
		Str("server_port", cfg.ServerPort).
		Str("sync_port", cfg.SyncPort).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

// Validate checks the settings the tracker binary cannot run without.
func (c *Config) Validate() error {
	if c.OsuClientID == "" || c.OsuClientSecret == "" {
		return fmt.Errorf("OSU_CLIENT_ID and OSU_CLIENT_SECRET are required")
	}
	switch c.StorageBackend {
	case BackendLocal:
	case BackendRemote:
		if c.SyncBaseURL == "" {
			return fmt.Errorf("SYNC_BASE_URL is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

var Module = fx.Provide(Load)
