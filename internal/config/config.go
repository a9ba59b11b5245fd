// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Steam    *SteamConfig   `toml:"steam"`
	IGDB     *IGDBConfig    `toml:"igdb"`
	Import   ImportConfig   `toml:"import"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// SteamConfig holds Steam Web API credentials and the optional sync schedule.
type SteamConfig struct {
	APIKey       string `toml:"api_key"`
	SteamID      string `toml:"steam_id"`
	SyncSchedule string `toml:"sync_schedule"` // cron expression; empty disables scheduled sync
}

// IGDBConfig holds Twitch OAuth credentials for the IGDB catalog.
type IGDBConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// ImportConfig holds reconciliation tuning. The matching floors are policy
// constants, deliberately configurable rather than baked in.
type ImportConfig struct {
	BatchSize       int     `toml:"batch_size"`
	BatchDelayMS    int     `toml:"batch_delay_ms"`
	SearchLimit     int     `toml:"search_limit"`
	SimilarityFloor float64 `toml:"similarity_floor"`
	WordPenalty     float64 `toml:"word_penalty"`
	ScoreFloor      float64 `toml:"score_floor"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8480
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/gamevault.db"
	}
	if cfg.Import.BatchSize == 0 {
		cfg.Import.BatchSize = 10
	}
	if cfg.Import.BatchDelayMS == 0 {
		cfg.Import.BatchDelayMS = 100
	}
	if cfg.Import.SearchLimit == 0 {
		cfg.Import.SearchLimit = 5
	}
	if cfg.Import.SimilarityFloor == 0 {
		cfg.Import.SimilarityFloor = 0.85
	}
	if cfg.Import.WordPenalty == 0 {
		cfg.Import.WordPenalty = 0.1
	}
	if cfg.Import.ScoreFloor == 0 {
		cfg.Import.ScoreFloor = 0.8
	}

	return &cfg, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
