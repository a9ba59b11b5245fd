// internal/config/validate.go
package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Steam validation
	if c.Steam != nil {
		if c.Steam.APIKey == "" {
			errs = append(errs, "steam.api_key: required when steam is configured")
		}
		if c.Steam.SteamID == "" {
			errs = append(errs, "steam.steam_id: required when steam is configured")
		}
	}

	// IGDB validation
	if c.IGDB != nil {
		if c.IGDB.ClientID == "" {
			errs = append(errs, "igdb.client_id: required when igdb is configured")
		}
		if c.IGDB.ClientSecret == "" {
			errs = append(errs, "igdb.client_secret: required when igdb is configured")
		}
	}

	// Scheduled sync needs both sides of the import pipeline
	if c.Steam != nil && c.Steam.SyncSchedule != "" && c.IGDB == nil {
		errs = append(errs, "steam.sync_schedule: requires igdb credentials to be configured")
	}

	// Import tuning validation
	if c.Import.BatchSize < 0 {
		errs = append(errs, fmt.Sprintf("import.batch_size: must be positive, got %d", c.Import.BatchSize))
	}
	for name, v := range map[string]float64{
		"import.similarity_floor": c.Import.SimilarityFloor,
		"import.word_penalty":     c.Import.WordPenalty,
		"import.score_floor":      c.Import.ScoreFloor,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("%s: must be between 0 and 1, got %v", name, v))
		}
	}

	return errs
}
