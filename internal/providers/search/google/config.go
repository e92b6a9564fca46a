// internal/providers/search/google/config.go
package google

import (
	"time"

	"search-bot/internal/common/config"
)

type Config struct {
	BaseURL    string
	APIKey     string
	EngineID   string
	MaxResults int
	Timeout    time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		BaseURL:    cfg.Search.Google.BaseURL,
		APIKey:     cfg.Search.Google.APIKey,
		EngineID:   cfg.Search.Google.EngineID,
		MaxResults: cfg.Search.Google.MaxResults,
		Timeout:    config.GetDuration(cfg.Search.Google.Timeout),
	}
}
