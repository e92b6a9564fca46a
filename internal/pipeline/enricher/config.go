// internal/pipeline/enricher/config.go
package enricher

import "search-bot/internal/common/config"

type Config struct {
	Provider          string
	InsightMaxTokens  int
	OverviewMaxTokens int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Provider:          cfg.Generation.Provider,
		InsightMaxTokens:  cfg.Generation.InsightMaxTokens,
		OverviewMaxTokens: cfg.Generation.OverviewMaxTokens,
	}
}
