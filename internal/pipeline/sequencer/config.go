// internal/pipeline/sequencer/config.go
package sequencer

import (
	"time"

	"search-bot/internal/common/config"
)

type Config struct {
	ShortPause time.Duration // after header and overview
	LongPause  time.Duration // after each result

	FallbackTimeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		ShortPause: config.GetDuration(cfg.Delivery.ShortPause),
		LongPause:  config.GetDuration(cfg.Delivery.LongPause),

		FallbackTimeout: config.GetDuration(cfg.Delivery.FallbackTimeout),
	}
}
