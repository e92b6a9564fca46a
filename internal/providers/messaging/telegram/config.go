// internal/providers/messaging/telegram/config.go
package telegram

import (
	"strings"
	"time"

	"search-bot/internal/common/config"
)

type Config struct {
	BaseURL  string
	BotToken string
	Timeout  time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		BaseURL:  strings.TrimRight(cfg.Telegram.BaseURL, "/"),
		BotToken: cfg.Telegram.BotToken,
		Timeout:  config.GetDuration(cfg.Telegram.Timeout),
	}
}
