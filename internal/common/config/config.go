// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Search     SearchConfig     `mapstructure:"search"`
	Generation GenerationConfig `mapstructure:"generation"`
	Delivery   DeliveryConfig   `mapstructure:"delivery"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address       string `mapstructure:"address"`
	WebhookPath   string `mapstructure:"webhook_path"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	QueryTimeout  int    `mapstructure:"query_timeout"` // milliseconds
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	BaseURL  string `mapstructure:"base_url"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
}

// SearchConfig selects and configures the search provider.
type SearchConfig struct {
	Provider      string              `mapstructure:"provider"` // "google" or "elasticsearch"
	Google        GoogleSearchConfig  `mapstructure:"google"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type GoogleSearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	EngineID   string `mapstructure:"engine_id"`
	MaxResults int    `mapstructure:"max_results"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
	Size      int      `mapstructure:"size"`

	MaxRetries  int `mapstructure:"max_retries"`
	PingTimeout int `mapstructure:"ping_timeout"` // milliseconds
}

// GenerationConfig selects and configures the text-generation provider.
type GenerationConfig struct {
	Provider          string               `mapstructure:"provider"` // "gemini" or "http"
	Gemini            GeminiConfig         `mapstructure:"gemini"`
	HTTP              HTTPGenerationConfig `mapstructure:"http"`
	InsightMaxTokens  int                  `mapstructure:"insight_max_tokens"`
	OverviewMaxTokens int                  `mapstructure:"overview_max_tokens"`
	Temperature       float64              `mapstructure:"temperature"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type HTTPGenerationConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// DeliveryConfig holds the pacing between sequenced messages.
type DeliveryConfig struct {
	ShortPause int `mapstructure:"short_pause"` // milliseconds, after header and overview
	LongPause  int `mapstructure:"long_pause"`  // milliseconds, after each result

	FallbackTimeout int `mapstructure:"fallback_timeout"` // milliseconds, for the single combined send
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	DedupTTL int    `mapstructure:"dedup_ttl"` // seconds

	PoolSize     int `mapstructure:"pool_size"`
	MinIdleConns int `mapstructure:"min_idle_conns"`
	DialTimeout  int `mapstructure:"dial_timeout"` // milliseconds
	IOTimeout    int `mapstructure:"io_timeout"`   // milliseconds, read and write
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
