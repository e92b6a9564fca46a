// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "search-bot/internal/common/errors"
)

const (
	ProviderGoogle        = "google"
	ProviderElasticsearch = "elasticsearch"
	ProviderGemini        = "gemini"
	ProviderHTTP          = "http"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"telegram.bot_token",
		"server.webhook_secret",
		"search.provider",
		"search.google.api_key",
		"search.google.engine_id",
		"generation.provider",
		"generation.gemini.api_key",
		"generation.http.base_url",
		"redis.address",
		"redis.password",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from conventional env names when the
// config file left them empty.
func overrideEmptyConfig(cfg *Config) {
	setIfEmpty := func(dst *string, env string) {
		if *dst != "" {
			return
		}
		if val := os.Getenv(env); val != "" {
			*dst = val
		}
	}

	setIfEmpty(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setIfEmpty(&cfg.Server.WebhookSecret, "TELEGRAM_WEBHOOK_SECRET")
	setIfEmpty(&cfg.Search.Google.APIKey, "GOOGLE_SEARCH_API_KEY")
	setIfEmpty(&cfg.Search.Google.EngineID, "GOOGLE_SEARCH_ENGINE_ID")
	setIfEmpty(&cfg.Generation.Gemini.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&cfg.Generation.HTTP.APIKey, "GENAI_API_KEY")
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "search-bot"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.WebhookPath == "" {
		cfg.Server.WebhookPath = "/webhook"
	}
	if cfg.Server.QueryTimeout == 0 {
		cfg.Server.QueryTimeout = 60000
	}

	if cfg.Telegram.BaseURL == "" {
		cfg.Telegram.BaseURL = "https://api.telegram.org"
	}
	if cfg.Telegram.Timeout == 0 {
		cfg.Telegram.Timeout = 10000
	}

	if cfg.Search.Provider == "" {
		cfg.Search.Provider = ProviderGoogle
	}
	if cfg.Search.Google.BaseURL == "" {
		cfg.Search.Google.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if cfg.Search.Google.MaxResults == 0 {
		cfg.Search.Google.MaxResults = 10
	}
	if cfg.Search.Google.Timeout == 0 {
		cfg.Search.Google.Timeout = 10000
	}
	if cfg.Search.Elasticsearch.Size == 0 {
		cfg.Search.Elasticsearch.Size = 10
	}
	if cfg.Search.Elasticsearch.MaxRetries == 0 {
		cfg.Search.Elasticsearch.MaxRetries = 3
	}
	if cfg.Search.Elasticsearch.PingTimeout == 0 {
		cfg.Search.Elasticsearch.PingTimeout = 5000
	}

	if cfg.Generation.Provider == "" {
		cfg.Generation.Provider = ProviderGemini
	}
	if cfg.Generation.Gemini.Model == "" {
		cfg.Generation.Gemini.Model = "gemini-2.0-flash"
	}
	if cfg.Generation.HTTP.Timeout == 0 {
		cfg.Generation.HTTP.Timeout = 30000
	}
	if cfg.Generation.InsightMaxTokens == 0 {
		cfg.Generation.InsightMaxTokens = 120
	}
	if cfg.Generation.OverviewMaxTokens == 0 {
		cfg.Generation.OverviewMaxTokens = 400
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.4
	}

	if cfg.Delivery.ShortPause == 0 {
		cfg.Delivery.ShortPause = 400
	}
	if cfg.Delivery.LongPause == 0 {
		cfg.Delivery.LongPause = 700
	}
	if cfg.Delivery.FallbackTimeout == 0 {
		cfg.Delivery.FallbackTimeout = 10000
	}

	if cfg.Redis.DedupTTL == 0 {
		cfg.Redis.DedupTTL = 3600
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 10
	}
	if cfg.Redis.MinIdleConns == 0 {
		cfg.Redis.MinIdleConns = 2
	}
	if cfg.Redis.DialTimeout == 0 {
		cfg.Redis.DialTimeout = 5000
	}
	if cfg.Redis.IOTimeout == 0 {
		cfg.Redis.IOTimeout = 3000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Telegram.BotToken == "" {
		return apperrors.NewConfigError("telegram.bot_token is required")
	}

	switch cfg.Search.Provider {
	case ProviderGoogle:
		if cfg.Search.Google.APIKey == "" || cfg.Search.Google.EngineID == "" {
			return apperrors.NewConfigError("search.google.api_key and search.google.engine_id are required")
		}
	case ProviderElasticsearch:
		if len(cfg.Search.Elasticsearch.Addresses) == 0 || cfg.Search.Elasticsearch.Index == "" {
			return apperrors.NewConfigError("search.elasticsearch.addresses and search.elasticsearch.index are required")
		}
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unknown search.provider %q", cfg.Search.Provider))
	}

	switch cfg.Generation.Provider {
	case ProviderGemini:
		if cfg.Generation.Gemini.APIKey == "" {
			return apperrors.NewConfigError("generation.gemini.api_key is required")
		}
	case ProviderHTTP:
		if cfg.Generation.HTTP.BaseURL == "" {
			return apperrors.NewConfigError("generation.http.base_url is required")
		}
	default:
		return apperrors.NewConfigError(fmt.Sprintf("unknown generation.provider %q", cfg.Generation.Provider))
	}

	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return apperrors.NewConfigError("redis.address is required when redis.enabled is true")
	}
	if cfg.Delivery.ShortPause < 0 || cfg.Delivery.LongPause < 0 {
		return apperrors.NewConfigError("delivery pauses must not be negative")
	}
	return nil
}
