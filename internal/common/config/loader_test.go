package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "search-bot/internal/common/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
telegram:
  bot_token: "123:abc"
search:
  google:
    api_key: "search-key"
    engine_id: "engine"
generation:
  gemini:
    api_key: "gemini-key"
`

func TestLoadFromFile_Defaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "search-bot", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "/webhook", cfg.Server.WebhookPath)
	assert.Equal(t, ProviderGoogle, cfg.Search.Provider)
	assert.Equal(t, 10, cfg.Search.Google.MaxResults)
	assert.Equal(t, ProviderGemini, cfg.Generation.Provider)
	assert.Equal(t, 120, cfg.Generation.InsightMaxTokens)
	assert.Equal(t, 400, cfg.Generation.OverviewMaxTokens)
	assert.Less(t, cfg.Generation.InsightMaxTokens, cfg.Generation.OverviewMaxTokens)
	assert.Equal(t, 400, cfg.Delivery.ShortPause)
	assert.Equal(t, 700, cfg.Delivery.LongPause)
	assert.Equal(t, 10000, cfg.Delivery.FallbackTimeout)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 3000, cfg.Redis.IOTimeout)
	assert.Equal(t, 5000, cfg.Search.Elasticsearch.PingTimeout)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.BaseURL)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "999:xyz")
	body := `
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
search:
  provider: elasticsearch
  elasticsearch:
    addresses: ["http://localhost:9200"]
    index: pages
generation:
  provider: http
  http:
    base_url: "http://genai.local"
delivery:
  short_pause: 10
  long_pause: 20
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, "999:xyz", cfg.Telegram.BotToken)
	assert.Equal(t, ProviderElasticsearch, cfg.Search.Provider)
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Search.Elasticsearch.Addresses)
	assert.Equal(t, 10, cfg.Search.Elasticsearch.Size)
	assert.Equal(t, ProviderHTTP, cfg.Generation.Provider)
	assert.Equal(t, 10, cfg.Delivery.ShortPause)
	assert.Equal(t, 20, cfg.Delivery.LongPause)
}

func TestLoadFromFile_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	body := `
telegram:
  bot_token: "123:abc"
search:
  google:
    api_key: "k"
    engine_id: "e"
`
	cfg, err := LoadFromFile(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Generation.Gemini.APIKey)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing bot token",
			body:    "search:\n  google:\n    api_key: k\n    engine_id: e\n",
			wantMsg: "telegram.bot_token",
		},
		{
			name: "unknown search provider",
			body: `
telegram: {bot_token: "t"}
search: {provider: bing}
generation: {gemini: {api_key: g}}
`,
			wantMsg: "unknown search.provider",
		},
		{
			name: "elasticsearch without index",
			body: `
telegram: {bot_token: "t"}
search: {provider: elasticsearch, elasticsearch: {addresses: ["http://es:9200"]}}
generation: {gemini: {api_key: g}}
`,
			wantMsg: "search.elasticsearch.addresses",
		},
		{
			name: "http generation without base url",
			body: `
telegram: {bot_token: "t"}
search: {google: {api_key: k, engine_id: e}}
generation: {provider: http}
`,
			wantMsg: "generation.http.base_url",
		},
		{
			name: "redis enabled without address",
			body: `
telegram: {bot_token: "t"}
search: {google: {api_key: k, engine_id: e}}
generation: {gemini: {api_key: g}}
redis: {enabled: true}
`,
			wantMsg: "redis.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// keep conventional env names from satisfying required fields
			for _, env := range []string{"TELEGRAM_BOT_TOKEN", "GEMINI_API_KEY", "GOOGLE_SEARCH_API_KEY", "GOOGLE_SEARCH_ENGINE_ID"} {
				t.Setenv(env, "")
			}
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.True(t, errors.Is(err, &apperrors.StandardError{Code: apperrors.ErrCodeConfigInvalid}))
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
