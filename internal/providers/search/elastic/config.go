// internal/providers/search/elastic/config.go
package elastic

import "search-bot/internal/common/config"

type Config struct {
	Index  string
	Size   int
	Fields []string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Index:  cfg.Search.Elasticsearch.Index,
		Size:   cfg.Search.Elasticsearch.Size,
		Fields: []string{"title^2", "snippet", "content"},
	}
}
