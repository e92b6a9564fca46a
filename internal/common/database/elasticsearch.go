// internal/common/database/elasticsearch.go
package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"search-bot/internal/common/config"
)

const defaultPingTimeout = 5 * time.Second

// ElasticsearchClient is the search backend for the elastic provider.
type ElasticsearchClient struct {
	Client *elasticsearch.Client

	index       string
	pingTimeout time.Duration
}

func NewElasticsearch(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	esCfg := elasticsearch.Config{
		Addresses:     cfg.Addresses,
		MaxRetries:    cfg.MaxRetries,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	pingTimeout := config.GetDuration(cfg.PingTimeout)
	if pingTimeout <= 0 {
		pingTimeout = defaultPingTimeout
	}
	return &ElasticsearchClient{Client: es, index: cfg.Index, pingTimeout: pingTimeout}, nil
}

// Ping reports whether the cluster answers and, when an index is
// configured, whether that index exists.
func (c *ElasticsearchClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	res, err := c.Client.Ping(c.Client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}

	if c.index == "" {
		return nil
	}
	res, err = c.Client.Indices.Exists([]string{c.index}, c.Client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index check failed: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("elasticsearch index %q does not exist", c.index)
	}
	if res.IsError() {
		return fmt.Errorf("elasticsearch index check error: %s", res.Status())
	}
	return nil
}
