// cmd/search-bot/serve.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"search-bot/internal/common/config"
	"search-bot/internal/transport/webhook"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server",
	Long:  `Starts the HTTP server that receives Telegram webhook updates and exposes /health, /ready and /metrics.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.close()

	var dedup webhook.Deduplicator = webhook.NoopDeduplicator{}
	if cfg.Redis.Enabled {
		if err := a.connectRedis(ctx); err != nil {
			return err
		}
		dedup = webhook.NewRedisDeduplicator(a.redis.Client, time.Duration(cfg.Redis.DedupTTL)*time.Second)
		a.log.Info("Redis connected successfully", nil)
	}

	hook := webhook.NewHandler(&webhook.Config{
		Secret:       cfg.Server.WebhookSecret,
		QueryTimeout: config.GetDuration(cfg.Server.QueryTimeout),
	}, a.orchestrator, a.sender, dedup, a.errors, a.log)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newMux(cfg.Server.WebhookPath, hook, a.checks),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server listening", map[string]interface{}{
			"address":     cfg.Server.Address,
			"webhookPath": cfg.Server.WebhookPath,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
			return err
		}
	case <-ctx.Done():
	}

	// --- Graceful Shutdown ---
	a.log.Info("Shutdown signal received, draining in-flight queries...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.QueryTimeout)+5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during server shutdown", map[string]interface{}{"error": err.Error()})
		return err
	}
	a.log.Info("search-bot stopped gracefully", nil)
	return nil
}

func newMux(webhookPath string, hook http.Handler, checks []readinessCheck) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(webhookPath, hook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", readyHandler(checks))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func readyHandler(checks []readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		failed := map[string]string{}
		for _, c := range checks {
			if err := c.check(ctx); err != nil {
				failed[c.name] = err.Error()
			}
		}
		if len(failed) > 0 {
			writeStatus(w, http.StatusServiceUnavailable, map[string]interface{}{
				"status": "not ready",
				"failed": failed,
			})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
