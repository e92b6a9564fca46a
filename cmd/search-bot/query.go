// cmd/search-bot/query.go
package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"search-bot/internal/common/config"
	"search-bot/internal/models"
)

var (
	queryChat   string
	queryStdout bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run one query through the full pipeline",
	Long: `Runs a single query with the configured search and generation providers.
With --stdout the composed messages are printed instead of sent to Telegram.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryChat, "chat", "", "Telegram chat id to deliver to")
	queryCmd.Flags().BoolVar(&queryStdout, "stdout", false, "print messages instead of sending them")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if !queryStdout && queryChat == "" {
		return fmt.Errorf("either --chat or --stdout is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var sender *consoleSender
	if queryStdout {
		sender = &consoleSender{out: cmd.OutOrStdout()}
		queryChat = "stdout"
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), config.GetDuration(cfg.Server.QueryTimeout))
	defer cancel()

	var a *app
	if sender != nil {
		a, err = newApp(ctx, cfg, sender)
	} else {
		a, err = newApp(ctx, cfg, nil)
	}
	if err != nil {
		return err
	}
	defer a.close()

	res := a.orchestrator.HandleQuery(ctx, queryChat, strings.Join(args, " "))
	fmt.Fprintf(cmd.ErrOrStderr(), "query %s finished: %s (%d hits)\n", res.QueryID, res.State, res.HitCount)
	return nil
}

// consoleSender prints payloads, separated by a rule, instead of sending them.
type consoleSender struct {
	out io.Writer
}

func (c *consoleSender) Send(_ context.Context, _ string, p models.MessagePayload) error {
	_, err := fmt.Fprintf(c.out, "── %s ──\n%s\n\n", p.Kind, p.Body)
	return err
}
