// cmd/search-bot/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "search-bot",
	Short: "Telegram search bot with AI-enriched results",
	Long: `search-bot answers chat messages with web search results.
Each query is classified as plain or operator search, sent to the configured
search provider, enriched with AI insights and delivered as a paced sequence
of messages.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a config file (default: configs/config.yaml)")
	rootCmd.AddCommand(serveCmd, classifyCmd, queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
