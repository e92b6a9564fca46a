// cmd/search-bot/classify.go
package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"search-bot/internal/pipeline/classifier"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <query>",
	Short: "Show how a query is classified",
	Long:  `Prints the classification (plain or operator-query) and the search context for a query. Needs no configuration.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cls := classifier.Classify(strings.Join(args, " "))
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cls)
	},
}
