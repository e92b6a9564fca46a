// internal/pipeline/enricher/prompts.go
package enricher

import (
	"fmt"
	"strings"

	"search-bot/internal/models"
)

func describeQuery(query string, cls models.Classification) string {
	if cls.IsOperatorQuery() {
		if cls.ContextDescription != "" {
			return fmt.Sprintf("The user ran an advanced search query with operators (%s): %s", cls.ContextDescription, query)
		}
		return fmt.Sprintf("The user ran an advanced search query with operators: %s", query)
	}
	return fmt.Sprintf("The user ran a plain search query: %s", query)
}

func buildInsightPrompt(query string, cls models.Classification, hit models.SearchHit) string {
	var parts []string

	parts = append(parts, "You help people understand web search results.")
	parts = append(parts, describeQuery(query, cls))
	parts = append(parts, fmt.Sprintf("\nResult title: %s", hit.Title))
	parts = append(parts, fmt.Sprintf("Result snippet: %s", hit.Snippet))
	parts = append(parts, "\nIn at most two sentences, explain how this result relates to what the user is looking for.")
	if cls.IsOperatorQuery() {
		parts = append(parts, "Mention which of the search operators this result satisfies when it is relevant.")
	}

	return strings.Join(parts, "\n")
}

func buildOverviewPrompt(query string, cls models.Classification, hits []models.EnrichedHit) string {
	var parts []string

	parts = append(parts, "You help people understand web search results.")
	parts = append(parts, describeQuery(query, cls))
	parts = append(parts, "\nTop results:")
	for i, hit := range hits {
		parts = append(parts, fmt.Sprintf("%d. %s: %s", i+1, hit.Title, hit.Snippet))
	}
	parts = append(parts, "\nWrite a short overview (three or four sentences) of what these results say together about the query.")
	parts = append(parts, "Do not list the results again and do not invent facts that are not in them.")

	return strings.Join(parts, "\n")
}
