// internal/pipeline/composer/composer.go
package composer

import (
	"fmt"
	"strings"

	"search-bot/internal/models"
)

const (
	combinedSeparator = "\n\n"

	operatorFooter = "💡 *Dork tips*\n" +
		"• Combine operators such as site: and filetype: to narrow results\n" +
		"• Quote a phrase to match it exactly, prefix a word with - to exclude it\n" +
		"• Send /dorks for the full operator guide"

	plainFooter = "💡 *Search tips*\n" +
		"• Add more specific keywords for sharper results\n" +
		"• Wrap a phrase in quotes to match it exactly\n" +
		"• Send /examples to see what else you can search for"

	noResultsOperator = "😕 No results matched your operator query.\n" +
		"Operators filter aggressively, so try removing one or widening a site: or filetype: filter."

	noResultsPlain = "😕 No results found for your search.\n" +
		"Try different or fewer keywords."

	errorNotice = "⚠️ Sorry, something went wrong while processing your search. Please try again in a moment."
)

// Compose renders a response as header, overview (only when overview is
// non-empty), one payload per enriched hit and a footer, in that order.
func Compose(query string, cls models.Classification, enriched []models.EnrichedHit, meta models.SearchMetadata, overview string) []models.MessagePayload {
	payloads := make([]models.MessagePayload, 0, len(enriched)+3)

	payloads = append(payloads, rich(models.PayloadHeader, header(query, cls, meta)))
	if overview != "" {
		payloads = append(payloads, rich(models.PayloadOverview, overviewSection(overview)))
	}
	for i, hit := range enriched {
		payloads = append(payloads, rich(models.PayloadResult, resultSection(i+1, hit)))
	}
	payloads = append(payloads, rich(models.PayloadFooter, footer(cls)))

	return payloads
}

// ComposeCombined renders the same sections as Compose into one payload.
// It is the delivery fallback when the multi-message sequence fails.
func ComposeCombined(query string, cls models.Classification, enriched []models.EnrichedHit, meta models.SearchMetadata, overview string) models.MessagePayload {
	sections := Compose(query, cls, enriched, meta, overview)
	bodies := make([]string, len(sections))
	for i, p := range sections {
		bodies[i] = p.Body
	}
	return rich(models.PayloadCombined, strings.Join(bodies, combinedSeparator))
}

// NoResults is the single notice sent when the provider returned no hits.
func NoResults(cls models.Classification) models.MessagePayload {
	if cls.IsOperatorQuery() {
		return rich(models.PayloadNotice, noResultsOperator)
	}
	return rich(models.PayloadNotice, noResultsPlain)
}

// ErrorNotice is the only thing a user sees when a query fails before delivery.
func ErrorNotice() models.MessagePayload {
	return rich(models.PayloadNotice, errorNotice)
}

func rich(kind models.PayloadKind, body string) models.MessagePayload {
	return models.MessagePayload{Body: body, UseRichFormatting: true, Kind: kind}
}

func header(query string, cls models.Classification, meta models.SearchMetadata) string {
	var b strings.Builder

	b.WriteString("🔍 *Search results for:* ")
	b.WriteString(EscapeMarkdown(query))

	if cls.IsOperatorQuery() && cls.ContextDescription != "" {
		b.WriteString("\n🧭 *Search context:* ")
		b.WriteString(EscapeMarkdown(cls.ContextDescription))
	}

	if stats := statsLine(meta); stats != "" {
		b.WriteString("\n")
		b.WriteString(stats)
	}
	return b.String()
}

func statsLine(meta models.SearchMetadata) string {
	switch {
	case meta.TotalResultsLabel != "" && meta.ElapsedSeconds > 0:
		return fmt.Sprintf("📊 About %s results (%.2f seconds)", EscapeMarkdown(meta.TotalResultsLabel), meta.ElapsedSeconds)
	case meta.TotalResultsLabel != "":
		return fmt.Sprintf("📊 About %s results", EscapeMarkdown(meta.TotalResultsLabel))
	case meta.ElapsedSeconds > 0:
		return fmt.Sprintf("📊 Search took %.2f seconds", meta.ElapsedSeconds)
	}
	return ""
}

func overviewSection(overview string) string {
	return "🧠 *AI overview*\n\n" + EscapeMarkdown(overview)
}

func resultSection(n int, hit models.EnrichedHit) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%d. %s*", n, boldText(hit.Title))
	if hit.DisplaySource != "" {
		fmt.Fprintf(&b, "\n🌐 %s", EscapeMarkdown(hit.DisplaySource))
	}
	if hit.Snippet != "" {
		fmt.Fprintf(&b, "\n\n%s", EscapeMarkdown(hit.Snippet))
	}
	if hit.Insight != "" {
		fmt.Fprintf(&b, "\n\n💡 %s", EscapeMarkdown(hit.Insight))
	}
	if hit.URL != "" {
		fmt.Fprintf(&b, "\n\n🔗 [Open result](%s)", linkTarget(hit.URL))
	}
	return b.String()
}

func footer(cls models.Classification) string {
	if cls.IsOperatorQuery() {
		return operatorFooter
	}
	return plainFooter
}
