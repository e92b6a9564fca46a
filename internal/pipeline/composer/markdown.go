// internal/pipeline/composer/markdown.go
package composer

import "strings"

var markdownEscaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"`", "\\`",
	"[", `\[`,
)

// EscapeMarkdown escapes text for Telegram's legacy Markdown parse mode.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// boldText prepares s for use inside a *...* entity, where escapes are not
// honoured and only the closing asterisk is significant.
func boldText(s string) string {
	return strings.ReplaceAll(s, "*", "")
}

// linkTarget keeps a URL from closing the surrounding (...) early.
func linkTarget(url string) string {
	return strings.NewReplacer("(", "%28", ")", "%29", " ", "%20").Replace(url)
}
