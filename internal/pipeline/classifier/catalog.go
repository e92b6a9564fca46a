// internal/pipeline/classifier/catalog.go
package classifier

import (
	"regexp"
	"strings"
)

// Pattern is one recognized search operator. A query matching any Pattern
// is an operator query, and the Pattern's Description is reported in the
// search context.
type Pattern struct {
	Name        string
	Description string
	Match       func(query string) bool
}

// Marker is an operator indicator without a description of its own. Markers
// make a query an operator query; when no Pattern matched, the suffixes of
// the markers present are appended to the generic description.
type Marker struct {
	Name   string
	Suffix string
	Match  func(query string) bool
}

func prefixed(names ...string) func(string) bool {
	re := regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `):`)
	return re.MatchString
}

func keyword(word string) func(string) bool {
	re := regexp.MustCompile(`(?i)\b` + word + `\b`)
	return re.MatchString
}

func literal(s string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, s) }
}

// hasQuotedPhrase fires on more than one double quote, balanced or not.
func hasQuotedPhrase(q string) bool {
	return strings.Count(q, `"`) > 1
}

// DefaultPatterns is evaluated in order; descriptions are reported in the
// same order.
var DefaultPatterns = []Pattern{
	{Name: "site", Description: "restricting results to a specific site", Match: prefixed("site")},
	{Name: "filetype", Description: "filtering by file type", Match: prefixed("filetype", "ext")},
	{Name: "inurl", Description: "matching words in the URL", Match: prefixed("allinurl", "inurl")},
	{Name: "intitle", Description: "matching words in the page title", Match: prefixed("allintitle", "intitle")},
	{Name: "inanchor", Description: "matching link anchor text", Match: prefixed("allinanchor", "inanchor")},
	{Name: "intext", Description: "matching words in the page text", Match: prefixed("allintext", "intext")},
	{Name: "cache", Description: "looking up cached copies of pages", Match: prefixed("cache")},
	{Name: "info", Description: "looking up information about a page", Match: prefixed("info")},
	{Name: "define", Description: "looking up definitions", Match: prefixed("define")},
	{Name: "phrase", Description: "exact phrase matching", Match: hasQuotedPhrase},
}

// DefaultMarkers covers Boolean, exclusion, wildcard and range syntax.
// A bare hyphen anywhere in the text counts as exclusion.
var DefaultMarkers = []Marker{
	{Name: "or", Suffix: "OR logic", Match: keyword("OR")},
	{Name: "and", Suffix: "AND logic", Match: keyword("AND")},
	{Name: "exclude", Suffix: "excluded terms", Match: literal("-")},
	{Name: "require", Suffix: "required terms", Match: literal("+")},
	{Name: "wildcard", Suffix: "wildcards", Match: literal("*")},
	{Name: "range", Suffix: "number ranges", Match: literal("..")},
}
