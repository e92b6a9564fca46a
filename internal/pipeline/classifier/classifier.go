// internal/pipeline/classifier/classifier.go
package classifier

import (
	"strings"

	"search-bot/internal/models"
)

const genericDescription = "advanced search"

// Classifier decides whether a query uses advanced search operators.
type Classifier struct {
	patterns []Pattern
	markers  []Marker
}

// New returns a Classifier over the given catalog.
func New(patterns []Pattern, markers []Marker) *Classifier {
	return &Classifier{patterns: patterns, markers: markers}
}

// Default returns a Classifier over DefaultPatterns and DefaultMarkers.
func Default() *Classifier {
	return New(DefaultPatterns, DefaultMarkers)
}

// Classify never fails. Queries with no operator indicators are plain with
// an empty context description.
func (c *Classifier) Classify(query string) models.Classification {
	var described []string
	for _, p := range c.patterns {
		if p.Match(query) {
			described = append(described, p.Description)
		}
	}

	var suffixes []string
	for _, m := range c.markers {
		if m.Match(query) {
			suffixes = append(suffixes, m.Suffix)
		}
	}

	if len(described) == 0 && len(suffixes) == 0 {
		return models.Classification{Kind: models.QueryKindPlain}
	}

	if len(described) > 0 {
		return models.Classification{
			Kind:               models.QueryKindOperator,
			ContextDescription: strings.Join(described, ", "),
		}
	}

	return models.Classification{
		Kind:               models.QueryKindOperator,
		ContextDescription: genericDescription + " using " + strings.Join(suffixes, ", "),
	}
}

var defaultClassifier = Default()

// Classify classifies query with the default catalog.
func Classify(query string) models.Classification {
	return defaultClassifier.Classify(query)
}
