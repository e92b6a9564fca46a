// internal/models/search.go
package models

// MaxEnrichedHits caps how many hits are enriched and rendered per query.
const MaxEnrichedHits = 3

// SearchHit is one item returned by a search provider.
type SearchHit struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet"`
	DisplaySource string `json:"displaySource"`
}

// EnrichedHit is a SearchHit plus its AI insight (or the fallback phrase).
type EnrichedHit struct {
	SearchHit
	Insight string `json:"insight"`
}

// SearchMetadata is passed through from the provider for display only.
type SearchMetadata struct {
	TotalResultsLabel string  `json:"totalResultsLabel"`
	ElapsedSeconds    float64 `json:"elapsedSeconds"`
}

// SearchResult is what a provider returns for one query.
type SearchResult struct {
	Hits     []SearchHit    `json:"hits"`
	Metadata SearchMetadata `json:"metadata"`
}

// TopHits returns at most MaxEnrichedHits hits, preserving order.
func TopHits(hits []SearchHit) []SearchHit {
	if len(hits) > MaxEnrichedHits {
		return hits[:MaxEnrichedHits]
	}
	return hits
}
