package websave

import (
	"context"
	"strings"
)

// SearchKind selects the search vertical to query.
type SearchKind string

// Search verticals supported by the search provider.
const (
	SearchWeb   SearchKind = "web"
	SearchNews  SearchKind = "news"
	SearchLocal SearchKind = "local"
)

// ParseSearchKind parses a string into a SearchKind.
// Returns EINVALID for unknown kinds.
func ParseSearchKind(s string) (SearchKind, error) {
	switch strings.ToLower(s) {
	case "web":
		return SearchWeb, nil
	case "news":
		return SearchNews, nil
	case "local":
		return SearchLocal, nil
	default:
		return "", Errorf(EINVALID, "invalid search kind %q", s)
	}
}

func (k SearchKind) String() string {
	return string(k)
}

// SearchResult is one entry of a provider-ranked result page.
// Results are immutable once returned by a SearchService. Rank is the
// zero-based position within the page and is used only as a fallback
// naming and ordering key.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rank        int    `json:"rank"`
}

// SearchOptions holds paging and filter parameters for a search.
// The zero value requests provider defaults.
type SearchOptions struct {
	// Count is the number of results to return (0 = provider default).
	Count int `json:"count"`

	// Offset is the pagination offset.
	Offset int `json:"offset"`

	// Country is the country code for news/local searches.
	Country string `json:"country"`

	// Language is the language code for news searches.
	Language string `json:"language"`

	// Freshness filters news results by age: h, d, w, m or y.
	Freshness string `json:"freshness"`
}

// Validate returns an error if the options contain invalid fields.
func (o SearchOptions) Validate() error {
	if o.Count < 0 {
		return Errorf(EINVALID, "search count must not be negative")
	}
	if o.Offset < 0 {
		return Errorf(EINVALID, "search offset must not be negative")
	}
	switch o.Freshness {
	case "", "h", "d", "w", "m", "y":
		return nil
	default:
		return Errorf(EINVALID, "invalid freshness %q: must be one of h, d, w, m, y", o.Freshness)
	}
}

// SearchService executes a query against a search provider.
// Results are returned in provider-ranked order with Rank assigned by
// position. A missing or rejected API credential surfaces as
// EUNAUTHORIZED before any network round trip where possible.
type SearchService interface {
	Search(ctx context.Context, kind SearchKind, query string, opts SearchOptions) ([]SearchResult, error)
}
