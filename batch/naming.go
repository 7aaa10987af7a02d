package batch

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/mkaminski/websave"
)

// maxTitleStemLen bounds the length of title-derived stems.
const maxTitleStemLen = 80

// fallbackStem is used when a URL has no usable host.
const fallbackStem = "page"

// Resolver issues unique filename stems for search results. The set of
// issued stems is shared across concurrent workers and guarded by a
// single mutex; Resolve is the only mutation point.
type Resolver struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewResolver creates a Resolver with an empty stem set.
func NewResolver() *Resolver {
	return &Resolver{seen: make(map[string]struct{})}
}

// Resolve maps a result and strategy to a stem that has not been issued
// before. On collision a numeric suffix (-2, -3, ...) is appended until
// the stem is unique. taken, if non-nil, is consulted with the same
// suffixing rule; the runner passes a predicate that checks the output
// directory for pre-existing files. The final stem is reserved before
// returning.
func (r *Resolver) Resolve(result websave.SearchResult, strategy websave.NamingStrategy, taken func(stem string) bool) string {
	base := baseStem(result, strategy)

	r.mu.Lock()
	defer r.mu.Unlock()

	stem := base
	for n := 2; ; n++ {
		_, issued := r.seen[stem]
		if !issued && (taken == nil || !taken(stem)) {
			break
		}
		stem = fmt.Sprintf("%s-%d", base, n)
	}
	r.seen[stem] = struct{}{}
	return stem
}

// baseStem computes the pre-collision stem for a result. Pure function
// of the result and strategy.
func baseStem(result websave.SearchResult, strategy websave.NamingStrategy) string {
	switch strategy {
	case websave.NamingTitle:
		if stem := titleStem(result.Title); stem != "" {
			return stem
		}
		// Titles that sanitize away fall back to the domain.
		return domainStem(result.URL)
	case websave.NamingDomain:
		return domainStem(result.URL)
	case websave.NamingSequential:
		return fmt.Sprintf("%04d", result.Rank)
	case websave.NamingTitleDomain:
		title := titleStem(result.Title)
		domain := domainStem(result.URL)
		if title == "" {
			return domain
		}
		return title + "-" + domain
	default:
		return domainStem(result.URL)
	}
}

// domainStem derives a stem from the URL host with any www. prefix
// stripped, e.g. https://www.example.com/x -> example.com.
func domainStem(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackStem
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return fallbackStem
	}
	return host
}

// titleStem sanitizes a result title into a filesystem-safe stem:
// lowercase, characters outside [a-z0-9-_] become hyphens, runs of
// hyphens collapse, and the result is bounded to maxTitleStemLen.
// Returns "" when nothing survives sanitization.
func titleStem(title string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(title) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteRune(c)
		default:
			b.WriteByte('-')
		}
	}

	stem := b.String()
	for strings.Contains(stem, "--") {
		stem = strings.ReplaceAll(stem, "--", "-")
	}
	stem = strings.Trim(stem, "-_")

	if len(stem) > maxTitleStemLen {
		stem = strings.Trim(stem[:maxTitleStemLen], "-_")
	}
	return stem
}
