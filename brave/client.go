// Package brave implements websave.SearchService against the Brave
// Search API.
package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/mkaminski/websave"
)

// DefaultBaseURL is the Brave Search API root.
const DefaultBaseURL = "https://api.search.brave.com/res/v1"

// DefaultTimeout bounds a single search round trip.
const DefaultTimeout = 30 * time.Second

// EnvAPIKey is the environment variable consulted when no API key is
// passed explicitly.
const EnvAPIKey = "BRAVE_API_KEY"

// Ensure Client implements websave.SearchService at compile time.
var _ websave.SearchService = (*Client)(nil)

// Client queries the Brave Search API. The local vertical is served by
// the web endpoint with a locations result filter; Brave has no
// dedicated local endpoint on the free plan.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client. An empty apiKey falls back to the
// BRAVE_API_KEY environment variable; if neither is set the
// constructor fails with EUNAUTHORIZED so the caller can report a
// missing credential before issuing any query.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, websave.Errorf(websave.EUNAUTHORIZED, "no Brave API key: pass one or set %s", EnvAPIKey)
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apiResult mirrors one result entry in a Brave API response.
type apiResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// apiResponse covers all three response shapes: the web endpoint nests
// under "web" (and "locations" when the filter matches), the news
// endpoint returns a flat "results" array.
type apiResponse struct {
	Web struct {
		Results []apiResult `json:"results"`
	} `json:"web"`
	Locations struct {
		Results []apiResult `json:"results"`
	} `json:"locations"`
	Results []apiResult `json:"results"`
}

// Search executes a query against the chosen vertical and returns
// results in provider order with Rank assigned by position.
func (c *Client) Search(ctx context.Context, kind websave.SearchKind, query string, opts websave.SearchOptions) ([]websave.SearchResult, error) {
	if query == "" {
		return nil, websave.Errorf(websave.EINVALID, "empty search query")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	endpoint, params := c.buildRequest(kind, query, opts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, websave.Errorf(websave.EINTERNAL, "building search request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", kind, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, websave.Errorf(websave.EUNAUTHORIZED, "Brave API rejected the credential (HTTP %d)", resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, websave.Errorf(websave.EUNAVAILABLE, "Brave API rate limit exceeded")
	default:
		return nil, websave.Errorf(websave.EINTERNAL, "Brave API returned HTTP %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, websave.Errorf(websave.EINTERNAL, "decoding search response: %v", err)
	}

	return rank(pick(kind, body)), nil
}

// buildRequest maps the vertical and options onto an endpoint and its
// query parameters.
func (c *Client) buildRequest(kind websave.SearchKind, query string, opts websave.SearchOptions) (string, url.Values) {
	params := url.Values{}
	params.Set("q", query)
	if opts.Count > 0 {
		params.Set("count", strconv.Itoa(opts.Count))
	}
	if opts.Offset > 0 {
		params.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Country != "" {
		params.Set("country", opts.Country)
	}
	if opts.Language != "" {
		params.Set("search_lang", opts.Language)
	}
	if opts.Freshness != "" {
		params.Set("freshness", opts.Freshness)
	}

	switch kind {
	case websave.SearchNews:
		return c.baseURL + "/news/search", params
	case websave.SearchLocal:
		params.Set("result_filter", "locations")
		return c.baseURL + "/web/search", params
	default:
		return c.baseURL + "/web/search", params
	}
}

// pick selects the result array matching the vertical. Local queries
// fall back to plain web results when the locations filter matched
// nothing.
func pick(kind websave.SearchKind, body apiResponse) []apiResult {
	switch kind {
	case websave.SearchNews:
		return body.Results
	case websave.SearchLocal:
		if len(body.Locations.Results) > 0 {
			return body.Locations.Results
		}
		return body.Web.Results
	default:
		return body.Web.Results
	}
}

func rank(in []apiResult) []websave.SearchResult {
	out := make([]websave.SearchResult, len(in))
	for i, r := range in {
		out[i] = websave.SearchResult{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
			Rank:        i,
		}
	}
	return out
}
