package brave_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkaminski/websave"
	"github.com/mkaminski/websave/brave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webBody = `{
	"web": {
		"results": [
			{"title": "Rust Lang", "url": "https://rust-lang.org", "description": "A systems language"},
			{"title": "Rust Book", "url": "https://doc.rust-lang.org/book", "description": "The book"}
		]
	}
}`

const newsBody = `{
	"results": [
		{"title": "Release Notes", "url": "https://example.com/news", "description": "Fresh"}
	]
}`

func newClient(t *testing.T, handler http.HandlerFunc) *brave.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := brave.NewClient("test-key", brave.WithBaseURL(server.URL))
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("fails without an api key", func(t *testing.T) {
		t.Setenv(brave.EnvAPIKey, "")

		_, err := brave.NewClient("")

		require.Error(t, err)
		assert.Equal(t, websave.EUNAUTHORIZED, websave.ErrorCode(err))
	})

	t.Run("falls back to the environment", func(t *testing.T) {
		t.Setenv(brave.EnvAPIKey, "env-key")

		_, err := brave.NewClient("")

		assert.NoError(t, err)
	})
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	t.Run("web search ranks results by position", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/web/search", r.URL.Path)
			assert.Equal(t, "rust", r.URL.Query().Get("q"))
			assert.Equal(t, "test-key", r.Header.Get("X-Subscription-Token"))
			_, _ = w.Write([]byte(webBody))
		})

		results, err := client.Search(context.Background(), websave.SearchWeb, "rust", websave.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Rust Lang", results[0].Title)
		assert.Equal(t, 0, results[0].Rank)
		assert.Equal(t, "https://doc.rust-lang.org/book", results[1].URL)
		assert.Equal(t, 1, results[1].Rank)
	})

	t.Run("news search uses the news endpoint", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/news/search", r.URL.Path)
			assert.Equal(t, "us", r.URL.Query().Get("country"))
			assert.Equal(t, "en", r.URL.Query().Get("search_lang"))
			assert.Equal(t, "d", r.URL.Query().Get("freshness"))
			_, _ = w.Write([]byte(newsBody))
		})

		opts := websave.SearchOptions{Country: "us", Language: "en", Freshness: "d"}
		results, err := client.Search(context.Background(), websave.SearchNews, "release", opts)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Release Notes", results[0].Title)
	})

	t.Run("local search filters for locations", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/web/search", r.URL.Path)
			assert.Equal(t, "locations", r.URL.Query().Get("result_filter"))
			_, _ = w.Write([]byte(`{
				"locations": {"results": [{"title": "Pizza Place", "url": "https://pizza.example"}]},
				"web": {"results": [{"title": "Pizza Wiki", "url": "https://wiki.example"}]}
			}`))
		})

		results, err := client.Search(context.Background(), websave.SearchLocal, "pizza near me", websave.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Pizza Place", results[0].Title)
	})

	t.Run("local search falls back to web results", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(webBody))
		})

		results, err := client.Search(context.Background(), websave.SearchLocal, "pizza", websave.SearchOptions{})

		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Rust Lang", results[0].Title)
	})

	t.Run("passes paging parameters", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5", r.URL.Query().Get("count"))
			assert.Equal(t, "10", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(webBody))
		})

		_, err := client.Search(context.Background(), websave.SearchWeb, "rust", websave.SearchOptions{Count: 5, Offset: 10})

		assert.NoError(t, err)
	})

	t.Run("rejects empty queries", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		_, err := client.Search(context.Background(), websave.SearchWeb, "", websave.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, websave.EINVALID, websave.ErrorCode(err))
	})

	t.Run("maps status codes to error codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status   int
			wantCode string
		}{
			{http.StatusUnauthorized, websave.EUNAUTHORIZED},
			{http.StatusForbidden, websave.EUNAUTHORIZED},
			{http.StatusTooManyRequests, websave.EUNAVAILABLE},
			{http.StatusInternalServerError, websave.EINTERNAL},
		}

		for _, tt := range tests {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Search(context.Background(), websave.SearchWeb, "rust", websave.SearchOptions{})

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, websave.ErrorCode(err))
		}
	})

	t.Run("malformed response is an internal error", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		})

		_, err := client.Search(context.Background(), websave.SearchWeb, "rust", websave.SearchOptions{})

		require.Error(t, err)
		assert.Equal(t, websave.EINTERNAL, websave.ErrorCode(err))
	})
}
