package mock

import (
	"context"

	"github.com/mkaminski/websave"
)

var _ websave.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of websave.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, kind websave.SearchKind, query string, opts websave.SearchOptions) ([]websave.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, kind websave.SearchKind, query string, opts websave.SearchOptions) ([]websave.SearchResult, error) {
	return s.SearchFn(ctx, kind, query, opts)
}
