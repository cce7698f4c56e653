package mock

import (
	"context"

	"github.com/DennisFaucher/aisalesplan"
)

var _ aisalesplan.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of aisalesplan.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) (*aisalesplan.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
	return s.SearchFn(ctx, query)
}
