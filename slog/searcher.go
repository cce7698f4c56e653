// Package slog provides logging decorators for aisalesplan services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/DennisFaucher/aisalesplan"
)

// Ensure LoggingSearcher implements aisalesplan.Searcher.
var _ aisalesplan.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next    aisalesplan.Searcher
	backend string
	logger  *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher. Backend names the
// wrapped search backend in log records.
func NewLoggingSearcher(next aisalesplan.Searcher, backend string, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, backend: backend, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
// The query itself is not logged, only its size.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (res *aisalesplan.SearchResult, err error) {
	defer func(begin time.Time) {
		var chars, citations int
		if res != nil {
			chars = len(res.Content)
			citations = len(res.Citations)
		}
		s.logger.Info("search",
			"backend", s.backend,
			"query_chars", len(query),
			"chars", chars,
			"citations", citations,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}
