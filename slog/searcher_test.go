package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/mock"
	aslog "github.com/DennisFaucher/aisalesplan/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs backend, sizes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
				return &aisalesplan.SearchResult{Content: "| a |", Citations: []string{"https://example.com"}}, nil
			},
		}

		searcher := aslog.NewLoggingSearcher(inner, "perplexity", logger)
		res, err := searcher.Search(context.Background(), "secret query")

		require.NoError(t, err)
		assert.Equal(t, "| a |", res.Content)
		output := buf.String()
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "backend=perplexity")
		assert.Contains(t, output, "query_chars=12")
		assert.Contains(t, output, "chars=5")
		assert.Contains(t, output, "citations=1")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "secret query")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
				return nil, errors.New("api down")
			},
		}

		searcher := aslog.NewLoggingSearcher(inner, "gemini", logger)
		_, err := searcher.Search(context.Background(), "q")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "backend=gemini")
		assert.Contains(t, output, "chars=0")
		assert.Contains(t, output, "err=\"api down\"")
	})
}
