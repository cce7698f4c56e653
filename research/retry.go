package research

import (
	"context"
	"time"

	"github.com/DennisFaucher/aisalesplan"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for search retries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second}
}

// SearchWithRetry runs a search, retrying EUNAVAILABLE failures after each
// of the given delays. Other errors are returned immediately.
// The logger function, if provided, is called for each retry attempt.
func SearchWithRetry(ctx context.Context, s aisalesplan.Searcher, query string, logger LogFunc, delays []time.Duration) (*aisalesplan.SearchResult, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := s.Search(ctx, query)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if aisalesplan.ErrorCode(err) != aisalesplan.EUNAVAILABLE {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry search (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
