// Package research orchestrates a customer research run: the main and
// experts searches, rendering, and storage.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"golang.org/x/sync/errgroup"
)

var _ aisalesplan.Researcher = (*Service)(nil)

// Service implements aisalesplan.Researcher.
type Service struct {
	Searcher aisalesplan.Searcher
	Renderer aisalesplan.Renderer

	// Store persists completed research. Optional.
	Store aisalesplan.ResearchService

	// RetryDelays are the waits between retries of unavailable searches.
	// Nil uses DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Research runs the main and experts queries concurrently and combines
// their answers. A failed experts query is logged and left out.
func (s *Service) Research(ctx context.Context, customer, theme string) (*aisalesplan.Research, error) {
	customer = strings.TrimSpace(customer)
	theme = strings.TrimSpace(theme)
	if customer == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EINVALID, "Customer name is required")
	}
	if theme == "" {
		theme = aisalesplan.DefaultTheme
	}

	logger := s.logger()
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	retryLog := func(format string, args ...any) {
		logger.Warn("search retry", "customer", customer, "detail", fmt.Sprintf(format, args...))
	}

	var main, experts *aisalesplan.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := SearchWithRetry(gctx, s.Searcher, aisalesplan.ResearchQuery(customer, theme), retryLog, delays)
		if err != nil {
			return err
		}
		main = res
		return nil
	})
	g.Go(func() error {
		res, err := SearchWithRetry(gctx, s.Searcher, aisalesplan.ExpertsQuery(theme), retryLog, delays)
		if err != nil {
			if gctx.Err() == nil {
				logger.Warn("experts search failed", "theme", theme, "err", err)
			}
			return nil
		}
		experts = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if main == nil || strings.TrimSpace(main.Content) == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "No results returned from API")
	}

	var expertsContent string
	citations := main.Citations
	if experts != nil {
		expertsContent = experts.Content
		citations = mergeCitations(main.Citations, experts.Citations)
	}

	markdown := aisalesplan.CombineContent(main.Content, expertsContent)
	html, err := s.Renderer.Render(markdown)
	if err != nil {
		return nil, err
	}

	r := &aisalesplan.Research{
		Customer:  customer,
		Theme:     theme,
		Markdown:  markdown,
		HTML:      html,
		Citations: citations,
	}

	if s.Store != nil {
		if err := s.Store.CreateResearch(ctx, r); err != nil {
			// The answer is still useful without history.
			logger.Error("store research", "customer", customer, "err", err)
		}
	}

	return r, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// mergeCitations appends b to a, dropping duplicates and keeping order.
func mergeCitations(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, c := range list {
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
