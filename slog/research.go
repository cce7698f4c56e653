package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/DennisFaucher/aisalesplan"
)

var (
	_ aisalesplan.Researcher      = (*LoggingResearcher)(nil)
	_ aisalesplan.ResearchService = (*LoggingResearchService)(nil)
)

// LoggingResearcher wraps a Researcher with logging.
type LoggingResearcher struct {
	next   aisalesplan.Researcher
	logger *slog.Logger
}

// NewLoggingResearcher creates a new LoggingResearcher.
func NewLoggingResearcher(next aisalesplan.Researcher, logger *slog.Logger) *LoggingResearcher {
	return &LoggingResearcher{next: next, logger: logger}
}

// Research delegates to the wrapped researcher and logs the outcome.
func (r *LoggingResearcher) Research(ctx context.Context, customer, theme string) (res *aisalesplan.Research, err error) {
	defer func(begin time.Time) {
		var id string
		var chars int
		if res != nil {
			id = res.ID
			chars = len(res.Markdown)
		}
		r.logger.Info("research",
			"customer", customer,
			"theme", theme,
			"id", id,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Research(ctx, customer, theme)
}

// LoggingResearchService wraps a ResearchService, logging writes.
// Reads are delegated without logging.
type LoggingResearchService struct {
	next   aisalesplan.ResearchService
	logger *slog.Logger
}

// NewLoggingResearchService creates a new LoggingResearchService.
func NewLoggingResearchService(next aisalesplan.ResearchService, logger *slog.Logger) *LoggingResearchService {
	return &LoggingResearchService{next: next, logger: logger}
}

// CreateResearch delegates to the wrapped service and logs the new ID.
func (s *LoggingResearchService) CreateResearch(ctx context.Context, r *aisalesplan.Research) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create research",
			"customer", r.Customer,
			"id", r.ID,
			"hash", r.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateResearch(ctx, r)
}

func (s *LoggingResearchService) FindResearchByID(ctx context.Context, id string) (*aisalesplan.Research, error) {
	return s.next.FindResearchByID(ctx, id)
}

func (s *LoggingResearchService) FindResearch(ctx context.Context, filter aisalesplan.ResearchFilter) ([]*aisalesplan.Research, error) {
	return s.next.FindResearch(ctx, filter)
}

// DeleteResearch delegates to the wrapped service and logs the operation.
func (s *LoggingResearchService) DeleteResearch(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete research",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteResearch(ctx, id)
}
