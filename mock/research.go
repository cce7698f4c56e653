package mock

import (
	"context"

	"github.com/DennisFaucher/aisalesplan"
)

var _ aisalesplan.ResearchService = (*ResearchService)(nil)

// ResearchService is a mock implementation of aisalesplan.ResearchService.
type ResearchService struct {
	CreateResearchFn   func(ctx context.Context, r *aisalesplan.Research) error
	FindResearchByIDFn func(ctx context.Context, id string) (*aisalesplan.Research, error)
	FindResearchFn     func(ctx context.Context, filter aisalesplan.ResearchFilter) ([]*aisalesplan.Research, error)
	DeleteResearchFn   func(ctx context.Context, id string) error
}

func (s *ResearchService) CreateResearch(ctx context.Context, r *aisalesplan.Research) error {
	return s.CreateResearchFn(ctx, r)
}

func (s *ResearchService) FindResearchByID(ctx context.Context, id string) (*aisalesplan.Research, error) {
	return s.FindResearchByIDFn(ctx, id)
}

func (s *ResearchService) FindResearch(ctx context.Context, filter aisalesplan.ResearchFilter) ([]*aisalesplan.Research, error) {
	return s.FindResearchFn(ctx, filter)
}

func (s *ResearchService) DeleteResearch(ctx context.Context, id string) error {
	return s.DeleteResearchFn(ctx, id)
}
