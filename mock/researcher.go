package mock

import (
	"context"

	"github.com/DennisFaucher/aisalesplan"
)

var _ aisalesplan.Researcher = (*Researcher)(nil)

// Researcher is a mock implementation of aisalesplan.Researcher.
type Researcher struct {
	ResearchFn func(ctx context.Context, customer, theme string) (*aisalesplan.Research, error)
}

func (r *Researcher) Research(ctx context.Context, customer, theme string) (*aisalesplan.Research, error) {
	return r.ResearchFn(ctx, customer, theme)
}
