package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResearch(customer string) *aisalesplan.Research {
	return &aisalesplan.Research{
		Customer:  customer,
		Theme:     "AI",
		Markdown:  "| Use case | Detail |\n|---|---|\n| Chatbots | Support |",
		HTML:      `<table class="result-table"></table>`,
		Citations: []string{"https://example.com/a"},
	}
}

func TestResearchService_CreateResearch(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		r := newResearch("Acme")

		require.NoError(t, svc.CreateResearch(context.Background(), r))

		assert.NotEmpty(t, r.ID)
		assert.Len(t, r.ContentHash, 16)
		assert.False(t, r.CreatedAt.IsZero())
	})

	t.Run("same markdown yields same hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		ctx := context.Background()
		a, b := newResearch("Acme"), newResearch("Globex")

		require.NoError(t, svc.CreateResearch(ctx, a))
		require.NoError(t, svc.CreateResearch(ctx, b))

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.ContentHash, b.ContentHash)
	})

	t.Run("returns EINVALID for incomplete research", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))

		err := svc.CreateResearch(context.Background(), &aisalesplan.Research{Customer: "Acme"})
		require.Error(t, err)
		assert.Equal(t, aisalesplan.EINVALID, aisalesplan.ErrorCode(err))
	})
}

func TestResearchService_FindResearchByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored research", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		ctx := context.Background()
		r := newResearch("Acme")
		require.NoError(t, svc.CreateResearch(ctx, r))

		found, err := svc.FindResearchByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, found.ID)
		assert.Equal(t, r.Customer, found.Customer)
		assert.Equal(t, r.Theme, found.Theme)
		assert.Equal(t, r.Markdown, found.Markdown)
		assert.Equal(t, r.HTML, found.HTML)
		assert.Equal(t, r.Citations, found.Citations)
		assert.Equal(t, r.ContentHash, found.ContentHash)
		assert.True(t, r.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns nil citations when none stored", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		ctx := context.Background()
		r := newResearch("Acme")
		r.Citations = nil
		require.NoError(t, svc.CreateResearch(ctx, r))

		found, err := svc.FindResearchByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Citations)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))

		_, err := svc.FindResearchByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, aisalesplan.ENOTFOUND, aisalesplan.ErrorCode(err))
	})
}

func TestResearchService_FindResearch(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.ResearchService, customers ...string) []*aisalesplan.Research {
		t.Helper()
		var out []*aisalesplan.Research
		for _, c := range customers {
			r := newResearch(c)
			require.NoError(t, svc.CreateResearch(context.Background(), r))
			out = append(out, r)
		}
		return out
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		created := seed(t, svc, "Acme", "Globex", "Initech")

		found, err := svc.FindResearch(context.Background(), aisalesplan.ResearchFilter{})
		require.NoError(t, err)
		require.Len(t, found, 3)
		assert.Equal(t, created[2].ID, found[0].ID)
		assert.Equal(t, created[0].ID, found[2].ID)
	})

	t.Run("filters by customer ignoring case", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		seed(t, svc, "Acme", "Globex", "Acme")

		customer := " acme "
		found, err := svc.FindResearch(context.Background(), aisalesplan.ResearchFilter{Customer: &customer})
		require.NoError(t, err)
		assert.Len(t, found, 2)
		for _, r := range found {
			assert.Equal(t, "Acme", r.Customer)
		}
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		created := seed(t, svc, "Acme", "Globex")

		found, err := svc.FindResearch(context.Background(), aisalesplan.ResearchFilter{ID: &created[1].ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Globex", found[0].Customer)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		var customers []string
		for i := 0; i < 5; i++ {
			customers = append(customers, fmt.Sprintf("Customer %d", i))
		}
		seed(t, svc, customers...)
		ctx := context.Background()

		page, err := svc.FindResearch(ctx, aisalesplan.ResearchFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Customer 3", page[0].Customer)
		assert.Equal(t, "Customer 2", page[1].Customer)

		rest, err := svc.FindResearch(ctx, aisalesplan.ResearchFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, "Customer 0", rest[1].Customer)
	})

	t.Run("returns empty result for no matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))

		found, err := svc.FindResearch(context.Background(), aisalesplan.ResearchFilter{})
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestResearchService_DeleteResearch(t *testing.T) {
	t.Parallel()

	t.Run("removes research", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))
		ctx := context.Background()
		r := newResearch("Acme")
		require.NoError(t, svc.CreateResearch(ctx, r))

		require.NoError(t, svc.DeleteResearch(ctx, r.ID))

		_, err := svc.FindResearchByID(ctx, r.ID)
		assert.Equal(t, aisalesplan.ENOTFOUND, aisalesplan.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewResearchService(setupTestDB(t))

		err := svc.DeleteResearch(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, aisalesplan.ENOTFOUND, aisalesplan.ErrorCode(err))
	})
}
