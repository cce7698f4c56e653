package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ aisalesplan.ResearchService = (*ResearchService)(nil)

// timeFormat is RFC3339 with fixed-width nanoseconds so stored timestamps
// sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const researchColumns = "id, customer, theme, markdown, html, citations, content_hash, created_at"

// ResearchService implements aisalesplan.ResearchService using SQLite.
type ResearchService struct {
	db *DB
}

// NewResearchService creates a new ResearchService.
func NewResearchService(db *DB) *ResearchService {
	return &ResearchService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// CreateResearch stores a new research result.
func (s *ResearchService) CreateResearch(ctx context.Context, r *aisalesplan.Research) error {
	if err := r.Validate(); err != nil {
		return err
	}

	citations, err := json.Marshal(nonNil(r.Citations))
	if err != nil {
		return fmt.Errorf("failed to encode citations: %w", err)
	}

	r.ID = uuid.New().String()
	r.CreatedAt = time.Now().UTC()
	r.ContentHash = hashContent(r.Markdown)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO research (`+researchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Customer, r.Theme, r.Markdown, r.HTML, string(citations), r.ContentHash,
		r.CreatedAt.Format(timeFormat))

	return err
}

// FindResearchByID retrieves research by ID.
func (s *ResearchService) FindResearchByID(ctx context.Context, id string) (*aisalesplan.Research, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+researchColumns+" FROM research WHERE id = ?", id)

	r, err := scanResearch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, aisalesplan.Errorf(aisalesplan.ENOTFOUND, "research not found")
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FindResearch retrieves research matching the filter, newest first.
// The customer filter ignores case.
func (s *ResearchService) FindResearch(ctx context.Context, filter aisalesplan.ResearchFilter) ([]*aisalesplan.Research, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + researchColumns + " FROM research WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Customer != nil {
		query.WriteString(" AND customer = ? COLLATE NOCASE")
		args = append(args, strings.TrimSpace(*filter.Customer))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	// SQLite requires a LIMIT before OFFSET; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, max(filter.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*aisalesplan.Research
	for rows.Next() {
		r, err := scanResearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// DeleteResearch permanently removes research.
func (s *ResearchService) DeleteResearch(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM research WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return aisalesplan.Errorf(aisalesplan.ENOTFOUND, "research not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResearch(row scanner) (*aisalesplan.Research, error) {
	var r aisalesplan.Research
	var citations, createdAt string

	if err := row.Scan(&r.ID, &r.Customer, &r.Theme, &r.Markdown, &r.HTML,
		&citations, &r.ContentHash, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(citations), &r.Citations); err != nil {
		return nil, fmt.Errorf("failed to parse citations: %w", err)
	}
	if len(r.Citations) == 0 {
		r.Citations = nil
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
	}
	r.CreatedAt = t

	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
