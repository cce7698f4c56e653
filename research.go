package aisalesplan

import (
	"context"
	"time"
)

// Research is the combined result of a customer research run.
type Research struct {
	ID          string    `json:"id"`
	Customer    string    `json:"customer"`
	Theme       string    `json:"theme"`
	Markdown    string    `json:"markdown"`
	HTML        string    `json:"html"`
	Citations   []string  `json:"citations,omitempty"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the research contains invalid fields.
func (r *Research) Validate() error {
	if r.Customer == "" {
		return Errorf(EINVALID, "research customer required")
	}
	if r.Theme == "" {
		return Errorf(EINVALID, "research theme required")
	}
	if r.Markdown == "" {
		return Errorf(EINVALID, "research markdown required")
	}
	return nil
}

// Title returns the document title for the research.
func (r *Research) Title() string {
	return ResearchTitle(r.Customer, r.Theme)
}

// Researcher runs the full research flow for a customer.
type Researcher interface {
	// Research searches, combines and renders results for a customer.
	// Returns EINVALID if the customer is empty.
	Research(ctx context.Context, customer, theme string) (*Research, error)
}

// ResearchService represents a service for managing stored research.
type ResearchService interface {
	// CreateResearch stores a new research result.
	// The ID, content hash and creation time are assigned by the service.
	CreateResearch(ctx context.Context, r *Research) error

	// FindResearchByID retrieves research by ID.
	// Returns ENOTFOUND if the research does not exist.
	FindResearchByID(ctx context.Context, id string) (*Research, error)

	// FindResearch retrieves research matching the filter, newest first.
	FindResearch(ctx context.Context, filter ResearchFilter) ([]*Research, error)

	// DeleteResearch permanently removes research.
	// Returns ENOTFOUND if the research does not exist.
	DeleteResearch(ctx context.Context, id string) error
}

// ResearchFilter represents a filter for FindResearch.
type ResearchFilter struct {
	ID       *string `json:"id"`
	Customer *string `json:"customer"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
