// Package gemini provides an aisalesplan.Searcher backed by Google Gemini
// with Google Search grounding.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DennisFaucher/aisalesplan"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for research queries.
const DefaultModel = "gemini-2.5-flash"

// Ensure Searcher implements aisalesplan.Searcher at compile time.
var _ aisalesplan.Searcher = (*Searcher)(nil)

// Searcher implements aisalesplan.Searcher using Google Gemini.
type Searcher struct {
	client *genai.Client
	model  string
}

// NewSearcher creates a new Searcher.
// A nil client is accepted; Search then reports EUNAUTHORIZED.
func NewSearcher(client *genai.Client, model string) *Searcher {
	if model == "" {
		model = DefaultModel
	}
	return &Searcher{client: client, model: model}
}

// Search answers the query using Gemini grounded on Google Search.
func (s *Searcher) Search(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
	if s.client == nil {
		return nil, aisalesplan.Errorf(aisalesplan.EUNAUTHORIZED, "GEMINI_API_KEY environment variable not set")
	}
	if strings.TrimSpace(query) == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EINVALID, "query required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: query}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, translateError(ctx, err)
	}
	if result == nil {
		return nil, aisalesplan.Errorf(aisalesplan.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "No results returned from API")
	}

	return &aisalesplan.SearchResult{
		Content:   text,
		Citations: Citations(result),
		Model:     s.model,
	}, nil
}

// translateError maps Gemini API failures onto application error codes so
// that only transient failures are retried.
func translateError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		apiErr = *apiErrPtr
	default:
		return aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "Failed to get results from Gemini API: %v", err)
	}

	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" {
		msg = http.StatusText(apiErr.Code)
	}
	msg = fmt.Sprintf("Gemini API error (HTTP %d): %s", apiErr.Code, msg)

	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return aisalesplan.Errorf(aisalesplan.EUNAUTHORIZED, "%s", msg)
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
		return aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "%s", msg)
	case apiErr.Code == http.StatusBadRequest:
		return aisalesplan.Errorf(aisalesplan.EINVALID, "%s", msg)
	default:
		return aisalesplan.Errorf(aisalesplan.EINTERNAL, "%s", msg)
	}
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant that searches the web and provides structured information.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 4000,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}

// Citations returns the web sources Gemini grounded the first candidate on.
// Duplicate URIs are reported once.
func Citations(resp *genai.GenerateContentResponse) []string {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	var urls []string
	seen := make(map[string]bool)
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		urls = append(urls, chunk.Web.URI)
	}
	return urls
}
