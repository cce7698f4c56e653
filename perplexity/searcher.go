// Package perplexity provides an aisalesplan.Searcher backed by the
// Perplexity chat completions API. The API is OpenAI compatible, so the
// official OpenAI client is used with Perplexity's base URL.
package perplexity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the Perplexity API endpoint.
	DefaultBaseURL = "https://api.perplexity.ai"

	// DefaultModel is the Perplexity search model.
	DefaultModel = "sonar"

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 60 * time.Second

	// SystemPrompt is sent ahead of every query.
	SystemPrompt = "You are a helpful assistant that searches the web and provides structured information."

	temperature = 0.2
	maxTokens   = 4000
)

// Ensure Searcher implements aisalesplan.Searcher at compile time.
var _ aisalesplan.Searcher = (*Searcher)(nil)

// Searcher implements aisalesplan.Searcher using Perplexity.
type Searcher struct {
	client     openai.Client
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(s *Searcher) {
		s.model = model
	}
}

// WithTimeout sets the timeout for API calls.
// Defaults to DefaultTimeout (60s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
// The client's timeout is left as is.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Searcher) {
		s.httpClient = c
	}
}

// NewSearcher creates a new Searcher.
// An empty API key is accepted; Search then reports EUNAUTHORIZED so the
// web front-end can show the problem to the user.
func NewSearcher(apiKey string, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: s.timeout}
	}

	s.client = openai.NewClient(
		option.WithAPIKey(s.apiKey),
		option.WithBaseURL(s.baseURL),
		option.WithHTTPClient(s.httpClient),
		option.WithMaxRetries(0),
	)

	return s
}

// Model returns the configured model name.
func (s *Searcher) Model() string {
	return s.model
}

// Search sends the query to Perplexity and returns the answer with citations.
func (s *Searcher) Search(ctx context.Context, query string) (*aisalesplan.SearchResult, error) {
	if s.apiKey == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EUNAUTHORIZED, "PERPLEXITY_API_KEY environment variable not set")
	}
	if strings.TrimSpace(query) == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EINVALID, "query required")
	}

	resp, err := s.client.Chat.Completions.New(ctx, BuildParams(s.model, query))
	if err != nil {
		return nil, translateError(ctx, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "No results returned from API")
	}

	return &aisalesplan.SearchResult{
		Content:   resp.Choices[0].Message.Content,
		Citations: Citations(resp.RawJSON()),
		Model:     resp.Model,
	}, nil
}

// BuildParams returns the chat completion request for a query.
func BuildParams(model, query string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	}
}

// Citations extracts the source URLs from a raw Perplexity response.
// Perplexity reports them in a top-level "citations" array; newer responses
// also carry "search_results" objects, used when citations are absent.
func Citations(raw string) []string {
	var urls []string
	for _, v := range gjson.Get(raw, "citations").Array() {
		if u := strings.TrimSpace(v.String()); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) > 0 {
		return urls
	}

	for _, v := range gjson.Get(raw, "search_results.#.url").Array() {
		if u := strings.TrimSpace(v.String()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// translateError maps client errors onto application error codes.
func translateError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "Failed to get results from Perplexity API: %v", err)
	}

	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" {
		msg = http.StatusText(apiErr.StatusCode)
	}
	msg = fmt.Sprintf("Perplexity API error (HTTP %d): %s", apiErr.StatusCode, msg)

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return aisalesplan.Errorf(aisalesplan.EUNAUTHORIZED, "%s", msg)
	case apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500:
		return aisalesplan.Errorf(aisalesplan.EUNAVAILABLE, "%s", msg)
	case apiErr.StatusCode == http.StatusBadRequest:
		return aisalesplan.Errorf(aisalesplan.EINVALID, "%s", msg)
	default:
		return aisalesplan.Errorf(aisalesplan.EINTERNAL, "%s", msg)
	}
}
