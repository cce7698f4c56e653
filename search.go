package aisalesplan

import (
	"context"
	"strings"
)

// DefaultTheme is the research theme used when none is given.
const DefaultTheme = "AI"

// SearchResult is the answer returned by an AI search backend.
type SearchResult struct {
	// Content is the markdown answer.
	Content string `json:"content"`

	// Citations are the source URLs reported by the backend, in order.
	Citations []string `json:"citations,omitempty"`

	// Model is the model that produced the answer.
	Model string `json:"model,omitempty"`
}

// Searcher sends a research query to an AI search backend.
type Searcher interface {
	// Search runs a single query and returns the markdown answer.
	// Returns EUNAUTHORIZED when the backend has no credentials and
	// EUNAVAILABLE when the backend returned no usable answer.
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// ResearchQuery builds the main query covering the customer's public plans,
// the matching WWT capabilities, and the related WWT ATC labs.
func ResearchQuery(customer, theme string) string {
	title := ResearchTitle(customer, theme)

	var sb strings.Builder
	w := func(s string) { sb.WriteString(s); sb.WriteByte(' ') }

	w("Step 1: Search the public web for " + customer + "'s planned use of " + theme + ".")
	w("Extract and normalize the key " + theme + " themes from the web findings.")
	w("Write the summary to a markdown table titled '" + title + "'.")
	w("Do not include a date column.")
	w("Include the footnotes and footnote URLs following the markdown table.")

	w("Step 2: Map " + customer + "'s Planned Use of " + theme + " to WWT Capabilities.")
	w("Use the content in the '" + title + "' table to map to WWT Capabilities.")
	w("Search wwt.com for content aligned to identified themes.")
	w("CRITICAL: Only include WWT capabilities that you can verify actually exist on wwt.com from your web search.")
	w("Do NOT create, invent, or guess capabilities. Only include capabilities that you can find and verify on wwt.com.")
	w("If you cannot verify a capability exists, do not include it in the table.")
	w("Evaluate and rank all findings by relevance to " + customer + "'s planned use, recency, and credibility.")
	w("Write the summary to a markdown table titled '" + TitleCapabilities + "'.")
	w("CRITICAL: Do NOT include any footnote notation (like [1], [2], etc.) in the table cells.")
	w("Use a markdown heading (##) for the table title '" + TitleCapabilities + "' before the table.")
	w("Do not include a date or a rank column.")
	w("Footnotes are not needed for this step. Do not include footnote notation in the table.")

	w("Step 3: Map " + theme + " to WWT ATC Labs.")
	w("Search wwt.com/atc for labs related to " + theme + ".")
	w("CRITICAL: Only include WWT ATC Labs that you can verify actually exist on wwt.com/atc from your web search.")
	w("Do NOT create, invent, or guess labs. Only include labs that you can find and verify exist on wwt.com/atc.")
	w("If you cannot verify a lab exists, do not include it in the table.")
	w("Write the summary to a markdown table titled '" + TitleATCLabs + "'.")
	w("CRITICAL: Do NOT include any footnote notation (like [1], [2], etc.) in the table cells.")
	w("Use a markdown heading (##) for the table title '" + TitleATCLabs + "' before the table.")
	w("Do not include a date or a rank column.")
	w("Footnotes are not needed for this step. Do not include footnote notation in the table.")

	return strings.TrimSpace(sb.String())
}

// ExpertsQuery builds the separate experts query. It carries no customer
// context so the answer is not biased by the main research.
func ExpertsQuery(theme string) string {
	var sb strings.Builder
	w := func(s string) { sb.WriteString(s); sb.WriteByte(' ') }

	w("Step 4: List the names and titles of WWT " + theme + " Experts.")
	w("Write the names and titles to a table titled '" + TitleExperts + "'.")
	w("CRITICAL: Do NOT include any footnote notation (like [1], [2], etc.) in the table cells or anywhere in the Experts section.")
	w("Only include the expert name and title/role - no footnotes, no citation markers, no reference numbers.")
	w("Limit the number of Experts to 10. If there are more than 10 Experts, only include the top 10 by relevance to " + theme + " and credibility.")

	return strings.TrimSpace(sb.String())
}

// ResearchTitle returns the title used for the research table and document.
func ResearchTitle(customer, theme string) string {
	return customer + " " + theme + " Research"
}

// CombineContent joins the main answer and the experts answer.
// The experts answer is omitted when empty.
func CombineContent(main, experts string) string {
	if strings.TrimSpace(experts) == "" {
		return main
	}
	return main + "\n\n" + experts
}
