// Package goquery post-processes rendered result HTML using goquery.
package goquery

import (
	"strings"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TableClass is added to every rendered table.
const TableClass = "result-table"

// Ensure Transformer implements aisalesplan.HTMLTransformer at compile time.
var _ aisalesplan.HTMLTransformer = (*Transformer)(nil)

// Transformer tidies the HTML rendered from a search answer:
//   - tables get the TableClass class;
//   - a known table title written as plain text right before a table
//     becomes an h2 heading;
//   - footnote markers are removed from the WWT Experts section.
type Transformer struct{}

// NewTransformer creates a new Transformer.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform rewrites the HTML fragment.
func (t *Transformer) Transform(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", aisalesplan.Errorf(aisalesplan.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("table").AddClass(TableClass)
	promoteTableTitles(doc)
	stripExpertFootnotes(doc)

	return doc.Find("body").Html()
}

// promoteTableTitles turns title paragraphs that directly precede a table
// into h2 headings. A title on the last line of a longer paragraph is moved
// out of the paragraph.
func promoteTableTitles(doc *goquery.Document) {
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if !p.Next().Is("table") {
			return
		}

		text := strings.TrimSpace(p.Text())
		if aisalesplan.IsTableTitle(text) {
			p.ReplaceWithHtml(heading(text))
			return
		}

		last := p.Contents().Last()
		if last.Length() == 0 {
			return
		}
		node := last.Get(0)
		if node.Type != html.TextNode || !aisalesplan.IsTableTitle(node.Data) {
			return
		}

		title := strings.TrimSpace(node.Data)
		if prev := node.PrevSibling; prev != nil && prev.Type == html.ElementNode && prev.Data == "br" {
			node.Parent.RemoveChild(prev)
		}
		node.Parent.RemoveChild(node)
		p.AfterHtml(heading(title))
	})
}

// stripExpertFootnotes removes [n] markers from the experts section. It
// starts at the first heading of any level mentioning WWT Experts, or at a
// bare WWT Experts paragraph, and runs up to the next h1 or h2 or another
// known table title.
func stripExpertFootnotes(doc *goquery.Document) {
	start := doc.Find("h1, h2, h3, h4, h5, h6, p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if s.Is("p") {
			return aisalesplan.IsExpertsTitle(s.Text())
		}
		return aisalesplan.MentionsExperts(s.Text())
	}).First()
	if start.Length() == 0 {
		return
	}

	section := start
	for s := start.Next(); s.Length() > 0; s = s.Next() {
		if s.Is("h1, h2") {
			break
		}
		if text := s.Text(); aisalesplan.IsTableTitle(text) && !aisalesplan.IsExpertsTitle(text) {
			break
		}
		section = section.AddSelection(s)
	}

	for _, n := range section.Nodes {
		stripTextNodes(n)
	}
}

func stripTextNodes(n *html.Node) {
	if n.Type == html.TextNode {
		n.Data = aisalesplan.StripFootnotes(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripTextNodes(c)
	}
}

func heading(title string) string {
	return "<h2>" + html.EscapeString(title) + "</h2>"
}
