// Package etree exports research as Microsoft Word (.docx) documents.
// The WordprocessingML parts are built with etree and packaged with
// archive/zip.
package etree

import (
	"archive/zip"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/beevik/etree"
)

// ContentType is the MIME type of a .docx file.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Extension is the .docx file extension.
const Extension = "docx"

// Ensure Exporter implements aisalesplan.Exporter at compile time.
var _ aisalesplan.Exporter = (*Exporter)(nil)

// Exporter writes research as a .docx package.
type Exporter struct {
	// Now returns the document creation time. Defaults to time.Now.
	Now func() time.Time
}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{Now: time.Now}
}

// ContentType returns the .docx MIME type.
func (e *Exporter) ContentType() string { return ContentType }

// Extension returns "docx".
func (e *Exporter) Extension() string { return Extension }

// Export writes doc to w as a .docx package.
func (e *Exporter) Export(w io.Writer, doc *aisalesplan.ExportDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	blocks := aisalesplan.ParseBlocks(aisalesplan.StripExpertFootnotes(doc.Markdown))

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", coreProps(doc.Title(), now().UTC())},
		{"word/_rels/document.xml.rels", documentRels()},
		{"word/styles.xml", styles()},
		{"word/document.xml", document(doc.Title(), blocks)},
	}

	zw := zip.NewWriter(w)
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := part.doc.WriteTo(f); err != nil {
			return fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

// document builds word/document.xml.
func document(title string, blocks []aisalesplan.Block) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsMain)
	root.CreateAttr("xmlns:r", nsRelationships)

	body := root.CreateElement("w:body")
	addParagraph(body, "Title", title, false)

	for _, b := range blocks {
		switch b.Kind {
		case aisalesplan.BlockHeading:
			addParagraph(body, "Heading"+strconv.Itoa(clamp(b.Level, 1, 4)), aisalesplan.PlainText(b.Text), false)
		case aisalesplan.BlockParagraph:
			addParagraph(body, "", aisalesplan.PlainText(b.Text), false)
		case aisalesplan.BlockTable:
			if len(b.Headers) == 0 {
				continue
			}
			addTable(body, b.Headers, b.Rows)
			// Word merges adjacent tables without a paragraph between them.
			addParagraph(body, "", "", false)
		}
	}

	sect := body.CreateElement("w:sectPr")
	pgSz := sect.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")
	pgMar := sect.CreateElement("w:pgMar")
	for _, attr := range [][2]string{
		{"w:top", "1440"}, {"w:right", "1440"}, {"w:bottom", "1440"}, {"w:left", "1440"},
		{"w:header", "720"}, {"w:footer", "720"}, {"w:gutter", "0"},
	} {
		pgMar.CreateAttr(attr[0], attr[1])
	}

	return doc
}

func addParagraph(parent *etree.Element, style, text string, bold bool) {
	p := parent.CreateElement("w:p")
	if style != "" {
		p.CreateElement("w:pPr").CreateElement("w:pStyle").CreateAttr("w:val", style)
	}
	if text == "" {
		return
	}
	r := p.CreateElement("w:r")
	if bold {
		r.CreateElement("w:rPr").CreateElement("w:b")
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// textWidth is the usable page width in twentieths of a point for a
// letter page with one inch margins.
const textWidth = 9360

func addTable(body *etree.Element, headers []string, rows [][]string) {
	tbl := body.CreateElement("w:tbl")

	tblPr := tbl.CreateElement("w:tblPr")
	tblPr.CreateElement("w:tblStyle").CreateAttr("w:val", "TableGrid")
	tblW := tblPr.CreateElement("w:tblW")
	tblW.CreateAttr("w:w", "0")
	tblW.CreateAttr("w:type", "auto")

	colWidth := strconv.Itoa(textWidth / len(headers))
	grid := tbl.CreateElement("w:tblGrid")
	for range headers {
		grid.CreateElement("w:gridCol").CreateAttr("w:w", colWidth)
	}

	addRow := func(cells []string, bold bool) {
		tr := tbl.CreateElement("w:tr")
		for _, cell := range cells {
			tc := tr.CreateElement("w:tc")
			tcW := tc.CreateElement("w:tcPr").CreateElement("w:tcW")
			tcW.CreateAttr("w:w", colWidth)
			tcW.CreateAttr("w:type", "dxa")
			addParagraph(tc, "", aisalesplan.PlainText(cell), bold)
		}
	}

	addRow(headers, true)
	for _, row := range rows {
		addRow(row, false)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
