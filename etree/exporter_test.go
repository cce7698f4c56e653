package etree_test

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/DennisFaucher/aisalesplan/etree"
	beevik "github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Exporter implements aisalesplan.Exporter at compile time.
var _ aisalesplan.Exporter = (*etree.Exporter)(nil)

const sampleMarkdown = `| Theme | Detail |
|---|---|
| **Chatbots** | Customer support [1] |

[1] https://example.com/acme-ai

## WWT Capabilities
| Capability | Link |
|---|---|
| AI Proving Ground | [APG](https://wwt.com/apg) |

WWT Experts
| Name | Title |
|---|---|
| Jane Doe [7] | Chief AI Advisor |`

func export(t *testing.T, doc *aisalesplan.ExportDocument) []byte {
	t.Helper()

	e := etree.NewExporter()
	e.Now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, e.Export(&buf, doc))
	return buf.Bytes()
}

func readPart(t *testing.T, data []byte, name string) *beevik.Document {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()

		b, err := io.ReadAll(rc)
		require.NoError(t, err)

		doc := beevik.NewDocument()
		require.NoError(t, doc.ReadFromBytes(b))
		return doc
	}

	t.Fatalf("part %s not found", name)
	return nil
}

// styled returns the text of the paragraphs using the given style.
func styled(doc *beevik.Document, style string) []string {
	var out []string
	for _, p := range doc.FindElements("//w:p") {
		ps := p.FindElement("w:pPr/w:pStyle")
		if ps == nil || ps.SelectAttrValue("w:val", "") != style {
			continue
		}
		if t := p.FindElement("w:r/w:t"); t != nil {
			out = append(out, t.Text())
		}
	}
	return out
}

func texts(doc *beevik.Document, path string) []string {
	var out []string
	for _, el := range doc.FindElements(path) {
		out = append(out, el.Text())
	}
	return out
}

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	doc := &aisalesplan.ExportDocument{Customer: "Acme", Theme: "AI", Markdown: sampleMarkdown}

	t.Run("writes all package parts", func(t *testing.T) {
		t.Parallel()

		data := export(t, doc)

		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, err)

		var names []string
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.ElementsMatch(t, []string{
			"[Content_Types].xml",
			"_rels/.rels",
			"docProps/core.xml",
			"word/_rels/document.xml.rels",
			"word/styles.xml",
			"word/document.xml",
		}, names)
	})

	t.Run("starts with title paragraph", func(t *testing.T) {
		t.Parallel()

		body := readPart(t, export(t, doc), "word/document.xml")

		first := body.FindElement("//w:body/w:p")
		require.NotNil(t, first)
		style := first.FindElement("w:pPr/w:pStyle")
		require.NotNil(t, style)
		assert.Equal(t, "Title", style.SelectAttrValue("w:val", ""))
		assert.Equal(t, "Acme AI Research", first.FindElement("w:r/w:t").Text())
	})

	t.Run("maps headings to heading styles", func(t *testing.T) {
		t.Parallel()

		body := readPart(t, export(t, doc), "word/document.xml")

		headings := styled(body, "Heading2")
		assert.Equal(t, []string{"WWT Capabilities", "WWT Experts"}, headings)
	})

	t.Run("writes tables with bold header and plain cell text", func(t *testing.T) {
		t.Parallel()

		body := readPart(t, export(t, doc), "word/document.xml")

		tables := body.FindElements("//w:tbl")
		require.Len(t, tables, 3)

		first := tables[0]
		assert.Equal(t, "TableGrid", first.FindElement("w:tblPr/w:tblStyle").SelectAttrValue("w:val", ""))

		rows := first.FindElements("w:tr")
		require.Len(t, rows, 2)
		assert.NotNil(t, rows[0].FindElement("w:tc/w:p/w:r/w:rPr/w:b"))
		assert.Nil(t, rows[1].FindElement("w:tc/w:p/w:r/w:rPr/w:b"))

		var cells []string
		for _, tc := range rows[1].FindElements("w:tc") {
			cells = append(cells, tc.FindElement("w:p/w:r/w:t").Text())
		}
		assert.Equal(t, []string{"Chatbots", "Customer support [1]"}, cells)

		assert.Contains(t, texts(body, "//w:tbl/w:tr/w:tc/w:p/w:r/w:t"), "APG")
	})

	t.Run("removes footnote markers from experts section only", func(t *testing.T) {
		t.Parallel()

		body := readPart(t, export(t, doc), "word/document.xml")

		all := texts(body, "//w:t")
		assert.Contains(t, all, "Jane Doe")
		assert.Contains(t, all, "[1] https://example.com/acme-ai")
		for _, s := range all {
			assert.NotContains(t, s, "[7]")
		}
	})

	t.Run("sets normal font to 11pt", func(t *testing.T) {
		t.Parallel()

		styles := readPart(t, export(t, doc), "word/styles.xml")

		sz := styles.FindElement("//w:docDefaults/w:rPrDefault/w:rPr/w:sz")
		require.NotNil(t, sz)
		assert.Equal(t, "22", sz.SelectAttrValue("w:val", ""))
		assert.NotNil(t, styles.FindElement("//w:style[@w:styleId='Heading4']"))
		assert.NotNil(t, styles.FindElement("//w:style[@w:styleId='TableGrid']"))
	})

	t.Run("records title and creation time", func(t *testing.T) {
		t.Parallel()

		core := readPart(t, export(t, doc), "docProps/core.xml")

		assert.Equal(t, "Acme AI Research", core.FindElement("//dc:title").Text())
		assert.Equal(t, "2026-01-02T03:04:05Z", core.FindElement("//dcterms:created").Text())
	})

	t.Run("clamps deep headings to level four", func(t *testing.T) {
		t.Parallel()

		body := readPart(t, export(t, &aisalesplan.ExportDocument{
			Customer: "Acme", Theme: "AI", Markdown: "###### Deep",
		}), "word/document.xml")

		assert.Equal(t, []string{"Deep"}, styled(body, "Heading4"))
	})

	t.Run("rejects incomplete document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := etree.NewExporter().Export(&buf, &aisalesplan.ExportDocument{Customer: "Acme"})

		require.Error(t, err)
		assert.Equal(t, aisalesplan.EINVALID, aisalesplan.ErrorCode(err))
		assert.Zero(t, buf.Len())
	})
}

func TestExporter_Metadata(t *testing.T) {
	t.Parallel()

	e := etree.NewExporter()

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", e.ContentType())
	assert.Equal(t, "docx", e.Extension())
}
