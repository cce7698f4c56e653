package etree

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// normalFontSize is 11pt in half points.
const normalFontSize = 22

func newXMLDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func contentTypes() *etree.Document {
	doc := newXMLDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	for _, d := range [][2]string{
		{"rels", "application/vnd.openxmlformats-package.relationships+xml"},
		{"xml", "application/xml"},
	} {
		el := types.CreateElement("Default")
		el.CreateAttr("Extension", d[0])
		el.CreateAttr("ContentType", d[1])
	}

	for _, o := range [][2]string{
		{"/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{"/word/styles.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"},
		{"/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml"},
	} {
		el := types.CreateElement("Override")
		el.CreateAttr("PartName", o[0])
		el.CreateAttr("ContentType", o[1])
	}

	return doc
}

func relationships(rels ...[3]string) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPackageRels)
	for _, rel := range rels {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", rel[0])
		el.CreateAttr("Type", rel[1])
		el.CreateAttr("Target", rel[2])
	}
	return doc
}

func packageRels() *etree.Document {
	return relationships(
		[3]string{"rId1", relOfficeDocument, "word/document.xml"},
		[3]string{"rId2", relCoreProps, "docProps/core.xml"},
	)
}

func documentRels() *etree.Document {
	return relationships([3]string{"rId1", relStyles, "styles.xml"})
}

func coreProps(title string, created time.Time) *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCoreProps)
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	root.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	root.CreateElement("dc:title").SetText(title)
	root.CreateElement("dc:creator").SetText("aisalesplan")

	stamp := created.Format(time.RFC3339)
	for _, tag := range []string{"dcterms:created", "dcterms:modified"} {
		el := root.CreateElement(tag)
		el.CreateAttr("xsi:type", "dcterms:W3CDTF")
		el.SetText(stamp)
	}

	return doc
}

// styles builds word/styles.xml with the paragraph and table styles the
// document body refers to.
func styles() *etree.Document {
	doc := newXMLDocument()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsMain)

	rPr := root.CreateElement("w:docDefaults").CreateElement("w:rPrDefault").CreateElement("w:rPr")
	fonts := rPr.CreateElement("w:rFonts")
	fonts.CreateAttr("w:ascii", "Calibri")
	fonts.CreateAttr("w:hAnsi", "Calibri")
	rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(normalFontSize))

	normal := addStyle(root, "paragraph", "Normal", "Normal")
	normal.CreateAttr("w:default", "1")
	spacing := normal.CreateElement("w:pPr").CreateElement("w:spacing")
	spacing.CreateAttr("w:after", "120")

	title := addStyle(root, "paragraph", "Title", "Title")
	title.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
	title.CreateElement("w:next").CreateAttr("w:val", "Normal")
	addRunProps(title, 56, true)

	for i, size := range []int{32, 28, 26, 24} {
		level := i + 1
		id := "Heading" + strconv.Itoa(level)
		h := addStyle(root, "paragraph", id, "heading "+strconv.Itoa(level))
		h.CreateElement("w:basedOn").CreateAttr("w:val", "Normal")
		h.CreateElement("w:next").CreateAttr("w:val", "Normal")
		pPr := h.CreateElement("w:pPr")
		pPr.CreateElement("w:keepNext")
		sp := pPr.CreateElement("w:spacing")
		sp.CreateAttr("w:before", "240")
		sp.CreateAttr("w:after", "80")
		pPr.CreateElement("w:outlineLvl").CreateAttr("w:val", strconv.Itoa(level-1))
		addRunProps(h, size, true)
	}

	grid := addStyle(root, "table", "TableGrid", "Table Grid")
	borders := grid.CreateElement("w:tblPr").CreateElement("w:tblBorders")
	for _, side := range []string{"w:top", "w:left", "w:bottom", "w:right", "w:insideH", "w:insideV"} {
		b := borders.CreateElement(side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
		b.CreateAttr("w:space", "0")
		b.CreateAttr("w:color", "auto")
	}

	return doc
}

func addStyle(root *etree.Element, kind, id, name string) *etree.Element {
	style := root.CreateElement("w:style")
	style.CreateAttr("w:type", kind)
	style.CreateAttr("w:styleId", id)
	style.CreateElement("w:name").CreateAttr("w:val", name)
	return style
}

func addRunProps(style *etree.Element, size int, bold bool) {
	rPr := style.CreateElement("w:rPr")
	if bold {
		rPr.CreateElement("w:b")
	}
	rPr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(size))
}
