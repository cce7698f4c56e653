package aisalesplan

import (
	"html"
	"regexp"
	"strings"
)

// Table titles the search prompts ask the backend to use.
const (
	TitleCapabilities = "WWT Capabilities"
	TitleATCLabs      = "WWT ATC Labs"
	TitleExperts      = "WWT Experts"
)

// TableTitles lists the known table titles in prompt order.
var TableTitles = []string{TitleCapabilities, TitleATCLabs, TitleExperts}

// IsTableTitle reports whether s is a known table title, ignoring case and
// surrounding whitespace.
func IsTableTitle(s string) bool {
	s = strings.TrimSpace(s)
	for _, title := range TableTitles {
		if strings.EqualFold(s, title) {
			return true
		}
	}
	return false
}

// BlockKind identifies the type of a markdown block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockTable
)

// Block is a top-level element of a markdown answer.
type Block struct {
	Kind BlockKind

	// Level is the heading level (1-6). Only set for BlockHeading.
	Level int

	// Text is the heading or paragraph text.
	Text string

	// Headers and Rows hold table cells. Every row has len(Headers) cells.
	Headers []string
	Rows    [][]string
}

var (
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	separatorRe = regexp.MustCompile(`^\|?\s*:?-{3,}`)
	footnoteRe  = regexp.MustCompile(`\[\d+\]`)
	spaceRe     = regexp.MustCompile(`\s+`)
	filenameRe  = regexp.MustCompile(`[^A-Za-z0-9 _.-]+`)
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	breakRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	escapeRe    = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")
	codeRe      = regexp.MustCompile("`([^`]+)`")
	expertsRe   = regexp.MustCompile(`(?i)wwt\s+experts`)

	// Emphasis pairs as goldmark renders them. Underscores only count
	// outside words, so snake_case stays intact.
	strongStarRe  = regexp.MustCompile(`\*\*([^\s*](?:.*?[^\s*])?)\*\*`)
	strongUnderRe = regexp.MustCompile(`(^|[^\p{L}\p{N}_])__([^\s_](?:.*?[^\s_])?)__($|[^\p{L}\p{N}_])`)
	emStarRe      = regexp.MustCompile(`\*([^\s*](?:[^*]*[^\s*])?)\*`)
	emUnderRe     = regexp.MustCompile(`(^|[^\p{L}\p{N}_])_([^\s_](?:[^_]*[^\s_])?)_($|[^\p{L}\p{N}_])`)
	strikeRe      = regexp.MustCompile(`~~([^\s~](?:[^~]*[^\s~])?)~~`)
)

// ParseBlocks splits markdown into headings, pipe tables and paragraphs.
//
// A known table title on its own line directly before a table is treated
// as a level 2 heading. Other markdown constructs are kept as paragraph text.
func ParseBlocks(markdown string) []Block {
	if markdown == "" {
		return nil
	}

	lines := splitLines(markdown)
	n := len(lines)

	isTableStart := func(idx int) bool {
		if idx+1 >= n {
			return false
		}
		if !strings.HasPrefix(strings.TrimLeft(lines[idx], " \t"), "|") {
			return false
		}
		return separatorRe.MatchString(strings.TrimLeft(lines[idx+1], " \t"))
	}

	var blocks []Block
	for i := 0; i < n; {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{
				Kind:  BlockHeading,
				Level: len(m[1]),
				Text:  strings.TrimSpace(m[2]),
			})
			i++
			continue
		}

		if IsTableTitle(line) && isTableStart(i+1) {
			blocks = append(blocks, Block{Kind: BlockHeading, Level: 2, Text: line})
			i++
			continue
		}

		if isTableStart(i) {
			tableLines := []string{strings.TrimRight(lines[i], " \t")}
			i++
			for i < n && strings.TrimSpace(lines[i]) != "" && strings.HasPrefix(strings.TrimLeft(lines[i], " \t"), "|") {
				tableLines = append(tableLines, strings.TrimRight(lines[i], " \t"))
				i++
			}
			headers, rows := parseTable(tableLines)
			blocks = append(blocks, Block{Kind: BlockTable, Headers: headers, Rows: rows})
			continue
		}

		para := []string{line}
		i++
		for i < n {
			next := strings.TrimSpace(lines[i])
			if next == "" || headingRe.MatchString(next) || isTableStart(i) {
				break
			}
			para = append(para, next)
			i++
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: strings.TrimSpace(strings.Join(para, " "))})
	}

	return blocks
}

// parseTable parses pipe table lines into headers and rows.
// The first line is the header, the second the separator.
func parseTable(lines []string) ([]string, [][]string) {
	if len(lines) < 2 {
		return nil, nil
	}

	headers := splitRow(lines[0])
	width := len(headers)

	var rows [][]string
	for _, line := range lines[2:] {
		if !strings.HasPrefix(strings.TrimSpace(line), "|") {
			break
		}
		row := splitRow(line)
		switch {
		case len(row) < width:
			row = append(row, make([]string, width-len(row))...)
		case len(row) > width:
			row = row[:width]
		}
		rows = append(rows, row)
	}

	return headers, rows
}

// splitRow splits a pipe table row into cells. An escaped \| is a literal
// pipe inside a cell.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")
	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, `\|`) {
		row = row[:len(row)-1]
	}

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			cell.WriteByte('|')
			i++
		case row[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(row[i])
		}
	}
	return append(cells, strings.TrimSpace(cell.String()))
}

// MentionsExperts reports whether s refers to the WWT Experts section.
func MentionsExperts(s string) bool {
	return expertsRe.MatchString(s)
}

// IsExpertsTitle reports whether s is exactly the WWT Experts title.
func IsExpertsTitle(s string) bool {
	return strings.EqualFold(spaceRe.ReplaceAllString(strings.TrimSpace(s), " "), TitleExperts)
}

// StripExpertFootnotes removes bracketed numeric footnote markers such
// as [7] from the WWT Experts section only.
//
// The section starts at the first heading mentioning WWT Experts, of any
// level, or at a bare WWT Experts title line. It ends at the next first or
// second level heading, or at another known table title line.
func StripExpertFootnotes(markdown string) string {
	if markdown == "" {
		return markdown
	}

	lines := splitLines(markdown)

	start := -1
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if m := headingRe.FindStringSubmatch(line); m != nil && MentionsExperts(m[2]) || IsExpertsTitle(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return markdown
	}

	end := len(lines)
	for j := start + 1; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if m := headingRe.FindStringSubmatch(line); m != nil && len(m[1]) <= 2 {
			end = j
			break
		}
		if IsTableTitle(line) && !IsExpertsTitle(line) {
			end = j
			break
		}
	}

	for k := start; k < end; k++ {
		lines[k] = footnoteRe.ReplaceAllString(lines[k], "")
	}

	return strings.Join(lines, "\n")
}

// StripFootnotes removes all bracketed numeric footnote markers from s.
func StripFootnotes(s string) string {
	return footnoteRe.ReplaceAllString(s, "")
}

// escapeBase maps protected ASCII characters into the private use area
// while inline markup is stripped.
const escapeBase = 0xE000

// PlainText strips inline markdown from s the way it appears once
// rendered: links keep their text, emphasis, strikethrough and code
// markers are dropped, entities are decoded, line break tags become spaces
// and backslash escapes are resolved.
func PlainText(s string) string {
	s = escapeRe.ReplaceAllStringFunc(s, func(m string) string {
		return protect(m[1:])
	})
	s = codeRe.ReplaceAllStringFunc(s, func(m string) string {
		return protect(m[1 : len(m)-1])
	})
	s = linkRe.ReplaceAllString(s, "$1")
	s = breakRe.ReplaceAllString(s, " ")
	s = strongStarRe.ReplaceAllString(s, "$1")
	s = replaceFlanked(strongUnderRe, s)
	s = emStarRe.ReplaceAllString(s, "$1")
	s = replaceFlanked(emUnderRe, s)
	s = strikeRe.ReplaceAllString(s, "$1")
	s = html.UnescapeString(s)
	s = strings.Map(func(r rune) rune {
		if r >= escapeBase && r < escapeBase+0x80 {
			return r - escapeBase
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// replaceFlanked unwraps underscore emphasis. Matches consume the
// bounding characters, so adjacent spans need another pass.
func replaceFlanked(re *regexp.Regexp, s string) string {
	for {
		next := re.ReplaceAllString(s, "${1}${2}${3}")
		if next == s {
			return s
		}
		s = next
	}
}

// inlineMarkup lists the characters the inline rules look for.
const inlineMarkup = "\\`*_~[]()<>&"

// protect hides inline markup characters in s from the stripping rules.
func protect(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(inlineMarkup, r) {
			return r + escapeBase
		}
		return r
	}, s)
}

// SanitizeFilename reduces s to a safe file name component.
// Returns "export" when nothing usable remains.
func SanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = spaceRe.ReplaceAllString(s, " ")
	s = filenameRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
	if s == "" {
		return "export"
	}
	return s
}

// ExportFilename returns the download name for an exported research document.
func ExportFilename(customer, theme, ext string) string {
	return SanitizeFilename(customer) + "_" + SanitizeFilename(theme) + "_Research." + ext
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
