package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderOptions controls the alignment pass.
type RenderOptions struct {
	// TabStop is the horizontal increment column starts are rounded
	// up to. Defaults to 8.
	TabStop int
	// Dropped marks 0-based column indices hidden from view. Hidden
	// columns keep their width entries, so restoring one is just a
	// re-render.
	Dropped map[int]bool
}

// Document is the flat rendered text handed to the viewer.
type Document struct {
	Lines []string
	// HeaderLines counts lines up to and including the end-of-header
	// separator.
	HeaderLines int
	Truncated   bool
}

// BodyLines returns the number of data rows in the document.
func (d Document) BodyLines() int {
	n := len(d.Lines) - d.HeaderLines
	if d.Truncated {
		n--
	}
	return n
}

// Render materializes the aligned text for a finalized table. Widths
// were fixed during accumulation, so two rows with identical content
// in a column render that column at an identical leading offset.
func Render(t *Table, opts RenderOptions) Document {
	tab := opts.TabStop
	if tab <= 0 {
		tab = 8
	}

	lines := make([]string, 0, len(t.Header)+len(t.Rows)+2)
	for _, h := range t.Header {
		lines = append(lines, string(Mark)+h)
	}
	lines = append(lines, HeaderEndLine)
	headerLines := len(lines)

	for _, row := range t.Rows {
		lines = append(lines, renderRow(row, t.Widths, tab, opts.Dropped))
	}
	if t.Truncated {
		lines = append(lines, TruncatedLine)
	}

	return Document{Lines: lines, HeaderLines: headerLines, Truncated: t.Truncated}
}

// renderRow emits one body row: for each visible column, the marker,
// the column's positional label, the content (a single space when
// empty, so the markers stay apart), then space padding up to the
// column's width rounded to the next tab-stop boundary.
func renderRow(cells []string, widths []int, tab int, dropped map[int]bool) string {
	var sb strings.Builder
	pos := 0
	for ci, c := range cells {
		if dropped[ci] {
			continue
		}
		pos++
		if c == "" {
			c = " "
		}
		lbl := label(pos)
		sb.WriteRune(Mark)
		sb.WriteString(lbl)
		sb.WriteString(c)

		w := 1 + len(lbl) + runewidth.StringWidth(c)
		target := widths[ci]
		if rem := target % tab; rem != 0 {
			target += tab - rem
		}
		if w < target {
			sb.WriteString(strings.Repeat(" ", target-w))
		}
	}
	if pos == 0 {
		// Every data column is hidden; keep the bare row marker so
		// the row itself stays visible and addressable.
		return string(Mark)
	}
	return sb.String()
}
