package table

import (
	"strconv"
	"strings"
)

// Mark flags the start of a rendered column. The rune is reserved:
// body content that happens to contain it is not escaped, so column
// detection can misfire on such content. Known limitation.
const Mark = '\x01'

// placeholder is the internal separator used by the quote-aware
// splitter. The decoder replaces content tabs with spaces whenever tab
// is not the active delimiter, and when it is, every tab in the line
// is itself a column boundary.
const placeholder = '\t'

const (
	headerEndToken = "END-OF-HEADER"
	sentinelToken  = "END-OF-DATA"
)

// SentinelLine is appended by the producer when the entire input was
// consumed without interruption. The builder clears its truncation
// flag when it sees this line.
var SentinelLine = string(Mark) + sentinelToken + string(Mark)

// HeaderEndLine separates the header block from body rows in rendered
// output.
var HeaderEndLine = string(Mark) + headerEndToken + string(Mark)

// TruncatedLine trails the output when loading was stopped before the
// sentinel arrived.
const TruncatedLine = "truncated ..."

// label returns the positional label emitted after the marker for a
// 1-based column position. Only the first column shows its digits;
// later labels are same-width blanks, filled in on demand when the
// user pins a header row.
func label(col int) string {
	if col == 1 {
		return "1"
	}
	return strings.Repeat(" ", labelWidth(col))
}

// labelWidth returns the display width reserved for a column's label.
func labelWidth(col int) int {
	return len(strconv.Itoa(col))
}
