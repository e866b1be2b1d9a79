package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// cellPadding is the fixed per-column overhead: the marker rune plus
// one space of separation before the next column's content.
const cellPadding = 2

// buildState tracks header detection. The transition to bodyDetermined
// is one-way; classification never changes afterwards.
type buildState int

const (
	collectingHeader buildState = iota
	bodyDetermined
)

// Progress is an advisory snapshot emitted at exponentially spaced
// row-count checkpoints during loading.
type Progress struct {
	Rows  int
	Bytes int64
}

// Builder is the streaming accumulator behind one load: it classifies
// lines into header vs. body, buffers body rows, and tracks the
// per-column maximum rendered width. Widths are finalized only once
// the stream ends, so rendering is strictly a second pass.
type Builder struct {
	split   Splitter
	maxCell int

	// OnProgress, when set, receives advisory load progress. It is
	// called from the goroutine feeding the builder.
	OnProgress func(Progress)

	state      buildState
	header     []string
	prevFields int
	rows       [][]string
	widths     []int

	truncated bool
	lineCount int
	byteCount int64
	nextMark  int
}

// NewBuilder creates a builder. maxCell caps column content width
// before measurement; 0 means unlimited.
func NewBuilder(split Splitter, maxCell int) *Builder {
	return &Builder{
		split:   split,
		maxCell: maxCell,
		// Until the sentinel proves otherwise, assume the stream was
		// cut short.
		truncated: true,
		nextMark:  1,
	}
}

// Feed consumes one normalized line.
func (b *Builder) Feed(line string) {
	if line == SentinelLine {
		b.truncated = false
		return
	}

	b.byteCount += int64(len(line)) + 1
	b.lineCount++
	if b.lineCount >= b.nextMark {
		if b.OnProgress != nil {
			b.OnProgress(Progress{Rows: b.lineCount, Bytes: b.byteCount})
		}
		b.nextMark = int(float64(b.lineCount) * 1.03)
		if b.nextMark <= b.lineCount {
			b.nextMark = b.lineCount + 1
		}
	}

	switch b.state {
	case collectingHeader:
		if strings.HasPrefix(line, "#") {
			b.header = append(b.header, line)
			b.prevFields = len(b.split.Split(line))
			return
		}
		cells := b.split.Split(line)
		if n := len(b.header); n > 0 && len(cells) == b.prevFields {
			// The last comment line names the columns: pull it out of
			// the header block and run it through the body path, so
			// its widths count and it can be pinned in the viewer.
			names := b.header[n-1]
			b.header = b.header[:n-1]
			b.reset()
			b.state = bodyDetermined
			b.appendRow(b.split.Split(names))
			b.appendRow(cells)
			return
		}
		// Field counts differ (or there was no header at all): keep
		// the header block as collected and start the body here.
		b.reset()
		b.state = bodyDetermined
		b.appendRow(cells)
	case bodyDetermined:
		b.appendRow(b.split.Split(line))
	}
}

// reset discards buffered rows and width statistics. The column shape
// is only settled at the header/body transition, so anything gathered
// before that point is meaningless.
func (b *Builder) reset() {
	b.rows = nil
	b.widths = nil
}

func (b *Builder) appendRow(cells []string) {
	if b.maxCell > 0 {
		for i, c := range cells {
			if runewidth.StringWidth(c) > b.maxCell {
				cells[i] = runewidth.Truncate(c, b.maxCell, "")
			}
		}
	}
	b.rows = append(b.rows, cells)

	for i, c := range cells {
		w := runewidth.StringWidth(c)
		if w == 0 {
			w = 1 // empty cells render as a single space
		}
		w += labelWidth(i+1) + cellPadding
		for i >= len(b.widths) {
			b.widths = append(b.widths, 0)
		}
		if w > b.widths[i] {
			b.widths[i] = w
		}
	}
}

// Finish hands the accumulated table over. The builder must not be
// fed after this point.
func (b *Builder) Finish() *Table {
	return &Table{
		Header:    b.header,
		Rows:      b.rows,
		Widths:    b.widths,
		Truncated: b.truncated,
	}
}
