package table

import (
	"strings"
	"testing"
)

func markerOffsets(line string) []int {
	var offs []int
	for i := 0; i < len(line); i++ {
		if line[i] == byte(Mark) {
			offs = append(offs, i)
		}
	}
	return offs
}

func TestRenderAlignment(t *testing.T) {
	b := NewBuilder(Splitter{Delim: "\t"}, 0)
	tbl := feedAll(b, "a\tb\tc", "1\t2\t3", "4\t55\t6", SentinelLine)

	if len(tbl.Header) != 0 {
		t.Fatalf("Header = %q, want none", tbl.Header)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("Rows = %d, want 3", len(tbl.Rows))
	}

	doc := Render(tbl, RenderOptions{TabStop: 8})
	if doc.Lines[0] != HeaderEndLine {
		t.Fatalf("Lines[0] = %q, want end-of-header separator", doc.Lines[0])
	}
	if doc.HeaderLines != 1 {
		t.Fatalf("HeaderLines = %d, want 1", doc.HeaderLines)
	}

	// Column 2 must fit "55" plus its label; every row places column
	// 3 at the same offset because widths are finalized before any
	// row is emitted.
	body := doc.Lines[doc.HeaderLines:]
	first := markerOffsets(body[0])
	for _, line := range body[1:] {
		offs := markerOffsets(line)
		if len(offs) != len(first) {
			t.Fatalf("marker count %d, want %d in %q", len(offs), len(first), line)
		}
		for i := range offs {
			if offs[i] != first[i] {
				t.Errorf("column %d starts at %d, want %d in %q", i+1, offs[i], first[i], line)
			}
		}
	}
	if !strings.Contains(body[2], "55") {
		t.Errorf("row %q does not contain its content", body[2])
	}
}

func TestRenderHeaderBlock(t *testing.T) {
	b := NewBuilder(Splitter{Delim: ","}, 0)
	tbl := feedAll(b, "#one", "#two,extra", "1,2,3", SentinelLine)

	doc := Render(tbl, RenderOptions{})
	if got, want := doc.Lines[0], string(Mark)+"#one"; got != want {
		t.Errorf("Lines[0] = %q, want %q", got, want)
	}
	if got, want := doc.Lines[1], string(Mark)+"#two,extra"; got != want {
		t.Errorf("Lines[1] = %q, want %q", got, want)
	}
	if doc.Lines[2] != HeaderEndLine {
		t.Errorf("Lines[2] = %q, want end-of-header separator", doc.Lines[2])
	}
	if doc.HeaderLines != 3 {
		t.Errorf("HeaderLines = %d, want 3", doc.HeaderLines)
	}
}

func TestRenderEmptyCell(t *testing.T) {
	b := NewBuilder(Splitter{Delim: ","}, 0)
	tbl := feedAll(b, "x,,y", SentinelLine)

	doc := Render(tbl, RenderOptions{})
	line := doc.Lines[doc.HeaderLines]
	if got := len(markerOffsets(line)); got != 3 {
		t.Fatalf("marker count = %d, want 3 in %q", got, line)
	}
	// The empty middle cell renders as a single space, keeping the
	// third marker in place.
	if strings.Contains(line, string(Mark)+string(Mark)) {
		t.Errorf("adjacent markers in %q", line)
	}
}

func TestRenderTruncationMarker(t *testing.T) {
	t.Run("aborted load trails the marker line", func(t *testing.T) {
		b := NewBuilder(Splitter{Delim: ","}, 0)
		tbl := feedAll(b, "a,b")
		doc := Render(tbl, RenderOptions{})
		if got := doc.Lines[len(doc.Lines)-1]; got != TruncatedLine {
			t.Errorf("last line = %q, want %q", got, TruncatedLine)
		}
	})

	t.Run("complete load does not", func(t *testing.T) {
		b := NewBuilder(Splitter{Delim: ","}, 0)
		tbl := feedAll(b, "a,b", SentinelLine)
		doc := Render(tbl, RenderOptions{})
		for _, line := range doc.Lines {
			if line == TruncatedLine {
				t.Errorf("unexpected truncation marker in %q", doc.Lines)
			}
		}
	})
}

func TestRenderDroppedColumns(t *testing.T) {
	b := NewBuilder(Splitter{Delim: ","}, 0)
	tbl := feedAll(b, "a,bb,c", "1,22,3", SentinelLine)

	doc := Render(tbl, RenderOptions{Dropped: map[int]bool{1: true}})
	for _, line := range doc.Lines[doc.HeaderLines:] {
		if strings.Contains(line, "bb") || strings.Contains(line, "22") {
			t.Errorf("dropped column content still present in %q", line)
		}
		if got := len(markerOffsets(line)); got != 2 {
			t.Errorf("marker count = %d, want 2 in %q", got, line)
		}
		// Labels renumber from 1, so the first visible column shows
		// its digit and no labels collide.
		if line[1] != '1' {
			t.Errorf("first label = %q, want %q in %q", line[1], '1', line)
		}
	}
}

func TestRenderAllColumnsDropped(t *testing.T) {
	b := NewBuilder(Splitter{Delim: ","}, 0)
	tbl := feedAll(b, "a,b", "1,2", SentinelLine)

	doc := Render(tbl, RenderOptions{Dropped: map[int]bool{0: true, 1: true}})
	for _, line := range doc.Lines[doc.HeaderLines:] {
		if line != string(Mark) {
			t.Errorf("line = %q, want bare row marker", line)
		}
	}
}

func TestDocumentBodyLines(t *testing.T) {
	b := NewBuilder(Splitter{Delim: ","}, 0)
	tbl := feedAll(b, "#h,h", "a,b", "1,2")
	doc := Render(tbl, RenderOptions{})
	if got := doc.BodyLines(); got != 2 {
		t.Errorf("BodyLines = %d, want 2", got)
	}
}
