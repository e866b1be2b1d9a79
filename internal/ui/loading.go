package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// LoadingModel is the screen shown while the input streams in. It
// displays the advisory progress checkpoints and the abort hint; the
// actual cancellation is wired up by the app.
type LoadingModel struct {
	fileName string
	rows     int
	bytes    int64
	width    int
	height   int
}

// NewLoadingModel creates the loading screen for the named input.
func NewLoadingModel(fileName string) LoadingModel {
	return LoadingModel{fileName: fileName}
}

// SetSize sets the drawing area.
func (m *LoadingModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetProgress records the latest checkpoint.
func (m *LoadingModel) SetProgress(rows int, bytes int64) {
	m.rows = rows
	m.bytes = bytes
}

// View renders the loading screen.
func (m LoadingModel) View() string {
	var b strings.Builder
	b.WriteString(AccentText.Bold(true).Render("tabless"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Loading %s\n", m.fileName))
	if m.rows > 0 {
		// The byte total divided by 100,000 approximates megabytes;
		// advisory only.
		b.WriteString(DimText.Render(fmt.Sprintf("  %s rows, ~%s MB",
			humanize.Comma(int64(m.rows)), humanize.Comma(m.bytes/100000))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(DimText.Render("  Press any key to stop loading and view what arrived | Ctrl+C to quit"))
	return b.String()
}
