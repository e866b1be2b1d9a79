package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabless/internal/table"
)

var markStr = string(table.Mark)

// markGlyph is what the reserved marker rune looks like on screen.
const markGlyph = "│"

// KeyMap holds the viewer bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	LineStart  key.Binding
	NextCol    key.Binding
	PrevCol    key.Binding
	DropCol    key.Binding
	RestoreCol key.Binding
	PinHeader  key.Binding
	Search     key.Binding
	SearchNext key.Binding
	SearchPrev key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard viewer bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f", " ")),
		Top:        key.NewBinding(key.WithKeys("g", "home")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end")),
		LineStart:  key.NewBinding(key.WithKeys("0")),
		NextCol:    key.NewBinding(key.WithKeys("w", "right", "l")),
		PrevCol:    key.NewBinding(key.WithKeys("b", "left", "h")),
		DropCol:    key.NewBinding(key.WithKeys("D", "delete")),
		RestoreCol: key.NewBinding(key.WithKeys("u")),
		PinHeader:  key.NewBinding(key.WithKeys("H")),
		Search:     key.NewBinding(key.WithKeys("/")),
		SearchNext: key.NewBinding(key.WithKeys("n")),
		SearchPrev: key.NewBinding(key.WithKeys("N")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// PagerModel is the interactive viewer over a rendered document. It
// owns the viewport, the cursor, the pinned header pane, the dropped
// column set, and the remembered search pattern. The underlying table
// is read-only; every structural change (dropping or restoring a
// column) is an index filter followed by one re-render pass.
type PagerModel struct {
	tbl     *table.Table
	tabStop int
	doc     table.Document

	dropped   map[int]bool
	dropOrder []int

	topLine    int
	cursorLine int
	cursorCol  int

	headerPinned bool
	pinnedLine   int
	pinnedText   string

	lastSearch  string
	searchRe    *regexp.Regexp
	searching   bool
	searchInput textinput.Model

	keys   KeyMap
	width  int
	height int
}

// NewPagerModel renders the table once and positions the viewer at
// the top.
func NewPagerModel(tbl *table.Table, tabStop int) PagerModel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = SearchLabel
	ti.TextStyle = SearchInput
	ti.CharLimit = 256

	m := PagerModel{
		tbl:         tbl,
		tabStop:     tabStop,
		dropped:     make(map[int]bool),
		keys:        DefaultKeyMap(),
		searchInput: ti,
	}
	m.doc = table.Render(tbl, table.RenderOptions{TabStop: tabStop})
	m.cursorLine = m.doc.HeaderLines
	if m.cursorLine >= len(m.doc.Lines) {
		m.cursorLine = len(m.doc.Lines) - 1
	}
	return m
}

// SetSize sets the pager's drawing area.
func (m *PagerModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampViewport()
}

// Document exposes the current rendered document.
func (m PagerModel) Document() table.Document {
	return m.doc
}

// HeaderPinned reports whether a header row is pinned.
func (m PagerModel) HeaderPinned() bool {
	return m.headerPinned
}

// Searching reports whether the search prompt is open.
func (m PagerModel) Searching() bool {
	return m.searching
}

// SearchPattern returns the remembered search pattern.
func (m PagerModel) SearchPattern() string {
	return m.lastSearch
}

// CursorLine returns the cursor's line index within the document.
func (m PagerModel) CursorLine() int {
	return m.cursorLine
}

// CursorColumn returns the 1-based visible column under the cursor.
func (m PagerModel) CursorColumn() int {
	return m.columnAtCursor()
}

// Init satisfies tea.Model.
func (m PagerModel) Init() tea.Cmd {
	return nil
}

// Update handles key events.
func (m PagerModel) Update(msg tea.Msg) (PagerModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.searching {
		return m.updateSearchMode(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.MoveCursor(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.MoveCursor(1)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.ScrollUp(m.contentHeight())
	case key.Matches(keyMsg, m.keys.PageDown):
		m.ScrollDown(m.contentHeight())
	case key.Matches(keyMsg, m.keys.Top):
		m.JumpTop()
	case key.Matches(keyMsg, m.keys.Bottom):
		m.JumpBottom()
	case key.Matches(keyMsg, m.keys.LineStart):
		m.JumpLineStart()
	case key.Matches(keyMsg, m.keys.NextCol):
		m.NextColumn()
	case key.Matches(keyMsg, m.keys.PrevCol):
		m.PreviousColumn()
	case key.Matches(keyMsg, m.keys.DropCol):
		m.DropColumn()
	case key.Matches(keyMsg, m.keys.RestoreCol):
		m.RestoreColumn()
	case key.Matches(keyMsg, m.keys.PinHeader):
		m.ToggleHeader()
	case key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()
	case key.Matches(keyMsg, m.keys.SearchNext):
		m.SearchNext()
	case key.Matches(keyMsg, m.keys.SearchPrev):
		m.SearchPrevious()
	}
	return m, nil
}

func (m PagerModel) updateSearchMode(msg tea.KeyMsg) (PagerModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.Search(m.searchInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// MoveCursor moves the cursor delta lines and keeps it visible.
func (m *PagerModel) MoveCursor(delta int) {
	m.cursorLine += delta
	m.clampCursorLine()
	m.ensureCursorVisible()
}

// ScrollUp moves the viewport up n lines. With a header pinned the
// top visible line never rises above the pinned line + 1, so the
// viewport cannot scroll into the fixed pane.
func (m *PagerModel) ScrollUp(n int) {
	m.topLine -= n
	m.clampViewport()
	m.followViewport()
}

// ScrollDown moves the viewport down n lines.
func (m *PagerModel) ScrollDown(n int) {
	m.topLine += n
	m.clampViewport()
	m.followViewport()
}

// JumpTop moves the cursor to the first buffered line.
func (m *PagerModel) JumpTop() {
	m.cursorLine = 0
	m.ensureCursorVisible()
}

// JumpBottom moves the cursor to the last buffered line.
func (m *PagerModel) JumpBottom() {
	m.cursorLine = len(m.doc.Lines) - 1
	m.clampCursorLine()
	m.ensureCursorVisible()
}

// JumpLineStart moves the cursor to column 0 of the current line.
func (m *PagerModel) JumpLineStart() {
	m.cursorCol = 0
}

// NextColumn advances the cursor to just past the next column marker
// on the current line. The scan does not wrap across lines.
func (m *PagerModel) NextColumn() {
	line := m.currentLine()
	if m.cursorCol >= len(line) {
		return
	}
	if i := strings.Index(line[m.cursorCol:], markStr); i >= 0 {
		m.cursorCol += i + 1
	}
}

// PreviousColumn moves the cursor to just past the previous column
// marker on the current line.
func (m *PagerModel) PreviousColumn() {
	line := m.currentLine()
	end := m.cursorCol - 1
	if end > len(line) {
		end = len(line)
	}
	if end < 0 {
		return
	}
	if i := strings.LastIndex(line[:end], markStr); i >= 0 {
		m.cursorCol = i + 1
	}
}

// ToggleHeader pins the row immediately above the viewport top as a
// one-line non-scrolling pane, rewriting its blank column labels to
// their sequential indices for quick identification; unpinning
// restores the plain view. The underlying row data is never touched.
func (m *PagerModel) ToggleHeader() {
	if m.headerPinned {
		m.headerPinned = false
		m.pinnedText = ""
		return
	}
	idx := m.topLine - 1
	if idx < 0 || idx >= len(m.doc.Lines) {
		return
	}
	m.headerPinned = true
	m.pinnedLine = idx
	m.pinnedText = numberLabels(m.doc.Lines[idx])
}

// numberLabels fills the blank positional labels of a rendered row
// with their column numbers. Labels are blanks of exactly the width
// of their index, so the rewrite never shifts alignment.
func numberLabels(line string) string {
	var sb strings.Builder
	pos := 0
	i := 0
	for i < len(line) {
		if line[i] != byte(table.Mark) {
			sb.WriteByte(line[i])
			i++
			continue
		}
		pos++
		sb.WriteByte(line[i])
		i++
		num := strconv.Itoa(pos)
		if i+len(num) <= len(line) && isBlankLabel(line[i:i+len(num)]) {
			sb.WriteString(num)
			i += len(num)
		}
	}
	return sb.String()
}

func isBlankLabel(s string) bool {
	return strings.TrimLeft(s, " 1") == ""
}

// DropColumn removes the column under the cursor from view on every
// line. The cursor keeps its position in the remaining text, shifted
// off a marker if it lands on one. Dropping the last remaining column
// is allowed and leaves bare row markers.
func (m *PagerModel) DropColumn() {
	if len(m.tbl.Rows) == 0 || m.cursorLine < m.doc.HeaderLines {
		return
	}
	vis := m.columnAtCursor()
	if vis == 0 {
		return
	}
	orig := m.visibleToOriginal(vis)
	if orig < 0 {
		return
	}
	m.dropped[orig] = true
	m.dropOrder = append(m.dropOrder, orig)
	m.rerender()
}

// RestoreColumn brings back the most recently dropped column.
func (m *PagerModel) RestoreColumn() {
	n := len(m.dropOrder)
	if n == 0 {
		return
	}
	delete(m.dropped, m.dropOrder[n-1])
	m.dropOrder = m.dropOrder[:n-1]
	m.rerender()
}

// Search compiles and remembers a pattern, then jumps to its next
// occurrence. An empty pattern keeps the previous one.
func (m *PagerModel) Search(pattern string) {
	if pattern == "" {
		return
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return
	}
	m.lastSearch = pattern
	m.searchRe = re
	m.findMatch(1, false)
}

// SearchNext jumps to the next match of the remembered pattern.
func (m *PagerModel) SearchNext() {
	m.findMatch(1, true)
}

// SearchPrevious jumps to the previous match of the remembered
// pattern.
func (m *PagerModel) SearchPrevious() {
	m.findMatch(-1, true)
}

// findMatch scans lines in the given direction, wrapping around the
// document once.
func (m *PagerModel) findMatch(dir int, skipCurrent bool) {
	if m.searchRe == nil || len(m.doc.Lines) == 0 {
		return
	}
	n := len(m.doc.Lines)
	start := m.cursorLine
	if skipCurrent {
		start += dir
	}
	for i := 0; i < n; i++ {
		idx := ((start+dir*i)%n + n) % n
		if m.searchRe.MatchString(m.doc.Lines[idx]) {
			m.cursorLine = idx
			m.ensureCursorVisible()
			return
		}
	}
}

// rerender rebuilds the document after the dropped column set
// changed, preserving the cursor relative to the remaining text.
func (m *PagerModel) rerender() {
	m.doc = table.Render(m.tbl, table.RenderOptions{TabStop: m.tabStop, Dropped: m.dropped})
	m.clampCursorLine()
	line := m.currentLine()
	if m.cursorCol > len(line) {
		m.cursorCol = len(line)
	}
	if m.cursorCol < len(line) && line[m.cursorCol] == byte(table.Mark) {
		m.cursorCol++
	}
	if m.headerPinned && m.pinnedLine < len(m.doc.Lines) {
		m.pinnedText = numberLabels(m.doc.Lines[m.pinnedLine])
	}
}

// columnAtCursor counts markers from line start to the cursor.
func (m PagerModel) columnAtCursor() int {
	line := m.currentLine()
	end := m.cursorCol + 1
	if end > len(line) {
		end = len(line)
	}
	return strings.Count(line[:end], markStr)
}

// visibleToOriginal maps a 1-based visible column to its original
// column index, skipping dropped ones.
func (m PagerModel) visibleToOriginal(vis int) int {
	seen := 0
	for ci := 0; ci < m.tbl.Columns(); ci++ {
		if m.dropped[ci] {
			continue
		}
		seen++
		if seen == vis {
			return ci
		}
	}
	return -1
}

func (m PagerModel) currentLine() string {
	if m.cursorLine < 0 || m.cursorLine >= len(m.doc.Lines) {
		return ""
	}
	return m.doc.Lines[m.cursorLine]
}

func (m *PagerModel) clampCursorLine() {
	if m.cursorLine >= len(m.doc.Lines) {
		m.cursorLine = len(m.doc.Lines) - 1
	}
	if m.cursorLine < 0 {
		m.cursorLine = 0
	}
}

// contentHeight is the number of document lines on screen, after the
// pinned pane and the search prompt take their share.
func (m PagerModel) contentHeight() int {
	h := m.height
	if m.headerPinned {
		h--
	}
	if m.searching {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *PagerModel) minTop() int {
	if m.headerPinned {
		return m.pinnedLine + 1
	}
	return 0
}

func (m *PagerModel) clampViewport() {
	maxTop := len(m.doc.Lines) - m.contentHeight()
	if maxTop < 0 {
		maxTop = 0
	}
	if m.topLine > maxTop {
		m.topLine = maxTop
	}
	if m.topLine < m.minTop() {
		m.topLine = m.minTop()
	}
}

// followViewport drags the cursor along when the viewport scrolls
// away from it.
func (m *PagerModel) followViewport() {
	if m.cursorLine < m.topLine {
		m.cursorLine = m.topLine
	}
	if last := m.topLine + m.contentHeight() - 1; m.cursorLine > last {
		m.cursorLine = last
	}
	m.clampCursorLine()
}

func (m *PagerModel) ensureCursorVisible() {
	if m.cursorLine < m.topLine {
		m.topLine = m.cursorLine
	}
	if last := m.topLine + m.contentHeight() - 1; m.cursorLine > last {
		m.topLine = m.cursorLine - m.contentHeight() + 1
	}
	m.clampViewport()
}

// View renders the visible window.
func (m PagerModel) View() string {
	if len(m.doc.Lines) == 0 {
		return DimText.Render("(empty)")
	}

	var b strings.Builder
	if m.headerPinned {
		b.WriteString(PinnedRowStyle.Render(displayLine(m.pinnedText)))
		b.WriteString("\n")
	}

	h := m.contentHeight()
	end := m.topLine + h
	if end > len(m.doc.Lines) {
		end = len(m.doc.Lines)
	}
	for i := m.topLine; i < end; i++ {
		b.WriteString(m.styleLine(i).Render(displayLine(m.doc.Lines[i])))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if m.searching {
		b.WriteString("\n")
		b.WriteString(m.searchInput.View())
	}
	return b.String()
}

// styleLine picks the visual class for a document line: header block,
// trailing truncation marker, cursor line, or alternating body
// shading by parity among body lines.
func (m PagerModel) styleLine(i int) lipgloss.Style {
	if i == m.cursorLine {
		return CursorLineStyle
	}
	if i < m.doc.HeaderLines {
		return HeaderLineStyle
	}
	if m.doc.Truncated && i == len(m.doc.Lines)-1 {
		return TruncatedStyle
	}
	if (i-m.doc.HeaderLines)%2 == 1 {
		return RowOddStyle
	}
	return RowEvenStyle
}

func displayLine(line string) string {
	return strings.ReplaceAll(line, markStr, markGlyph)
}

// StatusLine summarizes the viewer state for the status bar.
func (m PagerModel) StatusLine() string {
	return fmt.Sprintf("%d/%d", m.cursorLine+1, len(m.doc.Lines))
}
