package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MessageType represents the type of status message.
type MessageType int

const (
	MsgInfo MessageType = iota
	MsgError
)

// StatusBarModel is the context-aware status bar at the bottom of the
// viewer.
type StatusBarModel struct {
	fileName    string
	curLine     int
	totalLines  int
	curColumn   int
	truncated   bool
	searchPat   string
	pinned      bool
	message     string
	messageType MessageType
	messageTime time.Time
	width       int
}

// NewStatusBarModel creates a new status bar for the named input.
func NewStatusBarModel(fileName string) StatusBarModel {
	return StatusBarModel{fileName: fileName}
}

// SetWidth sets the status bar width.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// SetPosition updates the cursor position readout.
func (m *StatusBarModel) SetPosition(line, total, column int) {
	m.curLine = line
	m.totalLines = total
	m.curColumn = column
}

// SetTruncated marks the load as cut short by the user.
func (m *StatusBarModel) SetTruncated(t bool) {
	m.truncated = t
}

// SetSearch shows the remembered search pattern.
func (m *StatusBarModel) SetSearch(pattern string) {
	m.searchPat = pattern
}

// SetPinned shows whether a header row is pinned.
func (m *StatusBarModel) SetPinned(p bool) {
	m.pinned = p
}

// SetMessage sets a transient status message.
func (m *StatusBarModel) SetMessage(msg string, t MessageType) {
	m.message = msg
	m.messageType = t
	m.messageTime = time.Now()
}

// ClearExpiredMessage clears info messages after 3 seconds.
func (m *StatusBarModel) ClearExpiredMessage() {
	if m.messageType == MsgInfo && time.Since(m.messageTime) > 3*time.Second {
		m.message = ""
	}
}

// View renders the status bar.
func (m StatusBarModel) View() string {
	left := m.fileName
	if m.truncated {
		left += " " + StatusTruncStyle.Render("[truncated]")
	}
	if m.pinned {
		left += " [header]"
	}
	if m.searchPat != "" {
		left += fmt.Sprintf(" /%s", m.searchPat)
	}
	if m.message != "" {
		var msgStyle lipgloss.Style
		switch m.messageType {
		case MsgError:
			msgStyle = StatusErrorStyle
		default:
			msgStyle = StatusBarStyle
		}
		left = msgStyle.Render(m.message)
	}

	right := fmt.Sprintf("col %d | line %d/%d", m.curColumn, m.curLine, m.totalLines)

	w := m.width
	if w < 20 {
		w = 20
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBarStyle.Width(w).Render(left + strings.Repeat(" ", gap) + right)
}
