package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabless/internal/input"
	"tabless/internal/logging"
	"tabless/internal/table"
	"tabless/internal/ui"
)

// phase tracks whether the input is still streaming in or the viewer
// owns the screen. Loading runs concurrently with the key handler
// acting as the abort listener; once it ends the app is strictly
// sequential.
type phase int

const (
	loadingPhase phase = iota
	viewingPhase
)

// Options carries the validated tabulation settings.
type Options struct {
	Delimiter string
	Quoted    bool
	Truncate  int
	TabStop   int
}

// tickMsg is sent to clear expired status messages.
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// progressMsg carries an advisory load checkpoint.
type progressMsg table.Progress

// loadDoneMsg carries the finished (or aborted) table.
type loadDoneMsg struct {
	tbl *table.Table
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	phase     phase
	src       *input.Source
	opts      Options
	log       *logging.Logger
	loading   ui.LoadingModel
	pager     ui.PagerModel
	statusbar ui.StatusBarModel

	ctx        context.Context
	cancel     context.CancelFunc
	progressCh chan table.Progress

	width  int
	height int
	err    error
}

// NewModel creates the root app model over an opened source. The
// cancellation context is the abort channel for the whole loading
// pipeline: cancelling it also closes the source, which unblocks a
// read in flight.
func NewModel(src *input.Source, opts Options, log *logging.Logger) Model {
	ctx, cancel := context.WithCancel(context.Background())
	context.AfterFunc(ctx, func() { src.Close() })

	return Model{
		phase:      loadingPhase,
		src:        src,
		opts:       opts,
		log:        log,
		loading:    ui.NewLoadingModel(src.Name),
		statusbar:  ui.NewStatusBarModel(src.Name),
		ctx:        ctx,
		cancel:     cancel,
		progressCh: make(chan table.Progress, 1),
	}
}

// Err returns the fatal load error, if any, for reporting after the
// program exits.
func (m Model) Err() error {
	return m.err
}

// Init starts the loading pipeline.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitProgress(), tickCmd())
}

// loadCmd runs the decode → tokenize → accumulate pipeline and hands
// back the finished table.
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		dec := input.NewDecoder(m.src, m.opts.Delimiter != "\t")
		b := table.NewBuilder(table.Splitter{
			Delim:  m.opts.Delimiter,
			Quoted: m.opts.Quoted,
		}, m.opts.Truncate)
		b.OnProgress = func(p table.Progress) {
			select {
			case m.progressCh <- p:
			default:
			}
		}
		tbl, err := table.Load(m.ctx, dec, b)
		close(m.progressCh)
		return loadDoneMsg{tbl: tbl, err: err}
	}
}

// waitProgress blocks on the progress channel; Update re-arms it
// after every checkpoint.
func (m Model) waitProgress() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-m.progressCh
		if !ok {
			return nil
		}
		return progressMsg(p)
	}
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tickMsg:
		m.statusbar.ClearExpiredMessage()
		return m, tickCmd()

	case progressMsg:
		m.loading.SetProgress(msg.Rows, msg.Bytes)
		return m, m.waitProgress()

	case loadDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Error("load failed", "error", msg.err)
			return m, tea.Quit
		}
		m.cancel() // release the abort watcher; the source is done
		m.log.Info("load finished",
			"rows", len(msg.tbl.Rows),
			"columns", msg.tbl.Columns(),
			"truncated", msg.tbl.Truncated)
		m.pager = ui.NewPagerModel(msg.tbl, m.opts.TabStop)
		m.statusbar.SetTruncated(msg.tbl.Truncated)
		if msg.tbl.Truncated {
			m.statusbar.SetMessage("Loading stopped; showing partial data", ui.MsgInfo)
		}
		m.phase = viewingPhase
		m.recalcLayout()
		m.syncStatusBar()
		return m, nil

	case tea.KeyMsg:
		if m.phase == loadingPhase {
			if msg.String() == "ctrl+c" {
				m.cancel()
				return m, tea.Quit
			}
			// Any other key aborts loading; the viewer opens on the
			// partial table when the pipeline winds down.
			m.cancel()
			return m, nil
		}
		var cmd tea.Cmd
		m.pager, cmd = m.pager.Update(msg)
		m.syncStatusBar()
		return m, cmd
	}

	return m, nil
}

func (m *Model) syncStatusBar() {
	doc := m.pager.Document()
	m.statusbar.SetPosition(m.pager.CursorLine()+1, len(doc.Lines), m.pager.CursorColumn())
	m.statusbar.SetSearch(m.pager.SearchPattern())
	m.statusbar.SetPinned(m.pager.HeaderPinned())
}

func (m *Model) recalcLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.loading.SetSize(m.width, m.height)
	m.pager.SetSize(m.width, m.height-1)
	m.statusbar.SetWidth(m.width)
}

// View renders the active phase.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.phase == loadingPhase {
		return m.loading.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.pager.View(), m.statusbar.View())
}
