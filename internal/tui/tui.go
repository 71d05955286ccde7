// Package tui is the terminal presentation layer: a table of clipboard
// history entries, newest first, refreshed on a timer. Enter copies the
// selected entry back to the clipboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"go.klb.dev/cliplog/internal/clip"
	"go.klb.dev/cliplog/internal/history"
	"go.klb.dev/cliplog/internal/poller"
)

const (
	// RefreshInterval is how often the list is reloaded from the source.
	RefreshInterval = 5 * time.Second

	noticeTTL      = 3 * time.Second
	requestTimeout = 5 * time.Second

	indexWidth = 4
	timeWidth  = len(history.TimeLayout)
	minContent = 20
)

type (
	entriesMsg struct {
		entries []history.Entry
		err     error
	}
	recalledMsg struct {
		index int
		entry history.Entry
		err   error
	}
	tickMsg        time.Time
	clearNoticeMsg struct{ seq int }
)

// Model is the bubbletea model for the history list.
type Model struct {
	src       Source
	table     table.Model
	entries   []history.Entry
	width     int
	notice    string
	noticeErr bool
	noticeSeq int
	quitting  bool
}

// New returns a Model reading from src.
func New(src Source) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())
	return Model{src: src, table: t, width: 80}
}

// Run starts the UI on the terminal and blocks until the user quits or ctx
// is cancelled. Cancellation is not reported as an error.
func Run(ctx context.Context, src Source) error {
	_, err := tea.NewProgram(New(src), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Init loads the list and starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.width = msg.Width - h
		m.table.SetColumns(columns(m.width))
		m.table.SetWidth(m.width)
		// title, blank line, notice and help take four lines
		m.table.SetHeight(max(msg.Height-v-4, 3))
		m.table.SetRows(rows(m.entries, m.width))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.load()
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			return m, m.recall(m.selectedIndex())
		}

	case entriesMsg:
		if msg.err != nil {
			slog.Warn("history refresh failed", "err", msg.err)
			return m.setNotice(fmt.Sprintf("refresh failed: %v", msg.err), true)
		}
		m.setEntries(msg.entries)
		return m, nil

	case recalledMsg:
		switch {
		case msg.err == nil:
			return m.setNotice(fmt.Sprintf("copied entry %d (%s)", msg.index, msg.entry.Time()), false)
		case errors.Is(msg.err, history.ErrNotFound):
			slog.Info("recall ignored, entry no longer in history", "index", msg.index)
			nm, cmd := m.setNotice(fmt.Sprintf("entry %d is no longer in the history", msg.index), true)
			return nm, tea.Batch(cmd, m.load())
		case errors.Is(msg.err, clip.ErrWrite):
			slog.Error("recall failed", "index", msg.index, "err", msg.err)
			return m.setNotice("could not write to the clipboard", true)
		default:
			slog.Error("recall failed", "index", msg.index, "err", msg.err)
			return m.setNotice(fmt.Sprintf("recall failed: %v", msg.err), true)
		}

	case tickMsg:
		return m, tea.Batch(m.load(), tick())

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Clipboard history (%d)", len(m.entries))))
	b.WriteString("\n\n")
	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("Nothing copied yet."))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	switch {
	case m.notice == "":
	case m.noticeErr:
		b.WriteString(errorStyle.Render(m.notice))
	default:
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter copy • r refresh • q quit"))
	return docStyle.Render(b.String())
}

// setEntries replaces the rendered snapshot, keeping the cursor on the same
// row position when possible.
func (m *Model) setEntries(entries []history.Entry) {
	m.entries = entries
	cursor := m.table.Cursor()
	m.table.SetRows(rows(entries, m.width))
	if cursor >= len(entries) {
		cursor = max(len(entries)-1, 0)
	}
	m.table.SetCursor(cursor)
}

// selectedIndex maps the cursor row to a history index. Rows are newest
// first, the history is oldest first.
func (m Model) selectedIndex() int {
	return len(m.entries) - 1 - m.table.Cursor()
}

func (m Model) setNotice(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

func (m Model) load() tea.Cmd {
	src := m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := src.List(ctx)
		return entriesMsg{entries: entries, err: err}
	}
}

func (m Model) recall(index int) tea.Cmd {
	src := m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		e, err := src.Recall(ctx, index)
		return recalledMsg{index: index, entry: e, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func columns(width int) []table.Column {
	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Copied", Width: timeWidth},
		{Title: "Content", Width: contentWidth(width)},
	}
}

func contentWidth(width int) int {
	// each column is padded by one cell on both sides
	return max(width-indexWidth-timeWidth-6, minContent)
}

func rows(entries []history.Entry, width int) []table.Row {
	cw := contentWidth(width)
	out := make([]table.Row, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		out = append(out, table.Row{strconv.Itoa(i), e.Time(), oneLine(e.Content, cw)})
	}
	return out
}

// oneLine flattens text onto a single line of at most n runes.
func oneLine(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	return poller.Preview(text, max(n-1, 1))
}
