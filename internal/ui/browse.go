package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/dragkit/internal/workspace"
)

// DeleteFunc removes the artifact behind an entry.
type DeleteFunc func(workspace.Entry) error

// BrowseArtifacts opens an interactive Bubble Tea table over workspace entries.
// Pressing 'd' removes the selected artifact through del when it is non-nil.
func BrowseArtifacts(ctx context.Context, entries []workspace.Entry, del DeleteFunc) error {
	m := newBrowser(entries, del)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

var columns = []table.Column{
	{Title: "Name", Width: 40},
	{Title: "Kind", Width: 10},
	{Title: "Size", Width: 8},
	{Title: "Modified", Width: 16},
}

type browser struct {
	table   table.Model
	entries []workspace.Entry
	del     DeleteFunc
	status  string
}

func newBrowser(entries []workspace.Entry, del DeleteFunc) browser {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rowsFor(entries)),
		table.WithFocused(true),
		table.WithHeight(min(12, max(3, len(entries)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return browser{table: t, entries: entries, del: del}
}

func rowsFor(entries []workspace.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			truncate(e.Name, 40),
			e.Kind,
			humanSize(e.Size),
			e.ModTime.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func (m browser) Init() tea.Cmd { return nil }

func (m browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return m, tea.Quit
		case "d":
			return m.deleteSelected(), nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browser) deleteSelected() browser {
	i := m.table.Cursor()
	if m.del == nil || i < 0 || i >= len(m.entries) {
		return m
	}
	e := m.entries[i]
	if err := m.del(e); err != nil {
		m.status = "delete failed: " + err.Error()
		return m
	}
	rest := make([]workspace.Entry, 0, len(m.entries)-1)
	rest = append(rest, m.entries[:i]...)
	rest = append(rest, m.entries[i+1:]...)
	m.entries = rest
	m.table.SetRows(rowsFor(rest))
	if i >= len(rest) && i > 0 {
		m.table.SetCursor(i - 1)
	}
	m.status = "removed " + e.Name
	return m
}

func (m browser) View() string {
	if len(m.entries) == 0 {
		return "(no artifacts)\n"
	}
	out := m.table.View() + "\n↑/↓ to navigate • d to delete • enter/q to exit\n"
	if m.status != "" {
		out += m.status + "\n"
	}
	return out
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
