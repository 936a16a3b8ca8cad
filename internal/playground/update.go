package playground

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Component):
		m.selectComponent(1)
	case key.Matches(msg, m.keys.Back):
		m.selectComponent(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Next):
		m.cycle(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycle(-1)
	case key.Matches(msg, m.keys.Explain):
		m.explain = !m.explain
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	}
	return m, nil
}

func (m *Model) selectComponent(delta int) {
	m.current = wrap(m.current+delta, len(m.entries))
	m.cursor = 0
}

func (m *Model) moveCursor(delta int) {
	rows := m.entries[m.current].rows
	if len(rows) == 0 {
		return
	}
	m.cursor = wrap(m.cursor+delta, len(rows))
}

// cycle steps the value of the selected variant. Rows live in a slice shared by model copies,
// so the entry is copied before writing.
func (m *Model) cycle(delta int) {
	e := m.entries[m.current]
	if len(e.rows) == 0 {
		return
	}
	rows := append([]row(nil), e.rows...)
	r := &rows[m.cursor]
	r.choice = wrap(r.choice+delta, len(r.options))
	m.replaceRows(rows)
}

func (m *Model) reset() {
	rows := append([]row(nil), m.entries[m.current].rows...)
	for i := range rows {
		rows[i].choice = 0
	}
	m.replaceRows(rows)
}

func (m *Model) replaceRows(rows []row) {
	entries := append([]entry(nil), m.entries...)
	entries[m.current].rows = rows
	m.entries = entries
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
