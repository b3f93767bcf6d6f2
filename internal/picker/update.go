package picker

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.currentPath = msg.path
		m.entries = msg.entries
		m.files = msg.files
		m.bytes = msg.bytes
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.canceled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", "l", "right":
		if len(m.entries) > 0 && m.cursor < len(m.entries) {
			target := m.entries[m.cursor].Path
			m.cursor = 0
			m.notice = ""
			return m, m.loadEntries(target)
		}
		return m, nil

	case "backspace", "h", "left":
		parent := filepath.Dir(m.currentPath)
		if parent == m.currentPath {
			return m, nil
		}
		m.cursor = 0
		m.notice = ""
		return m, m.loadEntries(parent)

	case ".":
		m.showHidden = !m.showHidden
		return m, m.loadEntries(m.currentPath)

	case "s":
		return m.choose(m.currentPath)

	case " ":
		if len(m.entries) > 0 && m.cursor < len(m.entries) {
			return m.choose(m.entries[m.cursor].Path)
		}
		return m, nil
	}

	return m, nil
}

// choose accepts path only when it passes the directory preflight check.
func (m *Model) choose(path string) (tea.Model, tea.Cmd) {
	result := m.check("Selected directory", path)
	if !result.Passed {
		m.notice = result.Detail
		return m, nil
	}
	m.selected = path
	return m, tea.Quit
}
