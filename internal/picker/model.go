package picker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"filesort/internal/preflight"
)

// Entry is one subdirectory shown in the list.
type Entry struct {
	Name  string
	Path  string
	Files int
	Bytes int64
}

// Model holds the picker state.
type Model struct {
	currentPath string
	entries     []Entry
	files       int
	bytes       int64
	cursor      int
	showHidden  bool
	width       int
	height      int

	selected string
	canceled bool
	notice   string
	err      error

	check func(name, path string) preflight.Result
}

// NewModel creates a picker rooted at start. An empty start uses the working
// directory.
func NewModel(start string) (*Model, error) {
	if strings.TrimSpace(start) == "" {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	return &Model{
		currentPath: abs,
		check:       preflight.CheckDirectory,
	}, nil
}

// Selected returns the chosen directory, or "" when the user quit without
// choosing.
func (m *Model) Selected() string {
	return m.selected
}

// Canceled reports whether the user quit without a selection.
func (m *Model) Canceled() bool {
	return m.canceled
}

// CurrentPath returns the directory being browsed.
func (m *Model) CurrentPath() string {
	return m.currentPath
}

// Entries returns the visible subdirectories.
func (m *Model) Entries() []Entry {
	return m.entries
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries(m.currentPath)
}

type entriesLoadedMsg struct {
	path    string
	entries []Entry
	files   int
	bytes   int64
	err     error
}

func (m *Model) loadEntries(path string) tea.Cmd {
	showHidden := m.showHidden
	return func() tea.Msg {
		entries, files, bytes, err := listDirectory(path, showHidden)
		return entriesLoadedMsg{path: path, entries: entries, files: files, bytes: bytes, err: err}
	}
}

// listDirectory returns the subdirectories of path sorted by name, plus the
// count and size of the regular files directly inside it.
func listDirectory(path string, showHidden bool) ([]Entry, int, int64, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, 0, 0, err
	}
	var (
		entries []Entry
		files   int
		bytes   int64
	)
	for _, de := range dirEntries {
		if !showHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		full := filepath.Join(path, de.Name())
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			e := Entry{Name: de.Name(), Path: full}
			e.Files, e.Bytes = countFiles(full)
			entries = append(entries, e)
		case info.Mode().IsRegular():
			files++
			bytes += info.Size()
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, files, bytes, nil
}

func countFiles(dir string) (int, int64) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}
	var (
		n     int
		total int64
	)
	for _, de := range dirEntries {
		info, err := os.Stat(filepath.Join(dir, de.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		n++
		total += info.Size()
	}
	return n, total
}

func (m *Model) helpLine() string {
	return "↑/↓ move | Enter: open | Backspace: up | s: select current | Space: select highlighted | .: hidden | q: quit"
}
