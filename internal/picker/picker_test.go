package picker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"filesort/internal/preflight"
	"filesort/internal/testsupport"
)

func runCmd(t *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); ok {
		return msg
	}
	m.Update(msg)
	return msg
}

func press(t *testing.T, m *Model, key tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(key)
	return runCmd(t, m, cmd)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T, root string) *Model {
	t.Helper()
	m, err := NewModel(root)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	runCmd(t, m, m.Init())
	return m
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testsupport.WriteContent(t, root, "top.txt", "hello")
	testsupport.WriteContent(t, root, "beta/a.jpg", "1234")
	testsupport.WriteContent(t, root, "beta/b.mp3", "12")
	testsupport.WriteContent(t, root, "Alpha/nested/deep.txt", "x")
	testsupport.WriteContent(t, root, ".hidden/secret.txt", "x")
	return root
}

func TestListsSubdirectoriesSortedWithCounts(t *testing.T) {
	root := fixture(t)
	m := newLoadedModel(t, root)

	entries := m.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Name != "Alpha" || entries[1].Name != "beta" {
		t.Fatalf("unexpected order: %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[0].Files != 0 {
		t.Fatalf("Alpha files = %d, want 0", entries[0].Files)
	}
	if entries[1].Files != 2 || entries[1].Bytes != 6 {
		t.Fatalf("beta = %+v", entries[1])
	}
	if m.files != 1 || m.bytes != 5 {
		t.Fatalf("current dir files=%d bytes=%d", m.files, m.bytes)
	}
}

func TestToggleHidden(t *testing.T) {
	m := newLoadedModel(t, fixture(t))
	press(t, m, runes("."))
	if len(m.Entries()) != 3 || m.Entries()[0].Name != ".hidden" {
		t.Fatalf("entries with hidden = %+v", m.Entries())
	}
}

func TestNavigateDownAndUp(t *testing.T) {
	root := fixture(t)
	m := newLoadedModel(t, root)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.CurrentPath() != filepath.Join(root, "beta") {
		t.Fatalf("current = %s", m.CurrentPath())
	}
	if len(m.Entries()) != 0 || m.files != 2 {
		t.Fatalf("beta listing entries=%d files=%d", len(m.Entries()), m.files)
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.CurrentPath() != root {
		t.Fatalf("after backspace current = %s", m.CurrentPath())
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newLoadedModel(t, fixture(t))
	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	for range 5 {
		press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
}

func TestSelectCurrentDirectory(t *testing.T) {
	root := fixture(t)
	m := newLoadedModel(t, root)

	msg := press(t, m, runes("s"))
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit, got %T", msg)
	}
	if m.Selected() != root || m.Canceled() {
		t.Fatalf("selected=%q canceled=%v", m.Selected(), m.Canceled())
	}
}

func TestSelectHighlightedDirectory(t *testing.T) {
	root := fixture(t)
	m := newLoadedModel(t, root)

	press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Selected() != filepath.Join(root, "Alpha") {
		t.Fatalf("selected = %q", m.Selected())
	}
}

func TestRejectedSelectionShowsNotice(t *testing.T) {
	m := newLoadedModel(t, fixture(t))
	m.check = func(name, path string) preflight.Result {
		return preflight.Result{Name: name, Detail: path + " (error: not writable)"}
	}

	msg := press(t, m, runes("s"))
	if msg != nil {
		t.Fatalf("expected no command, got %T", msg)
	}
	if m.Selected() != "" {
		t.Fatalf("selected = %q", m.Selected())
	}
	if !strings.Contains(m.View(), "not writable") {
		t.Fatalf("view missing notice:\n%s", m.View())
	}
}

func TestQuitCancels(t *testing.T) {
	m := newLoadedModel(t, fixture(t))
	msg := press(t, m, runes("q"))
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected quit, got %T", msg)
	}
	if !m.Canceled() || m.Selected() != "" {
		t.Fatalf("canceled=%v selected=%q", m.Canceled(), m.Selected())
	}
}

func TestUnreadableDirectoryShowsError(t *testing.T) {
	root := t.TempDir()
	m, err := NewModel(filepath.Join(root, "gone"))
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	runCmd(t, m, m.Init())
	if !strings.HasPrefix(m.View(), "Error:") {
		t.Fatalf("view = %q", m.View())
	}
	if err := os.Mkdir(filepath.Join(root, "gone"), 0o755); err != nil {
		t.Fatal(err)
	}
	press(t, m, runes("."))
	if strings.HasPrefix(m.View(), "Error:") {
		t.Fatal("error should clear after a successful reload")
	}
}

func TestViewShowsSizes(t *testing.T) {
	m := newLoadedModel(t, fixture(t))
	view := m.View()
	for _, want := range []string{"beta/", "2 files", "6 B", "1 file here (5 B)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
