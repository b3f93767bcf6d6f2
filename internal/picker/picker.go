package picker

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the picker on the terminal and returns the chosen directory. It
// returns "" with a nil error when the user quits without choosing.
func Run(start string, in io.Reader, out io.Writer) (string, error) {
	model, err := NewModel(start)
	if err != nil {
		return "", err
	}
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	m, ok := final.(*Model)
	if !ok || m.Canceled() {
		return "", nil
	}
	return m.Selected(), nil
}
