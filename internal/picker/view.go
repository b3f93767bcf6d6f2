package picker

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress backspace to go up or q to quit.", m.err)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("filesort - choose a directory to organize"))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render(m.currentPath))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render(fmt.Sprintf("%s here (%s)",
		pluralFiles(m.files), humanize.IBytes(uint64(max(m.bytes, 0))))))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("  (no subdirectories)"))
		b.WriteString("\n")
	}

	visible := m.height - 8
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(m.entries), start+visible)

	for i := start; i < end; i++ {
		e := m.entries[i]
		line := fmt.Sprintf("%-32s %12s %10s", e.Name+"/", pluralFiles(e.Files), humanize.IBytes(uint64(max(e.Bytes, 0))))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}
