package tui

import (
	"fmt"
	"strings"
)

const minBarWidth = 10

// View renders the run label, a progress bar, the task list and the latest
// output of the running task.
func (m *Model) View() string {
	var b strings.Builder
	if m.Run != "" {
		b.WriteString(titleStyle.Render(m.Run))
		b.WriteString("\n")
	}

	m.Bar.Width = max(m.Width-20, minBarWidth)
	b.WriteString(m.Bar.ViewAs(m.Ratio()))
	b.WriteString(countStyle.Render(fmt.Sprintf(" %d/%d", m.Current, m.Max)))
	b.WriteString("\n\n")

	for _, node := range m.Tasks {
		fmt.Fprintf(&b, "%s %s\n", statusIcon(node.Status), node.Name)
		if node == m.ActiveTask && node.Status == StatusRunning {
			for _, line := range node.Logs {
				b.WriteString(logStyle.Render(line))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
