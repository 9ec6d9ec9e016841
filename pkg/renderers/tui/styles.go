package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	pageStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func renderHeader(title string, page, total int, paginated bool) string {
	out := headerStyle.Render(title)
	if paginated {
		out += "  " + pageStyle.Render(fmt.Sprintf("page %d of %d", page+1, total))
	}
	return out
}

func renderError(message string) string {
	return errorStyle.Render("✗ " + message)
}
