package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/ticketapp/internal/client/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017"))
	headStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusOpen:       lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#D4A017")),
		models.StatusClosed:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		models.PriorityMedium: lipgloss.NewStyle(),
		models.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
	}
)

// renderStatus pads before styling so columns line up with or without color.
func renderStatus(s models.Status) string {
	text := fmt.Sprintf("%-11s", s)
	if style, ok := statusStyles[s]; ok {
		return style.Render(text)
	}
	return text
}

func renderPriority(p models.Priority) string {
	text := fmt.Sprintf("%-6s", p)
	if style, ok := priorityStyles[p]; ok {
		return style.Render(text)
	}
	return text
}
