package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/cvsspop/schema"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	labelStyle       = lipgloss.NewStyle().Width(36)
	focusLabelStyle  = labelStyle.Bold(true).Foreground(lipgloss.Color("6"))
	optionStyle      = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle    = optionStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	cursorStyle      = lipgloss.NewStyle().Underline(true).Bold(true)
	tokenStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	badgeStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	panelStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// severityStyle colors a severity band.
func severityStyle(sev schema.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch sev {
	case schema.SeverityCritical:
		return base.Foreground(lipgloss.Color("1"))
	case schema.SeverityHigh:
		return base.Foreground(lipgloss.Color("5"))
	case schema.SeverityMedium:
		return base.Foreground(lipgloss.Color("3"))
	case schema.SeverityLow:
		return base.Foreground(lipgloss.Color("6"))
	case schema.SeverityNone:
		return base.Foreground(lipgloss.Color("2"))
	default:
		return base.Foreground(lipgloss.Color("8"))
	}
}
