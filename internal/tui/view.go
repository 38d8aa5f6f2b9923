package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/cvsspop/core/vector"
	"github.com/huangsam/cvsspop/schema"
	"github.com/mattn/go-runewidth"
)

const aboutText = `The Common Vulnerability Scoring System (CVSS) captures the principal
characteristics of a vulnerability and produces a numerical score reflecting
its severity. Pick a value for every base metric on the CVSS 3.1 or CVSS 4.0
tab, or press e to paste a vector string. Selections are saved between runs.

Severity bands: None 0.0, Low 0.1-3.9, Medium 4.0-6.9, High 7.0-8.9,
Critical 9.0-10.0.`

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if ms, ok := m.currentSchema(); ok {
		b.WriteString(m.viewMetrics(ms))
		b.WriteString("\n")
		b.WriteString(m.viewScore(ms))
		b.WriteString("\n")
		b.WriteString(m.viewTooltip(ms))
	} else {
		b.WriteString(aboutText)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	b.WriteString(m.viewNotice())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())
	b.WriteString("\n")
	return b.String()
}

func (m *Model) viewTabs() string {
	tabs := make([]string, 0, len(schema.AllTabs))
	for i, tab := range schema.AllTabs {
		label := string(rune('1'+i)) + " " + tabTitle(tab)
		if tab == m.sess.Tab() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func tabTitle(tab schema.Tab) string {
	if std, ok := schema.StandardFor(tab); ok {
		return std.Title()
	}
	return "About"
}

func (m *Model) viewMetrics(ms *schema.MetricSchema) string {
	selection := m.sess.Selection(ms.Standard)
	lines := make([]string, 0, len(ms.Metrics))
	for r, metric := range ms.Metrics {
		label := labelStyle.Render(metric.Name + " (" + metric.Key + ")")
		if r == m.row {
			label = focusLabelStyle.Render(metric.Name + " (" + metric.Key + ")")
		}

		opts := make([]string, 0, len(metric.Values))
		for c, v := range metric.Values {
			style := optionStyle
			if v.Code == selection[metric.Key] {
				style = selectedStyle
			}
			if r == m.row && c == m.col {
				style = style.Inherit(cursorStyle)
			}
			opts = append(opts, style.Render(v.Name))
		}
		lines = append(lines, label+strings.Join(opts, " "))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewScore(ms *schema.MetricSchema) string {
	ev := m.sess.Display()
	sevStyle := severityStyle(ev.Severity)

	header := titleStyle.Render("Score ") + sevStyle.Render(ev.ScoreText()) +
		"  " + sevStyle.Render(string(ev.Severity)) + " " + schema.EmojiFor(ev.Severity)
	if m.copied {
		header += "  " + badgeStyle.Render("Copied!")
	}

	vec := ev.Vector
	if ev.Valid {
		if before, token, after, ok := vector.Highlight(ev.Vector, ms.Metrics[m.row].Key); ok {
			vec = before + tokenStyle.Render(token) + after
		}
	}
	return panelStyle.Render(header + "\n" + vec)
}

// viewTooltip explains the focused metric and value.
func (m *Model) viewTooltip(ms *schema.MetricSchema) string {
	metric := ms.Metrics[m.row]
	value := metric.Values[m.col]
	width := max(m.width-2, 20)
	lines := []string{
		runewidth.Truncate(metric.Name+": "+metric.Description, width, "…"),
		runewidth.Truncate(value.Name+": "+value.Description, width, "…"),
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewNotice() string {
	if m.notice == nil {
		return ""
	}
	if m.notice.Error {
		return errorStyle.Render(m.notice.Text)
	}
	return noticeStyle.Render(m.notice.Text)
}

func (m *Model) viewHelp() string {
	bindings := m.keys.helpFor(m.editing)
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(runewidth.Truncate(strings.Join(parts, " • "), max(m.width, 20), "…"))
}
