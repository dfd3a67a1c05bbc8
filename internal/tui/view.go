package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header date and time layouts.
const (
	dateLayout = "Mon Jan 02 2006"
	timeLayout = "15:04:05"
)

// progressWidth is the number of cells in the productivity bar.
const progressWidth = 20

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeInput, ModeConfirm:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the task list with header and footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewStats())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString(m.viewTaskList())
	b.WriteString("\n")

	switch m.mode {
	case ModeNormal, ModeHelp:
		// No overlay
	case ModeInput:
		b.WriteString("\n")
		b.WriteString(m.viewInput())
		b.WriteString("\n")
	case ModeConfirm:
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(m.styles.Notice.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

// viewHeader renders the title with the current date and time right-aligned.
func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("taskpad")
	if !m.showClock {
		return title
	}

	clock := m.styles.HeaderDate.Render(m.now.Format(dateLayout)) + "  " +
		m.styles.HeaderTime.Render(m.now.Format(timeLayout))

	headerWidth := m.width - 4
	spacing := headerWidth - lipgloss.Width(title) - lipgloss.Width(clock)
	if spacing < 1 {
		spacing = 1
	}
	return title + strings.Repeat(" ", spacing) + clock
}

// viewStats renders the totals and the productivity bar.
func (m *Model) viewStats() string {
	st := m.stats
	field := func(label string, value int) string {
		return m.styles.StatLabel.Render(label+" ") + m.styles.StatValue.Render(fmt.Sprint(value))
	}
	parts := []string{
		field("Total", st.Total),
		field("Completed", st.Completed),
		field("Active", st.Active()),
		m.styles.StatLabel.Render("Productivity ") + m.styles.Productivity.Render(fmt.Sprintf("%d%%", st.Productivity)),
	}
	return strings.Join(parts, "   ") + "  " + m.progressBar(st.Productivity)
}

func (m *Model) progressBar(percent int) string {
	filled := percent * progressWidth / 100
	return m.styles.BarFilled.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", progressWidth-filled))
}

// viewTaskList renders the list or an empty-state hint.
func (m *Model) viewTaskList() string {
	if len(m.taskList.Items()) == 0 {
		return m.styles.EmptyList.Render("No tasks yet. Press n to add one.")
	}
	return m.taskList.View()
}

// viewInput renders the new task input box.
func (m *Model) viewInput() string {
	title := m.styles.DialogTitle.Render("◆ New Task")
	input := m.styles.InputPrompt.Render("> ") + m.input.View()
	hint := m.styles.FooterKey.Render("enter") + m.styles.Footer.Render(" add  ") +
		m.styles.FooterKey.Render("esc") + m.styles.Footer.Render(" cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, input, hint)
	return m.styles.Dialog.BorderForeground(Colors.Primary).Render(content)
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	var question string
	color := Colors.Error

	switch m.confirmAction {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		question = fmt.Sprintf("Delete task #%d?", m.confirmTaskID)
	case ConfirmClear:
		question = fmt.Sprintf("Clear %d completed task(s)?", m.stats.Completed)
		color = Colors.Warning
	}

	title := m.styles.DialogTitle.Foreground(color).Render(question)
	prompt := m.styles.Footer.Render("This action cannot be undone.")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.FooterKey.Render("[ y ] Confirm"), "  ", m.styles.Footer.Render("[ n ] Cancel"))

	content := lipgloss.JoinVertical(lipgloss.Left, title, prompt, "", buttons)
	return m.styles.Dialog.BorderForeground(color).Render(content)
}

// viewFooter renders the status line.
func (m *Model) viewFooter() string {
	return NewStatusLine(m.width-4, &m.styles).Render(m.GetStatusInfo())
}

// viewHelp renders the full key binding reference.
func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("taskpad - keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Footer.Render("press ? or esc to close"))
	return b.String()
}
