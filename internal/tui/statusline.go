package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
type StatusLineInfo struct {
	Pagination string // Optional pagination info (e.g., "1/3")
	Right      string // Right-aligned text, usually the stats summary
	KeyHints   []KeyHint
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a status line at the bottom of the screen.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	rightContent := info.Right
	if info.Pagination != "" {
		rightContent = strings.TrimSpace(info.Pagination + "  " + rightContent)
	}

	contentWidth := s.width - 2
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			content = lipgloss.NewStyle().MaxWidth(maxContentWidth-3).Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := contentWidth - contentLen - rightLen
	if spacing < 1 {
		spacing = 1
	}

	return s.styles.Footer.Render(content + strings.Repeat(" ", spacing) + rightContent)
}

// GetStatusInfo returns status line info for the current mode.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{
		Right: m.stats.String(),
	}
	if m.taskList.Paginator.TotalPages > 1 {
		info.Pagination = m.taskList.Paginator.View()
	}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "nav"},
			{Key: "n", Desc: "add"},
			{Key: "space", Desc: "done"},
			{Key: "d", Desc: "delete"},
			{Key: "c", Desc: "clear done"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeInput:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "add"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeConfirm, ModeHelp:
		info.KeyHints = nil
	}

	return info
}
