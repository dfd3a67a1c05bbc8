package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/taskpad/internal/domain"
)

type taskItem struct {
	task domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Text
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 1
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// rowChromeWidth is the display width of a row without its ID and text:
// "  > " before the ID and "  [x] " after it.
const rowChromeWidth = 10

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	indicator := " "
	if selected {
		indicator = ">"
	}

	box := d.styles.CheckboxActive.Render("[ ]")
	if task.Completed {
		box = d.styles.CheckboxDone.Render("[x]")
	}

	id := fmt.Sprintf("%3d", task.ID)
	maxTextLen := m.Width() - rowChromeWidth - runewidth.StringWidth(id) - 2
	if maxTextLen < 10 {
		maxTextLen = 10
	}
	text := escapeNewlines(task.Text)
	if runewidth.StringWidth(text) > maxTextLen {
		text = runewidth.Truncate(text, maxTextLen, "...")
	}

	textStyle := d.styles.TaskTitle
	switch {
	case task.Completed:
		textStyle = d.styles.TaskTitleDone
	case selected:
		textStyle = d.styles.TaskTitleSelected
	}

	line := "  " + d.styles.SelectionIndicator.Bold(selected).Render(indicator) +
		" " + d.styles.TaskID.Render(id) +
		"  " + box + " " + textStyle.Render(text)

	_, _ = fmt.Fprint(w, line)
}
