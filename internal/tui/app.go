package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskpad/internal/app"
	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase"
)

// noticeTimeout is how long a notice stays on screen.
const noticeTimeout = 3 * time.Second

// Model is the main bubbletea model for the TUI.
// Fields are ordered to minimize memory padding.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	// State
	now    time.Time
	notice string
	stats  domain.Stats

	// Components
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model
	input    textinput.Model

	// Numeric state
	mode          Mode
	confirmAction ConfirmAction
	width         int
	height        int
	confirmTaskID int
	noticeGen     int
	showClock     bool
	confirmDelete bool
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	cfg := c.AppConfig
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	m := &Model{
		container:     c,
		now:           c.Clock.Now(),
		keys:          DefaultKeyMap(),
		styles:        styles,
		help:          help.New(),
		taskList:      taskList,
		input:         ti,
		mode:          ModeNormal,
		showClock:     cfg.TUI.ShowClock,
		confirmDelete: cfg.TUI.ConfirmDelete,
	}
	m.refresh()
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	if !m.showClock {
		return nil
	}
	return tick()
}

// tick schedules the next clock refresh.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// clearNoticeAfter schedules removal of the notice with the given generation.
func clearNoticeAfter(gen int) tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return MsgClearNotice{Gen: gen}
	})
}

// refresh reloads the list items and stats from the store.
func (m *Model) refresh() {
	out, err := m.container.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{})
	if err != nil {
		m.err = err
		return
	}
	items := make([]list.Item, len(out.Tasks))
	for i, t := range out.Tasks {
		items[i] = taskItem{task: t}
	}
	m.taskList.SetItems(items)
	if n := len(items); n > 0 && m.taskList.Index() >= n {
		m.taskList.Select(n - 1)
	}
	m.stats = out.Stats
}

// setNotice shows a transient message and returns the command that clears it.
func (m *Model) setNotice(text string) tea.Cmd {
	m.noticeGen++
	m.notice = text
	return clearNoticeAfter(m.noticeGen)
}

// SelectedTask returns the currently selected task.
func (m *Model) SelectedTask() (domain.Task, bool) {
	item, ok := m.taskList.SelectedItem().(taskItem)
	if !ok {
		return domain.Task{}, false
	}
	return item.task, true
}

// Stats returns the statistics currently on screen.
func (m *Model) Stats() domain.Stats {
	return m.stats
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// updateLayoutSizes resizes the list to fit between header and footer.
func (m *Model) updateLayoutSizes() {
	// header, stats, blank, footer and app padding
	reserved := 8
	if m.mode == ModeInput || m.mode == ModeConfirm {
		reserved += 5
	}
	listHeight := m.height - reserved
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	m.taskList.SetSize(listWidth, listHeight)
}
