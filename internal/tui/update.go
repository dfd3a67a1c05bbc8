package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/taskpad/internal/usecase"
)

const noticeNotSaved = "Change was not saved; see the log for details"

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 12
		m.updateLayoutSizes()
		return m, nil

	case MsgTick:
		m.now = msg.Time
		return m, tick()

	case MsgClearNotice:
		if msg.Gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error on any key press
	if m.err != nil {
		m.err = nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.PrevPage):
		m.taskList.Paginator.PrevPage()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.taskList.Paginator.NextPage()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInput
		m.input.Reset()
		m.updateLayoutSizes()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, m.toggleTask(task.ID)

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		if !m.confirmDelete {
			return m, m.deleteTask(task.ID)
		}
		m.confirmAction = ConfirmDelete
		m.confirmTaskID = task.ID
		m.mode = ModeConfirm
		m.updateLayoutSizes()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if m.stats.Completed == 0 {
			return m, m.setNotice("No completed tasks")
		}
		m.confirmAction = ConfirmClear
		m.confirmTaskID = 0
		m.mode = ModeConfirm
		m.updateLayoutSizes()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil
	}

	return m, nil
}

// handleInputMode handles keys while typing a new task.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.leaveInput()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.leaveInput()
		return m, m.addTask(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = ModeNormal
	m.input.Blur()
	m.input.Reset()
	m.updateLayoutSizes()
}

// handleConfirmMode handles keys in the confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.leaveConfirm()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		action, id := m.confirmAction, m.confirmTaskID
		m.leaveConfirm()
		switch action {
		case ConfirmNone:
			// Nothing to confirm
		case ConfirmDelete:
			return m, m.deleteTask(id)
		case ConfirmClear:
			return m, m.clearCompleted()
		}
	}

	return m, nil
}

func (m *Model) leaveConfirm() {
	m.mode = ModeNormal
	m.confirmAction = ConfirmNone
	m.confirmTaskID = 0
	m.updateLayoutSizes()
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		m.help.ShowAll = false
	}
	return m, nil
}

// Mutations run synchronously inside Update: the store has no locking.

func (m *Model) addTask(text string) tea.Cmd {
	out, err := m.container.AddTaskUseCase().Execute(context.Background(), usecase.AddTaskInput{Text: text})
	if err != nil {
		m.err = err
		return nil
	}
	if !out.Added {
		return m.setNotice("Nothing added: task text is empty")
	}
	m.refresh()
	m.taskList.Select(len(m.taskList.Items()) - 1)
	if !out.Persisted {
		return m.setNotice(noticeNotSaved)
	}
	return nil
}

func (m *Model) toggleTask(id int) tea.Cmd {
	out, err := m.container.ToggleTaskUseCase().Execute(context.Background(), usecase.ToggleTaskInput{TaskID: id})
	if err != nil {
		m.err = err
		return nil
	}
	m.refresh()
	if out.Found && !out.Persisted {
		return m.setNotice(noticeNotSaved)
	}
	return nil
}

func (m *Model) deleteTask(id int) tea.Cmd {
	out, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{TaskID: id})
	if err != nil {
		m.err = err
		return nil
	}
	m.refresh()
	if !out.Found {
		return m.setNotice(fmt.Sprintf("No task #%d", id))
	}
	if !out.Persisted {
		return m.setNotice(noticeNotSaved)
	}
	return m.setNotice(fmt.Sprintf("Deleted task #%d", id))
}

func (m *Model) clearCompleted() tea.Cmd {
	out, err := m.container.ClearCompletedUseCase().Execute(context.Background(), usecase.ClearCompletedInput{})
	if err != nil {
		m.err = err
		return nil
	}
	m.refresh()
	if out.Removed > 0 && !out.Persisted {
		return m.setNotice(noticeNotSaved)
	}
	return m.setNotice(fmt.Sprintf("Cleared %d completed task(s)", out.Removed))
}
