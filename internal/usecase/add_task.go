package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase/shared"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Text string // Raw user input; trimmed before storing
}

// AddTaskOutput contains the result of adding a task.
// Fields are ordered to minimize memory padding.
type AddTaskOutput struct {
	Task      domain.Task  // The new task (zero value when Added is false)
	Stats     domain.Stats // Stats after the operation
	Added     bool         // False when the text was blank
	Persisted bool         // False when the save failed or nothing changed
}

// AddTask is the use case for adding a task.
type AddTask struct {
	store     *domain.TaskStore
	persister domain.TaskPersister
	logger    domain.Logger
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(store *domain.TaskStore, persister domain.TaskPersister, logger domain.Logger) *AddTask {
	return &AddTask{
		store:     store,
		persister: persister,
		logger:    logger,
	}
}

// Execute appends a task with the given text.
// Blank text is a silent no-op reported as Added=false.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task, ok := uc.store.Add(in.Text)
	if !ok {
		return &AddTaskOutput{Stats: domain.ComputeStats(uc.store)}, nil
	}
	uc.logger.Info(shared.LogCategory, fmt.Sprintf("added #%d %q", task.ID, task.Text))

	return &AddTaskOutput{
		Task:      task,
		Stats:     domain.ComputeStats(uc.store),
		Added:     true,
		Persisted: shared.SaveStore(uc.store, uc.persister, uc.logger),
	}, nil
}
