package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase/shared"
)

// ToggleTaskInput contains the parameters for toggling a task.
type ToggleTaskInput struct {
	TaskID int
}

// ToggleTaskOutput contains the result of toggling a task.
// Fields are ordered to minimize memory padding.
type ToggleTaskOutput struct {
	Task      domain.Task  // Task after the flip (zero value when not found)
	Stats     domain.Stats // Stats after the operation
	Found     bool         // False when no task has the ID
	Persisted bool         // False when the save failed or nothing changed
}

// ToggleTask is the use case for flipping a task's completion flag.
type ToggleTask struct {
	store     *domain.TaskStore
	persister domain.TaskPersister
	logger    domain.Logger
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(store *domain.TaskStore, persister domain.TaskPersister, logger domain.Logger) *ToggleTask {
	return &ToggleTask{
		store:     store,
		persister: persister,
		logger:    logger,
	}
}

// Execute flips the completion flag of the task with the given ID.
// An unknown ID is a no-op reported as Found=false.
func (uc *ToggleTask) Execute(ctx context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !uc.store.Toggle(in.TaskID) {
		uc.logger.Debug(shared.LogCategory, fmt.Sprintf("toggle: no task #%d", in.TaskID))
		return &ToggleTaskOutput{Stats: domain.ComputeStats(uc.store)}, nil
	}

	task, _ := uc.store.Get(in.TaskID)
	uc.logger.Info(shared.LogCategory, fmt.Sprintf("toggled #%d completed=%t", task.ID, task.Completed))

	return &ToggleTaskOutput{
		Task:      task,
		Stats:     domain.ComputeStats(uc.store),
		Found:     true,
		Persisted: shared.SaveStore(uc.store, uc.persister, uc.logger),
	}, nil
}
