package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
// Fields are ordered to minimize memory padding.
type DeleteTaskOutput struct {
	Task      domain.Task  // The removed task (zero value when not found)
	Stats     domain.Stats // Stats after the operation
	Found     bool         // False when no task has the ID
	Persisted bool         // False when the save failed or nothing changed
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store     *domain.TaskStore
	persister domain.TaskPersister
	logger    domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store *domain.TaskStore, persister domain.TaskPersister, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		store:     store,
		persister: persister,
		logger:    logger,
	}
}

// Execute deletes the task with the given ID.
// An unknown ID is a no-op reported as Found=false.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task, ok := uc.store.Get(in.TaskID)
	if !ok || !uc.store.Delete(in.TaskID) {
		uc.logger.Debug(shared.LogCategory, fmt.Sprintf("delete: no task #%d", in.TaskID))
		return &DeleteTaskOutput{Stats: domain.ComputeStats(uc.store)}, nil
	}
	uc.logger.Info(shared.LogCategory, fmt.Sprintf("deleted #%d", task.ID))

	return &DeleteTaskOutput{
		Task:      task,
		Stats:     domain.ComputeStats(uc.store),
		Found:     true,
		Persisted: shared.SaveStore(uc.store, uc.persister, uc.logger),
	}, nil
}
