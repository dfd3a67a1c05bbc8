package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase/shared"
)

// ClearCompletedInput contains the parameters for clearing completed tasks.
type ClearCompletedInput struct{}

// ClearCompletedOutput contains the result of clearing completed tasks.
// Fields are ordered to minimize memory padding.
type ClearCompletedOutput struct {
	Stats     domain.Stats // Stats after the operation
	Removed   int          // Number of tasks deleted
	Persisted bool         // False when the save failed or nothing changed
}

// ClearCompleted is the use case for deleting every completed task.
type ClearCompleted struct {
	store     *domain.TaskStore
	persister domain.TaskPersister
	logger    domain.Logger
}

// NewClearCompleted creates a new ClearCompleted use case.
func NewClearCompleted(store *domain.TaskStore, persister domain.TaskPersister, logger domain.Logger) *ClearCompleted {
	return &ClearCompleted{
		store:     store,
		persister: persister,
		logger:    logger,
	}
}

// Execute removes all completed tasks.
func (uc *ClearCompleted) Execute(ctx context.Context, _ ClearCompletedInput) (*ClearCompletedOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	removed := uc.store.ClearCompleted()
	out := &ClearCompletedOutput{Removed: removed}
	if removed > 0 {
		uc.logger.Info(shared.LogCategory, fmt.Sprintf("cleared %d completed tasks", removed))
		out.Persisted = shared.SaveStore(uc.store, uc.persister, uc.logger)
	}
	out.Stats = domain.ComputeStats(uc.store)
	return out, nil
}
