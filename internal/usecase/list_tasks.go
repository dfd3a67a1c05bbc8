package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
)

// Task filters accepted by ListTasks.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter string // all (default), active or completed
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []domain.Task // Matching tasks in insertion order
	Stats domain.Stats  // Stats over the whole store, not just the filtered tasks
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store *domain.TaskStore
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store *domain.TaskStore) *ListTasks {
	return &ListTasks{store: store}
}

// Execute lists tasks matching the filter.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	tasks, err := filterTasks(uc.store.List(), in.Filter)
	if err != nil {
		return nil, err
	}
	return &ListTasksOutput{
		Tasks: tasks,
		Stats: domain.ComputeStats(uc.store),
	}, nil
}

func filterTasks(tasks []domain.Task, filter string) ([]domain.Task, error) {
	var keep func(domain.Task) bool
	switch filter {
	case "", FilterAll:
		return tasks, nil
	case FilterActive:
		keep = func(t domain.Task) bool { return !t.Completed }
	case FilterCompleted:
		keep = func(t domain.Task) bool { return t.Completed }
	default:
		return nil, fmt.Errorf("%q: %w", filter, domain.ErrUnknownFilter)
	}

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
