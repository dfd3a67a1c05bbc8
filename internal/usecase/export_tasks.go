package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/taskpad/internal/domain"
)

// ExportTasksInput contains the parameters for exporting tasks.
type ExportTasksInput struct {
	Writer io.Writer // Destination for the rendered report
	Format string    // json, yaml, csv, md or pdf
	Filter string    // all (default), active or completed
}

// ExportTasksOutput contains the result of exporting tasks.
type ExportTasksOutput struct {
	Format string // Format that was requested
	Count  int    // Number of tasks written
}

// ExportTasks is the use case for rendering the task list to a writer.
type ExportTasks struct {
	store    *domain.TaskStore
	exporter domain.TaskExporter
	clock    domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store *domain.TaskStore, exporter domain.TaskExporter, clock domain.Clock) *ExportTasks {
	return &ExportTasks{
		store:    store,
		exporter: exporter,
		clock:    clock,
	}
}

// Execute writes the filtered task list and the store's stats in the requested format.
func (uc *ExportTasks) Execute(ctx context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Writer == nil {
		return nil, errors.New("export: no writer")
	}

	tasks, err := filterTasks(uc.store.List(), in.Filter)
	if err != nil {
		return nil, err
	}

	report := domain.ExportReport{
		GeneratedAt: uc.clock.Now(),
		Tasks:       tasks,
		Stats:       domain.ComputeStats(uc.store),
	}
	if err := uc.exporter.Export(in.Writer, in.Format, report); err != nil {
		return nil, fmt.Errorf("export %s: %w", in.Format, err)
	}

	return &ExportTasksOutput{Format: in.Format, Count: len(tasks)}, nil
}
