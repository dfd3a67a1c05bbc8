// Package persist saves and restores task store state through a KVStore.
//
// State lives under two fixed keys: "tasks" holds the JSON-encoded task
// sequence and "completedTasks" holds the completed counter as a decimal
// string. The layout matches what the browser version of the app wrote to
// local storage, so exported data can be read back unchanged.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/runoshun/taskpad/internal/domain"
)

const logCategory = "persist"

// Ensure Adapter implements domain.TaskPersister.
var _ domain.TaskPersister = (*Adapter)(nil)

// Adapter implements domain.TaskPersister on top of a KVStore.
type Adapter struct {
	kv     domain.KVStore
	logger domain.Logger
}

// New creates an Adapter. A nil logger discards messages.
func New(kv domain.KVStore, logger domain.Logger) *Adapter {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Adapter{kv: kv, logger: logger}
}

// Save writes the task sequence and the completed counter.
func (a *Adapter) Save(tasks []domain.Task, completed int) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	if err := a.kv.Set(domain.TasksKey, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	if err := a.kv.Set(domain.CompletedTasksKey, []byte(strconv.Itoa(completed))); err != nil {
		return fmt.Errorf("save completed count: %w", err)
	}

	a.logger.Debug(logCategory, fmt.Sprintf("saved %d tasks (%d completed)", len(tasks), completed))
	return nil
}

// Load reads the persisted state. Missing, unreadable or corrupt task data
// yields an empty sequence. The returned count is recomputed from the tasks;
// a stored counter that disagrees is reported and ignored.
func (a *Adapter) Load() ([]domain.Task, int) {
	tasks, ok := a.loadTasks()
	if !ok {
		return []domain.Task{}, 0
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	if stored, ok := a.loadCounter(); ok && stored != completed {
		a.logger.Warn(logCategory, fmt.Sprintf("stored completed count %d does not match tasks (%d); using %d", stored, completed, completed))
	}

	a.logger.Debug(logCategory, fmt.Sprintf("loaded %d tasks (%d completed)", len(tasks), completed))
	return tasks, completed
}

func (a *Adapter) loadTasks() ([]domain.Task, bool) {
	data, err := a.kv.Get(domain.TasksKey)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			a.logger.Debug(logCategory, "no saved tasks")
		} else {
			a.logger.Warn(logCategory, fmt.Sprintf("read tasks: %v; starting empty", err))
		}
		return nil, false
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		a.logger.Warn(logCategory, fmt.Sprintf("corrupt saved tasks: %v; starting empty", err))
		return nil, false
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, true
}

func (a *Adapter) loadCounter() (int, bool) {
	data, err := a.kv.Get(domain.CompletedTasksKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			a.logger.Warn(logCategory, fmt.Sprintf("read completed count: %v", err))
		}
		return 0, false
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		a.logger.Warn(logCategory, fmt.Sprintf("corrupt completed count %q", data))
		return 0, false
	}
	return n, true
}
