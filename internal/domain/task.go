// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Task is a single user-entered item with completion status.
// Fields are ordered to minimize memory padding.
type Task struct {
	Text      string `json:"text" yaml:"text"`           // Trimmed, non-empty text
	ID        int    `json:"id" yaml:"id"`               // Unique within the store
	Completed bool   `json:"completed" yaml:"completed"` // Completion flag
}

// MaxTaskID is the largest task ID a store accepts: the largest integer that
// survives a round trip through a float64 JSON number.
const MaxTaskID int64 = 1<<53 - 1

// TaskStore is the authoritative in-memory collection of tasks for a session.
// Insertion order is display order. The completed counter is kept in lockstep
// with every mutation and always equals the number of completed tasks.
//
// TaskStore is not safe for concurrent use; callers serialize intents.
type TaskStore struct {
	tasks     []Task
	completed int
	nextID    int
}

// NewTaskStore returns an empty store whose first task gets ID 1.
func NewTaskStore() *TaskStore {
	return &TaskStore{nextID: 1}
}

// RestoreTaskStore rebuilds a store from previously persisted tasks.
// Tasks whose ID repeats an earlier one or exceeds MaxTaskID are dropped and
// returned so the caller can report them. The completed counter is recomputed from the list
// and the ID sequence resumes after the highest restored ID.
func RestoreTaskStore(tasks []Task) (*TaskStore, []Task) {
	s := NewTaskStore()
	seen := make(map[int]struct{}, len(tasks))
	var dropped []Task
	for _, t := range tasks {
		if _, dup := seen[t.ID]; dup || int64(t.ID) > MaxTaskID {
			dropped = append(dropped, t)
			continue
		}
		seen[t.ID] = struct{}{}
		s.tasks = append(s.tasks, t)
		if t.Completed {
			s.completed++
		}
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s, dropped
}

// Add appends a new task with the given text.
// Returns false without changing the store if the trimmed text is empty.
func (s *TaskStore) Add(text string) (Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false
	}
	t := Task{ID: s.nextID, Text: text}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t, true
}

// Toggle flips the completion flag of the task with the given ID.
// Returns false if no such task exists.
func (s *TaskStore) Toggle(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		s.completed++
	} else {
		s.completed--
	}
	return true
}

// Delete removes the task with the given ID.
// Returns false if no such task exists.
func (s *TaskStore) Delete(id int) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if s.tasks[i].Completed {
		s.completed--
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// ClearCompleted deletes every completed task and returns how many were removed.
func (s *TaskStore) ClearCompleted() int {
	var ids []int
	for _, t := range s.tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	for _, id := range ids {
		s.Delete(id)
	}
	return len(ids)
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(id int) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a snapshot of all tasks in insertion order.
// The returned slice is owned by the caller.
func (s *TaskStore) List() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// CompletedCount returns the number of completed tasks.
func (s *TaskStore) CompletedCount() int {
	return s.completed
}

// NextID returns the ID the next added task will receive.
func (s *TaskStore) NextID() int {
	return s.nextID
}

func (s *TaskStore) index(id int) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool {
		return t.ID == id
	})
}

// ParseTaskID parses a user-supplied task reference such as "3" or "#3".
func ParseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id <= 0 || int64(id) > MaxTaskID {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidID)
	}
	return id, nil
}
