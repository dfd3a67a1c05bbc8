package domain

import "fmt"

// Stats holds the values derived from a TaskStore.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Completed    int `json:"completed" yaml:"completed"`
	Productivity int `json:"productivity" yaml:"productivity"` // Floored percentage, 0 when empty
}

// ComputeStats derives totals and productivity from the store's current state.
func ComputeStats(s *TaskStore) Stats {
	return NewStats(s.Len(), s.CompletedCount())
}

// NewStats builds Stats from raw counts.
func NewStats(total, completed int) Stats {
	st := Stats{Total: total, Completed: completed}
	if total > 0 {
		// Integer division floors for non-negative operands.
		st.Productivity = completed * 100 / total
	}
	return st
}

// Active returns the number of tasks not yet completed.
func (st Stats) Active() int {
	return st.Total - st.Completed
}

// String renders the stats as "<completed>/<total> done (<p>%)".
func (st Stats) String() string {
	return fmt.Sprintf("%d/%d done (%d%%)", st.Completed, st.Total, st.Productivity)
}
