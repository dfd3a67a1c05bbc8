// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/taskpad/internal/domain"
)

// LogCategory is the log category for task mutations.
const LogCategory = "task"

// SaveStore writes the store's current state through p.
// A failed save is logged and reported as false; the in-memory store stays
// authoritative and the mutation that preceded it is not rolled back.
func SaveStore(s *domain.TaskStore, p domain.TaskPersister, logger domain.Logger) bool {
	if err := p.Save(s.List(), s.CompletedCount()); err != nil {
		logger.Error(LogCategory, fmt.Sprintf("persist failed: %v", err))
		return false
	}
	return true
}
