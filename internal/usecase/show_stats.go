package usecase

import (
	"context"

	"github.com/runoshun/taskpad/internal/domain"
)

// ShowStatsInput contains the parameters for showing statistics.
type ShowStatsInput struct{}

// ShowStatsOutput contains the current statistics.
type ShowStatsOutput struct {
	Stats domain.Stats
}

// ShowStats is the use case for reading the derived statistics.
type ShowStats struct {
	store *domain.TaskStore
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(store *domain.TaskStore) *ShowStats {
	return &ShowStats{store: store}
}

// Execute computes the statistics for the current store.
func (uc *ShowStats) Execute(_ context.Context, _ ShowStatsInput) (*ShowStatsOutput, error) {
	return &ShowStatsOutput{Stats: domain.ComputeStats(uc.store)}, nil
}
