package usecase

import (
	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/infra/persist"
	"github.com/runoshun/taskpad/internal/testutil"
)

// testEnv bundles a store with a persister backed by a mock KV store.
type testEnv struct {
	store  *domain.TaskStore
	kv     *testutil.MockKVStore
	logger *testutil.MockLogger
	saver  *persist.Adapter
}

func newTestEnv() *testEnv {
	kv := testutil.NewMockKVStore()
	return &testEnv{
		store:  domain.NewTaskStore(),
		kv:     kv,
		logger: &testutil.MockLogger{},
		saver:  persist.New(kv, nil),
	}
}

// reload reads the persisted state back into a fresh store.
func (e *testEnv) reload() *domain.TaskStore {
	tasks, _ := persist.New(e.kv, nil).Load()
	s, _ := domain.RestoreTaskStore(tasks)
	return s
}
