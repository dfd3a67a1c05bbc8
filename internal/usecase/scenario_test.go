package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/domain"
)

// TestScenario_AddToggleDelete drives a full session through the use cases
// and then restores a second session from what was saved.
func TestScenario_AddToggleDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	add := NewAddTask(env.store, env.saver, env.logger)
	toggle := NewToggleTask(env.store, env.saver, env.logger)
	del := NewDeleteTask(env.store, env.saver, env.logger)

	a, err := add.Execute(ctx, AddTaskInput{Text: "A"})
	require.NoError(t, err)
	b, err := add.Execute(ctx, AddTaskInput{Text: "B"})
	require.NoError(t, err)
	_, err = toggle.Execute(ctx, ToggleTaskInput{TaskID: b.Task.ID})
	require.NoError(t, err)
	out, err := del.Execute(ctx, DeleteTaskInput{TaskID: a.Task.ID})
	require.NoError(t, err)

	list := env.store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Text)
	assert.True(t, list[0].Completed)
	assert.Equal(t, domain.Stats{Total: 1, Completed: 1, Productivity: 100}, out.Stats)

	// Second session
	restored := env.reload()
	assert.Equal(t, list, restored.List())
	assert.Equal(t, 1, restored.CompletedCount())

	next, err := NewAddTask(restored, env.saver, env.logger).Execute(ctx, AddTaskInput{Text: "C"})
	require.NoError(t, err)
	assert.Greater(t, next.Task.ID, b.Task.ID, "ids never collide with restored ones")
}

// TestScenario_PersistenceDownDuringSession keeps working in memory while
// saves fail and catches up once the backend recovers.
func TestScenario_PersistenceDownDuringSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	add := NewAddTask(env.store, env.saver, env.logger)

	env.kv.SetErr = assert.AnError
	first, err := add.Execute(ctx, AddTaskInput{Text: "offline"})
	require.NoError(t, err)
	assert.False(t, first.Persisted)

	env.kv.SetErr = nil
	second, err := add.Execute(ctx, AddTaskInput{Text: "online"})
	require.NoError(t, err)
	assert.True(t, second.Persisted)

	assert.Len(t, env.reload().List(), 2)
}
