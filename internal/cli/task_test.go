package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/app"
	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/testutil"
)

// =============================================================================
// add
// =============================================================================

func TestAddCommand(t *testing.T) {
	s, c := newTestSession(t)

	stdout, stderr, err := run(t, s, "add", "buy", "milk")

	require.NoError(t, err)
	assert.Equal(t, "Added task #1: buy milk\n0/1 done (0%)\n", stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, []domain.Task{{ID: 1, Text: "buy milk"}}, c.Store.List())
}

func TestAddCommand_BlankText(t *testing.T) {
	s, c := newTestSession(t)

	stdout, _, err := run(t, s, "add", "   ")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing added")
	assert.Equal(t, 0, c.Store.Len())
}

func TestAddCommand_SaveFailureWarns(t *testing.T) {
	kv := testutil.NewMockKVStore()
	kv.SetErr = assert.AnError
	c := app.NewWithDeps(nil, kv, &testutil.MockClock{}, nil)
	s := &session{factory: func(app.Options) (*app.Container, error) { return c, nil }}

	stdout, stderr, err := run(t, s, "add", "A")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Added task #1: A")
	assert.Contains(t, stderr, "not saved")
}

func TestAddCommand_RequiresText(t *testing.T) {
	s, _ := newTestSession(t)

	_, _, err := run(t, s, "add")

	assert.Error(t, err)
}

// =============================================================================
// toggle / rm / clear
// =============================================================================

func TestToggleCommand(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")

	stdout, _, err := run(t, s, "toggle", "1")
	require.NoError(t, err)
	assert.Equal(t, "Completed task #1: A\n1/1 done (100%)\n", stdout)

	stdout, _, err = run(t, s, "done", "#1")
	require.NoError(t, err)
	assert.Equal(t, "Reopened task #1: A\n0/1 done (0%)\n", stdout)
}

func TestToggleCommand_UnknownID(t *testing.T) {
	s, _ := newTestSession(t)

	stdout, _, err := run(t, s, "toggle", "42")

	require.NoError(t, err, "a stale id is not a failure")
	assert.Equal(t, "No task #42\n", stdout)
}

func TestToggleCommand_InvalidID(t *testing.T) {
	s, _ := newTestSession(t)

	_, _, err := run(t, s, "toggle", "abc")

	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestRmCommand(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")
	c.Store.Add("B")

	stdout, _, err := run(t, s, "rm", "1")

	require.NoError(t, err)
	assert.Equal(t, "Deleted task #1: A\n0/1 done (0%)\n", stdout)
	assert.Equal(t, []domain.Task{{ID: 2, Text: "B"}}, c.Store.List())
}

func TestRmCommand_UnknownID(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")

	stdout, _, err := run(t, s, "rm", "9")

	require.NoError(t, err)
	assert.Equal(t, "No task #9\n", stdout)
	assert.Equal(t, 1, c.Store.Len())
}

func TestClearCommand(t *testing.T) {
	s, c := newTestSession(t)
	a, _ := c.Store.Add("A")
	c.Store.Add("B")
	c.Store.Toggle(a.ID)

	stdout, _, err := run(t, s, "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cleared 1 completed task\n0/1 done (0%)\n", stdout)

	stdout, _, err = run(t, s, "clear")
	require.NoError(t, err)
	assert.Equal(t, "No completed tasks\n", stdout)
}

// =============================================================================
// list / stats
// =============================================================================

func TestListCommand(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")
	b, _ := c.Store.Add("B")
	c.Store.Toggle(b.ID)

	stdout, _, err := run(t, s, "list")

	require.NoError(t, err)
	want := "ID   DONE   TEXT\n" +
		"1    [ ]    A\n" +
		"2    [x]    B\n" +
		"\n1/2 done (50%)\n"
	assert.Equal(t, want, stdout)
}

func TestListCommand_Filters(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")
	b, _ := c.Store.Add("B")
	c.Store.Toggle(b.ID)

	stdout, _, err := run(t, s, "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, stdout, "A")
	assert.NotContains(t, stdout, "[x]")
	assert.Contains(t, stdout, "1/2 done (50%)", "stats cover all tasks")

	stdout, _, err = run(t, s, "list", "--completed")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "[ ]")

	_, _, err = run(t, s, "list", "--active", "--completed")
	assert.Error(t, err)
}

func TestListCommand_Empty(t *testing.T) {
	s, _ := newTestSession(t)

	stdout, _, err := run(t, s, "list")

	require.NoError(t, err)
	assert.Equal(t, "No tasks\n\n0/0 done (0%)\n", stdout)
}

func TestListCommand_JSON(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")

	stdout, _, err := run(t, s, "list", "--json")
	require.NoError(t, err)

	var got struct {
		Tasks []domain.Task `json:"tasks"`
		Stats domain.Stats  `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []domain.Task{{ID: 1, Text: "A"}}, got.Tasks)
	assert.Equal(t, 1, got.Stats.Total)
}

func TestStatsCommand(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")
	c.Store.Add("B")
	c.Store.Add("C")
	c.Store.Toggle(1)

	stdout, _, err := run(t, s, "stats")

	require.NoError(t, err)
	want := "Total:        3\n" +
		"Completed:    1\n" +
		"Active:       2\n" +
		"Productivity: 33%\n"
	assert.Equal(t, want, stdout)
}

// TestScenario_CLI runs the add/add/toggle/delete scenario through the commands.
func TestScenario_CLI(t *testing.T) {
	s, c := newTestSession(t)

	for _, args := range [][]string{
		{"add", "A"},
		{"add", "B"},
		{"toggle", "2"},
		{"rm", "1"},
	} {
		_, _, err := run(t, s, args...)
		require.NoError(t, err, args)
	}

	assert.Equal(t, []domain.Task{{ID: 2, Text: "B", Completed: true}}, c.Store.List())
	assert.Equal(t, domain.Stats{Total: 1, Completed: 1, Productivity: 100}, domain.ComputeStats(c.Store))
}
