package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/infra/memstore"
	"github.com/runoshun/taskpad/internal/testutil"
	"github.com/runoshun/taskpad/internal/usecase"
)

const testKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

// isolate points XDG lookups at temp dirs so tests never touch $HOME.
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	return base
}

func writeLocalConfig(t *testing.T, workDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(domain.LocalConfigPath(workDir), []byte(content), 0o600))
}

func addTask(t *testing.T, c *Container, text string) domain.Task {
	t.Helper()
	out, err := c.AddTaskUseCase().Execute(context.Background(), usecase.AddTaskInput{Text: text})
	require.NoError(t, err)
	require.True(t, out.Persisted)
	return out.Task
}

func TestNew_DefaultJSONBackend(t *testing.T) {
	base := isolate(t)
	workDir := t.TempDir()

	c, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.BackendJSON, c.Paths.Backend)
	assert.Equal(t, filepath.Join(base, "data", domain.AppDirName, domain.StoreFileName), c.Paths.StorePath)
	assert.Equal(t, 0, c.Store.Len())

	addTask(t, c, "persist me")
	_, err = os.Stat(c.Paths.StorePath)
	assert.NoError(t, err, "store file written")
}

func TestNew_RestoresPreviousSession(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()

	first, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	a := addTask(t, first, "A")
	_, err = first.ToggleTaskUseCase().Execute(context.Background(), usecase.ToggleTaskInput{TaskID: a.ID})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	assert.Equal(t, []domain.Task{{ID: a.ID, Text: "A", Completed: true}}, second.Store.List())
	assert.Equal(t, 1, second.Store.CompletedCount())
}

func TestNew_Ephemeral(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()

	c, err := New(Options{WorkDir: workDir, Ephemeral: true})
	require.NoError(t, err)
	addTask(t, c, "gone soon")
	require.NoError(t, c.Close())

	assert.Equal(t, domain.BackendMemory, c.Paths.Backend)
	_, err = os.Stat(c.Paths.StorePath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_GitBackend(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	repo, err := git.PlainInit(workDir, false)
	require.NoError(t, err)
	writeLocalConfig(t, workDir, "[store]\nbackend = \"git\"\nnamespace = \"todo\"\n")

	c, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	addTask(t, c, "in git")

	ref, err := repo.Reference("refs/todo/kv/tasks", true)
	require.NoError(t, err)
	assert.False(t, ref.Hash().IsZero())
}

func TestNew_GitBackend_NotARepository(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	writeLocalConfig(t, workDir, "[store]\nbackend = \"git\"\n")

	_, err := New(Options{WorkDir: workDir})

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestNew_UnknownBackend(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	writeLocalConfig(t, workDir, "[store]\nbackend = \"s3\"\n")

	_, err := New(Options{WorkDir: workDir})

	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_EncryptedStore(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	writeLocalConfig(t, workDir, "[store]\npath = \"tasks.json\"\nencryption_key = \""+testKey+"\"\n")

	c, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	addTask(t, c, "top secret")
	require.NoError(t, c.Close())

	raw, err := os.ReadFile(filepath.Join(workDir, "tasks.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "top secret")

	reopened, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	assert.Equal(t, "top secret", reopened.Store.List()[0].Text)
}

func TestNew_InvalidEncryptionKey(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	writeLocalConfig(t, workDir, "[store]\nencryption_key = \"short\"\n")

	_, err := New(Options{WorkDir: workDir})

	assert.ErrorIs(t, err, domain.ErrInvalidKey)
}

func TestNew_ConfigWarningsAreLogged(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	logDir := filepath.Join(workDir, "logs")
	writeLocalConfig(t, workDir, "[log]\ndir = \"logs\"\n\n[store]\ncolour = \"blue\"\n")

	c, err := New(Options{WorkDir: workDir, Ephemeral: true})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	assert.Equal(t, logDir, c.Paths.LogDir)
	content, err := os.ReadFile(domain.LogPath(logDir))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "unknown key in [store]: colour"))
}

func TestNew_ExplicitConfigFile(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "alt.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[store]\nbackend = \"memory\"\n"), 0o600))

	c, err := New(Options{WorkDir: workDir, ConfigFile: cfgPath})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.BackendMemory, c.Paths.Backend)
}

func TestNewWithDeps_DropsDuplicateIDs(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(domain.TasksKey, []byte(`[{"id":1,"text":"A","completed":false},{"id":1,"text":"dup","completed":true}]`)))
	logger := &testutil.MockLogger{}

	c := NewWithDeps(nil, kv, &testutil.MockClock{}, logger)

	assert.Equal(t, []domain.Task{{ID: 1, Text: "A"}}, c.Store.List())
	assert.Equal(t, 0, c.Store.CompletedCount())
	require.Len(t, logger.ByLevel("WARN"), 1)
	assert.Contains(t, logger.ByLevel("WARN")[0].Msg, "duplicate id #1")
}

func TestNew_EncryptedSessionRoundTrip(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	writeLocalConfig(t, workDir, "[store]\npath = \"tasks.json\"\nencryption_key = \""+testKey+"\"\n")
	ctx := context.Background()

	first, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	a := addTask(t, first, "A")
	b := addTask(t, first, "B")
	_, err = first.ToggleTaskUseCase().Execute(ctx, usecase.ToggleTaskInput{TaskID: b.ID})
	require.NoError(t, err)
	_, err = first.DeleteTaskUseCase().Execute(ctx, usecase.DeleteTaskInput{TaskID: a.ID})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := New(Options{WorkDir: workDir})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	assert.Equal(t, []domain.Task{{ID: 2, Text: "B", Completed: true}}, second.Store.List())
	assert.Equal(t, domain.NewStats(1, 1), domain.ComputeStats(second.Store))
	assert.Equal(t, 3, second.Store.NextID())
}

func TestNewWithDeps_RecomputesCompletedCount(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(domain.TasksKey, []byte(`[{"id":4,"text":"A","completed":true},{"id":9,"text":"B","completed":false}]`)))
	require.NoError(t, kv.Set(domain.CompletedTasksKey, []byte("5")))

	c := NewWithDeps(nil, kv, &testutil.MockClock{}, &testutil.MockLogger{})

	assert.Equal(t, 1, c.Store.CompletedCount())
	assert.Equal(t, 10, c.Store.NextID())
}

func TestNewWithDeps_DropsOutOfRangeIDs(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(domain.TasksKey, []byte(`[{"id":9223372036854775807,"text":"huge","completed":false},{"id":2,"text":"ok","completed":false}]`)))
	logger := &testutil.MockLogger{}

	c := NewWithDeps(nil, kv, &testutil.MockClock{}, logger)

	assert.Equal(t, []domain.Task{{ID: 2, Text: "ok"}}, c.Store.List())
	require.Len(t, logger.ByLevel("WARN"), 1)
	assert.Contains(t, logger.ByLevel("WARN")[0].Msg, `"huge"`)

	next := addTask(t, c, "next")
	assert.Equal(t, 3, next.ID)
}
