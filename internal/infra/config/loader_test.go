package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoader_Load_NoConfigFiles(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), `
[store]
backend = "git"
repo = "/srv/notes"
namespace = "todo"

[log]
level = "debug"

[export]
default_format = "csv"
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendGit, cfg.Store.Backend)
	assert.Equal(t, "/srv/notes", cfg.Store.Repo)
	assert.Equal(t, "todo", cfg.Store.Namespace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "csv", cfg.Export.DefaultFormat)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_GlobalConfigOnly(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[log]
level = "warn"
dir = "/tmp/taskpad-logs"
`)

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/taskpad-logs", cfg.Log.Dir)
	assert.Equal(t, domain.DefaultStoreBackend, cfg.Store.Backend)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	workDir := t.TempDir()
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[store]
backend = "git"
namespace = "global-ns"

[log]
level = "debug"
`)
	writeFile(t, domain.LocalConfigPath(workDir), `
[store]
namespace = "local-ns"
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, globalDir).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendGit, cfg.Store.Backend, "global value kept")
	assert.Equal(t, "local-ns", cfg.Store.Namespace, "local value wins")
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_Load_BooleansCanBeDisabled(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), `
[tui]
show_clock = false
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, "").Load()
	require.NoError(t, err)

	assert.False(t, cfg.TUI.ShowClock)
	assert.True(t, cfg.TUI.ConfirmDelete, "absent key keeps default")
}

func TestLoader_Load_UnknownKeys(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), `
theme = "dark"

[store]
backend = "json"
compress = true

[sync]
remote = "origin"

[tui]
show_clock = "yes"
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"unknown key in [store]: compress",
		"unknown section: [sync]",
		"unknown key: theme",
		"invalid value for tui.show_clock: yes",
	}, cfg.Warnings)
	assert.True(t, cfg.TUI.ShowClock, "invalid value leaves default")
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), "[store\nbackend = ")

	_, err := NewLoaderWithGlobalDir(workDir, "").Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.LocalConfigFileName)
}

func TestLoader_Load_ExplicitFile(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), `
[log]
level = "error"
`)
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, `
[store]
backend = "memory"
`)

	cfg, err := NewFileLoader(explicit).Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level, "local file is ignored")
}

func TestLoader_Load_ExplicitFileMissing(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.toml")).Load()

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeFile(t, filepath.Join(globalDir, domain.ConfigFileName), `
[export]
default_format = "pdf"
`)

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	require.NoError(t, err)

	assert.Equal(t, "pdf", cfg.Export.DefaultFormat)
}

func TestLoader_LoadGlobal_NotFound(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadLocal(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, domain.LocalConfigPath(workDir), `
[store]
encryption_key = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, "").LoadLocal()
	require.NoError(t, err)

	assert.Len(t, cfg.Store.EncryptionKey, 64)
}

func TestLoader_Load_TemplateRoundTrip(t *testing.T) {
	workDir := t.TempDir()
	def := domain.NewDefaultConfig()
	writeFile(t, domain.LocalConfigPath(workDir), domain.RenderConfigTemplate(def))

	cfg, err := NewLoaderWithGlobalDir(workDir, "").Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, def, cfg)
}
