package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/domain"
)

func TestConfigShow(t *testing.T) {
	s, _ := newTestSession(t)
	local := domain.LocalConfigPath(s.opts.WorkDir)
	require.NoError(t, os.WriteFile(local, []byte("[store]\nbackend = \"git\"\nflavour = \"x\"\n"), 0o600))

	stdout, stderr, err := run(t, s, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(s.globalConfDir, domain.ConfigFileName)+" (not found)")
	assert.Contains(t, stdout, "- "+local+"\n")
	assert.Contains(t, stdout, "[Effective config]")
	assert.Contains(t, stdout, "backend = 'git'")
	assert.Contains(t, stderr, "unknown key in [store]: flavour")
}

func TestConfig_NoSubcommandShows(t *testing.T) {
	s, _ := newTestSession(t)

	stdout, _, err := run(t, s, "config")

	require.NoError(t, err)
	assert.Contains(t, stdout, "[Loaded from]")
}

func TestConfigShow_ExplicitFile(t *testing.T) {
	s, _ := newTestSession(t)
	path := filepath.Join(t.TempDir(), "alt.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o600))

	stdout, _, err := run(t, s, "--config", path, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "- "+path+"\n")
	assert.Contains(t, stdout, "level = 'debug'")
}

func TestConfigTemplate(t *testing.T) {
	s, _ := newTestSession(t)

	stdout, _, err := run(t, s, "config", "template")

	require.NoError(t, err)
	assert.Equal(t, domain.RenderConfigTemplate(domain.NewDefaultConfig()), stdout)
}

func TestConfigInit(t *testing.T) {
	s, _ := newTestSession(t)
	local := domain.LocalConfigPath(s.opts.WorkDir)

	stdout, _, err := run(t, s, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Created "+local+"\n", stdout)
	_, err = os.Stat(local)
	require.NoError(t, err)

	_, _, err = run(t, s, "config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigInit_Global(t *testing.T) {
	s, _ := newTestSession(t)

	_, _, err := run(t, s, "config", "init", "--global")

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.globalConfDir, domain.ConfigFileName))
	assert.NoError(t, err)
}
