package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"--version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "dev")
}

func TestRun_PersistsAcrossInvocations(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"add", "Buy milk"}, &stdout, &stderr))
	require.NoError(t, run([]string{"add", "Walk dog"}, &stdout, &stderr))
	require.NoError(t, run([]string{"toggle", "1"}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"stats"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Total:        2")
	assert.Contains(t, stdout.String(), "Productivity: 50%")
}

func TestRun_Ephemeral(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"--ephemeral", "add", "scratch"}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"list"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "No tasks")
}

func TestRun_UnknownCommand(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	assert.Error(t, run([]string{"frobnicate"}, &stdout, &stderr))
}

func TestRun_FailingCommandThenReopen(t *testing.T) {
	isolate(t)
	var stdout, stderr bytes.Buffer

	require.NoError(t, run([]string{"add", "Buy milk"}, &stdout, &stderr))
	assert.Error(t, run([]string{"export", "-f", "docx"}, &stdout, &stderr))

	stdout.Reset()
	require.NoError(t, run([]string{"list"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Buy milk")
}
