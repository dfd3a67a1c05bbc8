package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpad/internal/domain"
)

func TestExportCommand_DefaultFormatFromConfig(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")
	c.AppConfig.Export.DefaultFormat = "csv"

	stdout, _, err := run(t, s, "export")

	require.NoError(t, err)
	assert.Equal(t, "id,text,completed\n1,A,false\n", stdout)
}

func TestExportCommand_Markdown(t *testing.T) {
	s, c := newTestSession(t)
	c.Store.Add("A")

	stdout, _, err := run(t, s, "export", "--format", "markdown")

	require.NoError(t, err)
	assert.Contains(t, stdout, "- [ ] A (#1)")
}

func TestExportCommand_ToFile(t *testing.T) {
	s, c := newTestSession(t)
	a, _ := c.Store.Add("A")
	c.Store.Add("B")
	c.Store.Toggle(a.ID)
	path := filepath.Join(t.TempDir(), "done.pdf")

	stdout, _, err := run(t, s, "export", "-f", "pdf", "-o", path, "--completed")

	require.NoError(t, err)
	assert.Equal(t, "Exported 1 task to "+path+" (pdf)\n", stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	s, _ := newTestSession(t)

	_, _, err := run(t, s, "export", "-f", "docx")

	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}
