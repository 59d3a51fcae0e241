package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogFile_PrunesOldFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"server-2024-01-01T00-00-00.000.log", "server-2024-01-02T00-00-00.000.log", "kbadmin-2024-01-01T00-00-00.000.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	f, err := SetupLogFile(dir, "server", 2)
	require.NoError(t, err)
	defer f.Close()

	servers, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Len(t, servers, 2)
	assert.NotContains(t, servers, filepath.Join(dir, "server-2024-01-01T00-00-00.000.log"))

	others, err := filepath.Glob(filepath.Join(dir, "kbadmin-*.log"))
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestLogOutput_StdoutWhenNoDir(t *testing.T) {
	w, closeFn, err := LogOutput("", "server")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, closeFn())
}
