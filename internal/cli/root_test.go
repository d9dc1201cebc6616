package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootHelp(t *testing.T) {
	out, _, err := executeRoot(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "pgscope")
	assert.Contains(t, out, "Available Commands")
}

// Runs a full subcommand so the config load, data dir creation, and
// metadata store open all execute.
func TestRootWiresStore(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "pgscope")

	out, _, err := executeRoot(t, "status", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Not connected.")

	// Second invocation reopens the same metadata database.
	out, _, err = executeRoot(t, "connections", "list", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "No saved connections")
}

func TestRootUnknownCommand(t *testing.T) {
	_, _, err := executeRoot(t, "frobnicate")
	require.Error(t, err)
}
