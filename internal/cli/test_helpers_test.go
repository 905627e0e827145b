package cli

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/loom/internal/store"
	"github.com/runnerr0/loom/internal/workspace"
)

// newTestWorkspace creates a workspace over an in-memory store.
func newTestWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	st := store.New(":memory:")
	t.Cleanup(func() { st.Close() })
	return workspace.New(st)
}

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}
