package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/loom/internal/workspace"
)

func TestStatus_EmptyWorkspace(t *testing.T) {
	ws := newTestWorkspace(t)

	cmd := &StatusCommand{globals: &GlobalFlags{}, version: "dev"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithWorkspace(ws))
	})

	assert.Contains(t, output, "Loom Status")
	assert.Contains(t, output, "dev")
	assert.Contains(t, output, "tasks")
	assert.Contains(t, output, "notes")
	assert.Contains(t, output, "sessionEvents")
}

func TestStatus_CountsRecords(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	_, err := ws.CreateTask(ctx, workspace.TaskPayload{Title: "t"})
	require.NoError(t, err)
	_, err = ws.CreateNote(ctx, workspace.NotePayload{PageURL: "https://a.com"})
	require.NoError(t, err)

	cmd := &StatusCommand{globals: &GlobalFlags{JSON: true}, version: "1.0.0"}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithWorkspace(ws))
	})

	var out statusJSON
	require.NoError(t, json.Unmarshal([]byte(output), &out))

	assert.Equal(t, "1.0.0", out.Version)
	assert.EqualValues(t, 1, out.Collections["tasks"])
	assert.EqualValues(t, 1, out.Collections["notes"])
	assert.EqualValues(t, 0, out.Collections["tabs"])
}
