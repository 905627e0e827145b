package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/loom/internal/store"
)

func TestCreateTask_Defaults(t *testing.T) {
	w := newTestWorkspace(t)

	task, err := w.CreateTask(context.Background(), TaskPayload{Title: "Quantum reading"})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Quantum reading", task.Title)
	assert.Equal(t, DefaultTaskColor, task.Color)
	assert.Equal(t, 0.5, task.Priority)
	assert.False(t, task.Archived)
	assert.Equal(t, task.CreatedAt, task.LastActiveAt)
	assert.Greater(t, task.CreatedAt, int64(0))
}

func TestCreateTask_RequiresTitle(t *testing.T) {
	w := newTestWorkspace(t)

	_, err := w.CreateTask(context.Background(), TaskPayload{})
	assert.Error(t, err)
}

func TestCreateTask_CustomColor(t *testing.T) {
	w := newTestWorkspace(t)

	task, err := w.CreateTask(context.Background(), TaskPayload{Title: "t", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", task.Color)
}

func TestCreateTask_ConfiguredDefaultColor(t *testing.T) {
	w := newTestWorkspace(t)
	w.SetDefaultTaskColor("#00FF00")

	task, err := w.CreateTask(context.Background(), TaskPayload{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", task.Color)

	// An explicit color still wins over the configured default.
	task, err = w.CreateTask(context.Background(), TaskPayload{Title: "t2", Color: "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", task.Color)
}

func TestAllTasksWithDetails_Grouping(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1", Title: "One"})
	putSubtask(t, w, Subtask{ID: "S1", TaskID: "T1", Title: "Papers"})
	putTab(t, w, Tab{ID: "tab1", TaskID: "T1", SubtaskID: "S1", URL: "https://a.com"})
	putTab(t, w, Tab{ID: "tab2", TaskID: "T1", SubtaskID: "S1", URL: "https://b.com"})

	details, err := w.AllTasksWithDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)

	td := details[0]
	assert.Equal(t, "T1", td.ID)
	require.Len(t, td.Subtasks, 1)
	assert.Equal(t, "Papers", td.Subtasks[0].Title)
	assert.Len(t, td.Subtasks[0].Tabs, 2)
}

func TestAllTasksWithDetails_SynthesizesMissingSubtask(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1", Title: "One"})
	// Tab references a subtask id with no stored record.
	putTab(t, w, Tab{ID: "tab1", TaskID: "T1", SubtaskID: "S-ghost", URL: "https://a.com"})

	details, err := w.AllTasksWithDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Len(t, details[0].Subtasks, 1)
	assert.Equal(t, "S-ghost", details[0].Subtasks[0].ID)
	assert.Equal(t, "S-ghost", details[0].Subtasks[0].Title)
	assert.Len(t, details[0].Subtasks[0].Tabs, 1)
}

func TestAllTasksWithDetails_IgnoresOtherTasksChildren(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1"})
	putTask(t, w, Task{ID: "T2"})
	putSubtask(t, w, Subtask{ID: "S2", TaskID: "T2"})
	putTab(t, w, Tab{ID: "tab2", TaskID: "T2", SubtaskID: "S2", URL: "https://b.com"})

	details, err := w.AllTasksWithDetails(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)

	for _, td := range details {
		if td.ID == "T1" {
			assert.Empty(t, td.Subtasks)
		}
	}
}

func TestTopTasks_OrderAndLimit(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1", LastActiveAt: 100})
	putTask(t, w, Task{ID: "T2", LastActiveAt: 300})
	putTask(t, w, Task{ID: "T3", LastActiveAt: 200})

	top, err := w.TopTasks(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "T2", top[0].ID)
	assert.Equal(t, "T3", top[1].ID)
}

func TestTopTasks_ZeroMeansAll(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1", LastActiveAt: 1})
	putTask(t, w, Task{ID: "T2", LastActiveAt: 2})

	top, err := w.TopTasks(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestWorkspaceState(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	putTask(t, w, Task{ID: "T1"})
	putTab(t, w, Tab{ID: "tab1", URL: "https://a.com"})
	_, err := w.CreateNote(ctx, NotePayload{PageURL: "https://a.com"})
	require.NoError(t, err)

	state, err := w.WorkspaceState(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Tasks, 1)
	assert.Len(t, state.Notes, 1)
	assert.Len(t, state.Tabs, 1)
}

func TestNotesCount(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	n, err := w.NotesCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = w.CreateNote(ctx, NotePayload{PageURL: "https://a.com"})
	require.NoError(t, err)
	_, err = w.CreateNote(ctx, NotePayload{PageURL: "https://b.com"})
	require.NoError(t, err)

	n, err = w.NotesCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSettings_DefaultsWhenAbsent(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	settings, err := w.Settings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.AutoGroupTabs)
	assert.True(t, settings.SalienceIndicators)
	assert.True(t, settings.ShowProductivityReports)
	assert.False(t, settings.EdgeLighting)
}

func TestSettings_RoundTrip(t *testing.T) {
	w := newTestWorkspace(t)
	ctx := context.Background()

	want := Settings{EdgeLighting: true}
	require.NoError(t, w.SaveSettings(ctx, want))

	got, err := w.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Stored in the settings collection under the fixed key.
	rec, err := store.Get[settingsRecord](ctx, w.store, store.CollectionSettings, "settings")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, want, rec.Value)
}
