package workspace

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/runnerr0/loom/internal/store"
)

// DefaultTaskColor is applied when a task is created without a color.
const DefaultTaskColor = "#3B82F6"

// TaskPayload is the request to create a task.
type TaskPayload struct {
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// CreateTask creates and persists a new task with creation defaults.
func (w *Workspace) CreateTask(ctx context.Context, payload TaskPayload) (*Task, error) {
	if payload.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	color := payload.Color
	if color == "" {
		color = w.taskColor
	}
	if color == "" {
		color = DefaultTaskColor
	}

	now := nowMillis()
	task := &Task{
		ID:           uuid.New().String(),
		Title:        payload.Title,
		Color:        color,
		CreatedAt:    now,
		LastActiveAt: now,
		Priority:     0.5,
	}

	if err := w.store.Put(ctx, store.CollectionTasks, task.ID, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	return task, nil
}

// AllTasksWithDetails returns every task joined with its subtasks, each
// subtask carrying its tabs. Tabs referencing a subtask id with no stored
// subtask record are grouped under a synthesized subtask titled by its id.
func (w *Workspace) AllTasksWithDetails(ctx context.Context) ([]TaskDetails, error) {
	tasks, err := store.GetAll[Task](ctx, w.store, store.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	subtasks, err := store.GetAll[Subtask](ctx, w.store, store.CollectionSubtasks)
	if err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	tabs, err := store.GetAll[Tab](ctx, w.store, store.CollectionTabs)
	if err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}

	details := make([]TaskDetails, 0, len(tasks))
	for _, task := range tasks {
		td := TaskDetails{Task: task, Subtasks: []SubtaskDetails{}}

		index := map[string]int{}
		for _, st := range subtasks {
			if st.TaskID != task.ID {
				continue
			}
			index[st.ID] = len(td.Subtasks)
			td.Subtasks = append(td.Subtasks, SubtaskDetails{Subtask: st, Tabs: []Tab{}})
		}

		for _, tab := range tabs {
			if tab.TaskID != task.ID {
				continue
			}
			i, ok := index[tab.SubtaskID]
			if !ok {
				i = len(td.Subtasks)
				index[tab.SubtaskID] = i
				td.Subtasks = append(td.Subtasks, SubtaskDetails{
					Subtask: Subtask{ID: tab.SubtaskID, TaskID: task.ID, Title: tab.SubtaskID},
					Tabs:    []Tab{},
				})
			}
			td.Subtasks[i].Tabs = append(td.Subtasks[i].Tabs, tab)
		}

		details = append(details, td)
	}

	return details, nil
}

// TopTasks returns the n most recently active tasks, most recent first.
func (w *Workspace) TopTasks(ctx context.Context, n int) ([]Task, error) {
	tasks, err := store.GetAll[Task](ctx, w.store, store.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].LastActiveAt > tasks[j].LastActiveAt
	})

	if n > 0 && len(tasks) > n {
		tasks = tasks[:n]
	}
	return tasks, nil
}

// State is a full snapshot of the workspace collections consumed by the
// workspace view.
type State struct {
	Tasks []Task `json:"tasks"`
	Notes []Note `json:"notes"`
	Tabs  []Tab  `json:"tabs"`
}

// WorkspaceState reads the tasks, notes, and tabs collections in one call.
func (w *Workspace) WorkspaceState(ctx context.Context) (*State, error) {
	tasks, err := store.GetAll[Task](ctx, w.store, store.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	notes, err := store.GetAll[Note](ctx, w.store, store.CollectionNotes)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	tabs, err := store.GetAll[Tab](ctx, w.store, store.CollectionTabs)
	if err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}

	return &State{Tasks: tasks, Notes: notes, Tabs: tabs}, nil
}
