package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/loom/internal/workspace"
)

// Execute implements the go-flags Commander interface for TaskCommand.
func (c *TaskCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required for task command")
	}

	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	return c.executeWithWorkspace(ws)
}

// executeWithWorkspace runs task creation against a provided workspace (for testing).
func (c *TaskCommand) executeWithWorkspace(ws *workspace.Workspace) error {
	task, err := ws.CreateTask(context.Background(), workspace.TaskPayload{
		Title: c.Title,
		Color: c.Color,
	})
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"task": task})
	}

	fmt.Printf("Created task %s\n", task.ID)
	fmt.Printf("  Title: %s\n", task.Title)
	fmt.Printf("  Color: %s\n", task.Color)

	return nil
}
