package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/loom/internal/workspace"
)

// Execute implements the go-flags Commander interface for TasksCommand.
func (c *TasksCommand) Execute(args []string) error {
	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	return c.executeWithWorkspace(ws)
}

// executeWithWorkspace runs the listing against a provided workspace (for testing).
func (c *TasksCommand) executeWithWorkspace(ws *workspace.Workspace) error {
	ctx := context.Background()

	if c.Top > 0 {
		return c.printTop(ctx, ws)
	}

	details, err := ws.AllTasksWithDetails(ctx)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"tasks": details})
	}

	if len(details) == 0 {
		fmt.Println("No tasks yet")
		return nil
	}

	for _, td := range details {
		fmt.Printf("%s  %s\n", td.Title, td.ID)
		fmt.Printf("  last active %s\n", formatMillis(td.LastActiveAt))
		for _, st := range td.Subtasks {
			fmt.Printf("  - %s (%d tabs)\n", st.Title, len(st.Tabs))
			for _, tab := range st.Tabs {
				fmt.Printf("      %s\n", tab.URL)
			}
		}
	}

	return nil
}

func (c *TasksCommand) printTop(ctx context.Context, ws *workspace.Workspace) error {
	tasks, err := ws.TopTasks(ctx, c.Top)
	if err != nil {
		return fmt.Errorf("listing top tasks: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"topTasks": tasks})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet")
		return nil
	}

	for i, task := range tasks {
		fmt.Printf("%d. %s  (last active %s)\n", i+1, task.Title, formatMillis(task.LastActiveAt))
	}

	return nil
}
