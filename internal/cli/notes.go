package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/loom/internal/workspace"
)

// Execute implements the go-flags Commander interface for NotesCommand.
func (c *NotesCommand) Execute(args []string) error {
	if c.URL == "" {
		return fmt.Errorf("--url is required for notes command")
	}

	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	return c.executeWithWorkspace(ws)
}

// executeWithWorkspace runs the lookup against a provided workspace (for testing).
func (c *NotesCommand) executeWithWorkspace(ws *workspace.Workspace) error {
	notes, err := ws.NotesForPage(context.Background(), c.URL)
	if err != nil {
		return fmt.Errorf("looking up notes: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"notes": notes, "count": len(notes)})
	}

	if len(notes) == 0 {
		fmt.Printf("No notes found for %s\n", c.URL)
		return nil
	}

	noteWord := "notes"
	if len(notes) == 1 {
		noteWord = "note"
	}
	fmt.Printf("Found %d %s for %s\n\n", len(notes), noteWord, c.URL)

	for i, n := range notes {
		fmt.Printf("%d. [%s] %s\n", i+1, n.Type, n.Title)
		if n.Content != "" {
			fmt.Printf("   %s\n", n.Content)
		}
		meta := formatMillis(n.CreatedAt)
		if n.TaskID != "" {
			meta += " · task " + n.TaskID
		}
		fmt.Printf("   %s\n", meta)

		if i < len(notes)-1 {
			fmt.Println()
		}
	}

	return nil
}
