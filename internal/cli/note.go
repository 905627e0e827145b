package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/loom/internal/workspace"
)

// Execute implements the go-flags Commander interface for NoteCommand.
func (c *NoteCommand) Execute(args []string) error {
	if c.URL == "" {
		return fmt.Errorf("--url is required for note command")
	}

	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	return c.executeWithWorkspace(ws)
}

// executeWithWorkspace runs the capture against a provided workspace (used by tests).
func (c *NoteCommand) executeWithWorkspace(ws *workspace.Workspace) error {
	ctx := context.Background()

	var note *workspace.Note
	var err error
	if c.Clip {
		note, err = ws.CreateClip(ctx, workspace.ClipPayload{
			Excerpt:   c.Content,
			PageURL:   c.URL,
			PageTitle: c.PageTitle,
		})
	} else {
		note, err = ws.CreateNote(ctx, workspace.NotePayload{
			Title:     c.Title,
			Content:   c.Content,
			PageURL:   c.URL,
			PageTitle: c.PageTitle,
		})
	}
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"note": note})
	}

	fmt.Printf("Created %s %s\n", note.Type, note.ID)
	fmt.Printf("  Title: %s\n", note.Title)
	fmt.Printf("  Page:  %s\n", note.PageURL)

	// Attribution is best-effort; show what resolved.
	if note.TaskID != "" {
		fmt.Printf("  Task:    %s\n", note.TaskID)
	} else {
		fmt.Println("  Task:    (unattributed)")
	}
	if note.SubtaskID != "" {
		fmt.Printf("  Subtask: %s\n", note.SubtaskID)
	}
	if note.SourceTabID != "" {
		fmt.Printf("  Tab:     %s\n", note.SourceTabID)
	}

	return nil
}
