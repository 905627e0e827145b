package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/loom/internal/store"
	"github.com/runnerr0/loom/internal/workspace"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string           `json:"version"`
	DatabasePath      string           `json:"database_path"`
	DatabaseSizeBytes int64            `json:"database_size_bytes"`
	Collections       map[string]int64 `json:"collections"`
	SessionID         string           `json:"session_id,omitempty"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	return c.executeWithWorkspace(ws)
}

// executeWithWorkspace runs status against a provided workspace (for testing).
func (c *StatusCommand) executeWithWorkspace(ws *workspace.Workspace) error {
	ctx := context.Background()
	st := ws.Store()

	counts := map[string]int64{}
	for _, collection := range store.Collections() {
		n, err := st.Count(ctx, collection)
		if err != nil {
			return fmt.Errorf("count %s: %w", collection, err)
		}
		counts[collection] = n
	}

	dbPath := st.Path()
	var dbSize int64
	if info, err := os.Stat(dbPath); err == nil {
		dbSize = info.Size()
	}

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: dbSize,
			Collections:       counts,
			SessionID:         ws.SessionID(),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Loom Status")
	fmt.Println("===========")
	fmt.Printf("Version:   %s\n", c.version)
	fmt.Printf("Database:  %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Println()
	fmt.Println("Collections:")
	for _, collection := range store.Collections() {
		fmt.Printf("  %-15s %d\n", collection, counts[collection])
	}

	return nil
}
