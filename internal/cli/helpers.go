package cli

import (
	"fmt"
	"time"

	"github.com/runnerr0/loom/internal/config"
	"github.com/runnerr0/loom/internal/store"
	"github.com/runnerr0/loom/internal/workspace"
)

// loadConfig resolves configuration from the globals' --config path, or
// creates defaults at the standard location.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// openWorkspace builds a workspace over the configured database. The store
// opens lazily on first use, so this never touches the filesystem itself.
func openWorkspace(globals *GlobalFlags) (*workspace.Workspace, *store.Store, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}

	st := store.New(dbPath)
	ws := workspace.New(st)
	ws.SetDefaultTaskColor(cfg.Workspace.DefaultTaskColor)
	return ws, st, nil
}

// formatMillis renders an epoch-milliseconds timestamp for human output.
func formatMillis(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// formatBytes renders a byte count as a human-readable size.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
