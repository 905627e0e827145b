package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/loom/internal/api"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.Host != "" {
		cfg.Daemon.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Daemon.Port = c.Port
	}

	ws, st, err := openWorkspace(c.globals)
	if err != nil {
		return err
	}
	defer st.Close()

	// Each daemon run is a fresh session; tab events logged through the API
	// attach to it.
	sessionID, err := ws.StartSession(context.Background())
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	server := api.New(ws, cfg.Addr(), cfg.Workspace.TopTasksCount)

	fmt.Printf("Loom daemon listening on %s (session %s)\n", cfg.Addr(), sessionID)
	return server.Run()
}
