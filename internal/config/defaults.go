package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:       "~/.config/fabric/loom",
			SQLiteFile: "loom.db",
		},
		Daemon: DaemonConfig{
			Host: "127.0.0.1",
			Port: 8732,
		},
		Workspace: WorkspaceConfig{
			TopTasksCount:    4,
			DefaultTaskColor: "#3B82F6",
		},
	}
}
