// Package workspace implements the Loom core: research tasks, tab snapshots,
// note capture with best-effort attribution, and session event logging, all
// persisted through the record store.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runnerr0/loom/internal/store"
)

// Workspace is the explicit context object for all core operations: it holds
// the open store handle and the current session id. No package-level state.
type Workspace struct {
	store     *store.Store
	taskColor string

	mu        sync.Mutex
	sessionID string
}

// New creates a Workspace over the given record store.
func New(st *store.Store) *Workspace {
	return &Workspace{store: st}
}

// SetDefaultTaskColor overrides the color applied to tasks created without
// one. An empty value keeps the built-in default.
func (w *Workspace) SetDefaultTaskColor(color string) {
	w.taskColor = color
}

// Store exposes the underlying record store (used by status reporting).
func (w *Workspace) Store() *store.Store {
	return w.store
}

// nowMillis returns the current time in epoch milliseconds, the timestamp
// unit shared with the extension.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// settingsKey is the fixed id of the single settings record.
const settingsKey = "settings"

// DefaultSettings returns the settings written on first run.
func DefaultSettings() Settings {
	return Settings{
		AutoGroupTabs:           true,
		SalienceIndicators:      true,
		ShowProductivityReports: true,
	}
}

// settingsRecord wraps Settings in the stored {key, value} shape.
type settingsRecord struct {
	Key   string   `json:"key"`
	Value Settings `json:"value"`
}

// Settings loads the stored settings, falling back to defaults when no
// record exists yet.
func (w *Workspace) Settings(ctx context.Context) (Settings, error) {
	rec, err := store.Get[settingsRecord](ctx, w.store, store.CollectionSettings, settingsKey)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if rec == nil {
		return DefaultSettings(), nil
	}
	return rec.Value, nil
}

// SaveSettings persists the settings record.
func (w *Workspace) SaveSettings(ctx context.Context, s Settings) error {
	rec := settingsRecord{Key: settingsKey, Value: s}
	if err := w.store.Put(ctx, store.CollectionSettings, settingsKey, rec); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
