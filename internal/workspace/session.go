package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/runnerr0/loom/internal/store"
)

// EventPayload is an inbound session event from a tab listener.
type EventPayload struct {
	EventType string         `json:"eventType"`
	TabID     string         `json:"tabId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// TabPayload is a tab snapshot reported by the extension. ID may be empty on
// first sight of a tab; an id is assigned and returned on the stored record.
type TabPayload struct {
	ID          string `json:"id,omitempty"`
	TaskID      string `json:"taskId,omitempty"`
	SubtaskID   string `json:"subtaskId,omitempty"`
	ChromeTabID string `json:"chromeTabId,omitempty"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	SourceURL   string `json:"sourceUrl,omitempty"`
}

// StartSession rotates the current session id and logs a session_start
// event. Returns the new session id.
func (w *Workspace) StartSession(ctx context.Context) (string, error) {
	id := uuid.New().String()

	w.mu.Lock()
	w.sessionID = id
	w.mu.Unlock()

	if _, err := w.LogEvent(ctx, EventPayload{EventType: EventSessionStart}); err != nil {
		return "", err
	}
	return id, nil
}

// SessionID returns the current session id, empty before the first session.
func (w *Workspace) SessionID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sessionID
}

// currentSession returns the session id, starting one lazily on first use.
func (w *Workspace) currentSession() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sessionID == "" {
		w.sessionID = uuid.New().String()
	}
	return w.sessionID
}

// LogEvent appends a session event under the current session. Events are
// append-only; nothing in the core updates or deletes them.
func (w *Workspace) LogEvent(ctx context.Context, payload EventPayload) (*SessionEvent, error) {
	if payload.EventType == "" {
		return nil, fmt.Errorf("event type is required")
	}

	event := &SessionEvent{
		ID:        uuid.New().String(),
		SessionID: w.currentSession(),
		EventType: payload.EventType,
		TabID:     payload.TabID,
		Timestamp: nowMillis(),
		Data:      payload.Data,
	}

	if err := w.store.Put(ctx, store.CollectionSessionEvents, event.ID, event); err != nil {
		return nil, fmt.Errorf("save session event: %w", err)
	}
	return event, nil
}

// TrackTab upserts a tab snapshot record. A payload without an id creates a
// new record; with an id it fully replaces the prior snapshot.
func (w *Workspace) TrackTab(ctx context.Context, payload TabPayload) (*Tab, error) {
	if payload.URL == "" {
		return nil, fmt.Errorf("tab url is required")
	}

	id := payload.ID
	if id == "" {
		id = uuid.New().String()
	}

	tab := &Tab{
		ID:          id,
		TaskID:      payload.TaskID,
		SubtaskID:   payload.SubtaskID,
		ChromeTabID: payload.ChromeTabID,
		URL:         payload.URL,
		Title:       payload.Title,
		Favicon:     payload.Favicon,
	}
	if payload.SourceURL != "" {
		tab.Provenance = &Provenance{SourceURL: payload.SourceURL}
	}

	if err := w.store.Put(ctx, store.CollectionTabs, tab.ID, tab); err != nil {
		return nil, fmt.Errorf("save tab: %w", err)
	}
	return tab, nil
}
