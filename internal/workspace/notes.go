package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/runnerr0/loom/internal/store"
)

// NotePayload is the capture request for a note. Only PageURL is required.
type NotePayload struct {
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	PageURL   string `json:"pageUrl"`
	PageTitle string `json:"pageTitle,omitempty"`
}

// ClipPayload is the capture request for a highlighted clip.
type ClipPayload struct {
	Excerpt   string `json:"excerpt"`
	PageURL   string `json:"pageUrl"`
	PageTitle string `json:"pageTitle,omitempty"`
}

// CreateNote resolves attribution for the payload, persists the note, and
// bumps the recency timestamps on the parent task and subtask it attached to.
//
// The three writes are independent store operations, not one transaction: a
// crash between them leaves the note persisted with stale parent timestamps.
// Accepted tradeoff; the timestamps only need monotonic-ish recency.
func (w *Workspace) CreateNote(ctx context.Context, payload NotePayload) (*Note, error) {
	title := payload.Title
	if title == "" {
		title = "Untitled Note"
	}
	return w.createAttributed(ctx, NoteTypeNote, title, payload.Content, payload.PageURL, payload.PageTitle)
}

// CreateClip persists a highlighted selection as a clip note, running through
// the same attribution path as CreateNote.
func (w *Workspace) CreateClip(ctx context.Context, payload ClipPayload) (*Note, error) {
	title := fmt.Sprintf("Clip from %s", payload.PageTitle)
	return w.createAttributed(ctx, NoteTypeClip, title, payload.Excerpt, payload.PageURL, payload.PageTitle)
}

func (w *Workspace) createAttributed(ctx context.Context, noteType, title, content, pageURL, pageTitle string) (*Note, error) {
	pageURL = strings.TrimSpace(pageURL)

	tabs, err := store.GetAll[Tab](ctx, w.store, store.CollectionTabs)
	if err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}
	subtasks, err := store.GetAll[Subtask](ctx, w.store, store.CollectionSubtasks)
	if err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	tasks, err := store.GetAll[Task](ctx, w.store, store.CollectionTasks)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	attr := resolveContext(pageURL, tabs, subtasks, tasks)

	now := nowMillis()
	note := &Note{
		ID:         uuid.New().String(),
		Type:       noteType,
		Title:      title,
		Content:    content,
		PageURL:    pageURL,
		PageTitle:  pageTitle,
		TaskID:     attr.TaskID,
		SubtaskID:  attr.SubtaskID,
		LinkedTabs: []string{},
		Tags:       []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if attr.TabID != "" {
		note.SourceTabID = attr.TabID
		note.LinkedTabs = []string{attr.TabID}
	}

	if err := w.store.Put(ctx, store.CollectionNotes, note.ID, note); err != nil {
		return nil, fmt.Errorf("save note: %w", err)
	}

	w.touchParents(ctx, attr)

	return note, nil
}

// touchParents bumps lastActiveAt/lastUpdated on the resolved task and
// subtask. A parent id pointing at a record that no longer exists is skipped
// silently; a dangling reference must not fail note creation. Write errors on
// the bumps are swallowed for the same reason: the note is already persisted,
// and a stale recency timestamp is an acceptable outcome.
func (w *Workspace) touchParents(ctx context.Context, attr Attribution) {
	now := nowMillis()

	if attr.TaskID != "" {
		task, err := store.Get[Task](ctx, w.store, store.CollectionTasks, attr.TaskID)
		if err == nil && task != nil {
			task.LastActiveAt = now
			_ = w.store.Put(ctx, store.CollectionTasks, task.ID, task)
		}
	}

	if attr.SubtaskID != "" {
		subtask, err := store.Get[Subtask](ctx, w.store, store.CollectionSubtasks, attr.SubtaskID)
		if err == nil && subtask != nil {
			subtask.LastUpdated = now
			_ = w.store.Put(ctx, store.CollectionSubtasks, subtask.ID, subtask)
		}
	}
}

// NotesForPage returns all notes attributable to the given page URL,
// unordered. A note matches when any of these hold:
//
//   - its own normalized pageUrl equals the normalized query;
//   - its raw pageUrl contains the normalized query as a substring
//     (intentionally loose);
//   - its sourceTabId resolves to a tab whose URL matches;
//   - any linkedTabs id resolves to a tab whose URL matches;
//   - a tab with matching provenance sourceUrl is referenced by the note.
//
// Pure read; O(notes x tabs) per call, fine at per-user volumes.
func (w *Workspace) NotesForPage(ctx context.Context, pageURL string) ([]Note, error) {
	notes, err := store.GetAll[Note](ctx, w.store, store.CollectionNotes)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	tabs, err := store.GetAll[Tab](ctx, w.store, store.CollectionTabs)
	if err != nil {
		return nil, fmt.Errorf("load tabs: %w", err)
	}

	normalized := NormalizeURL(strings.TrimSpace(pageURL))

	tabsByID := make(map[string]*Tab, len(tabs))
	for i := range tabs {
		tabsByID[tabs[i].ID] = &tabs[i]
	}

	matched := []Note{}
	for _, note := range notes {
		if noteMatchesPage(&note, normalized, tabs, tabsByID) {
			matched = append(matched, note)
		}
	}

	return matched, nil
}

func noteMatchesPage(note *Note, normalized string, tabs []Tab, tabsByID map[string]*Tab) bool {
	if note.PageURL == "" && note.SourceTabID == "" {
		return false
	}

	if NormalizeURL(note.PageURL) == normalized {
		return true
	}

	// Fuzzy containment
	if note.PageURL != "" && strings.Contains(note.PageURL, normalized) {
		return true
	}

	if note.SourceTabID != "" {
		if tab := tabsByID[note.SourceTabID]; tab != nil && NormalizeURL(tab.URL) == normalized {
			return true
		}
	}

	for _, id := range note.LinkedTabs {
		if tab := tabsByID[id]; tab != nil && NormalizeURL(tab.URL) == normalized {
			return true
		}
	}

	// Provenance: a tab opened from this page, referenced by the note.
	for i := range tabs {
		p := tabs[i].Provenance
		if p == nil || p.SourceURL == "" || NormalizeURL(p.SourceURL) != normalized {
			continue
		}
		if note.SourceTabID == tabs[i].ID {
			return true
		}
		for _, id := range note.LinkedTabs {
			if id == tabs[i].ID {
				return true
			}
		}
	}

	return false
}

// NotesCount reports the total number of stored notes.
func (w *Workspace) NotesCount(ctx context.Context) (int64, error) {
	return w.store.Count(ctx, store.CollectionNotes)
}
