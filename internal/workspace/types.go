package workspace

// Task is the root grouping entity for research activity. LastActiveAt is a
// recency signal in epoch milliseconds, bumped whenever a child note or tab
// activity attaches to the task.
type Task struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Color        string       `json:"color,omitempty"`
	CreatedAt    int64        `json:"createdAt"`
	LastActiveAt int64        `json:"lastActiveAt"`
	Archived     bool         `json:"archived"`
	Priority     float64      `json:"priority"`
	Metadata     TaskMetadata `json:"metadata"`
}

// TaskMetadata holds aggregate counters for a task.
type TaskMetadata struct {
	TotalTimeSpent int64 `json:"totalTimeSpent"`
	TabCount       int   `json:"tabCount"`
	NoteCount      int   `json:"noteCount"`
}

// Subtask is a sub-grouping within a task. TaskID is a non-owning
// back-reference; LastUpdated is epoch milliseconds.
type Subtask struct {
	ID          string `json:"id"`
	TaskID      string `json:"taskId"`
	Title       string `json:"title"`
	LastUpdated int64  `json:"lastUpdated"`
}

// Tab is a browser tab snapshot associated with a task/subtask.
type Tab struct {
	ID          string      `json:"id"`
	TaskID      string      `json:"taskId,omitempty"`
	SubtaskID   string      `json:"subtaskId,omitempty"`
	ChromeTabID string      `json:"chromeTabId,omitempty"`
	URL         string      `json:"url"`
	Title       string      `json:"title,omitempty"`
	Favicon     string      `json:"favicon,omitempty"`
	Provenance  *Provenance `json:"provenance,omitempty"`
}

// Provenance records the causal link from a tab to the page that opened it
// (e.g. a link click). SourceURL is a secondary matching key independent of
// the tab's own current URL.
type Provenance struct {
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Note is a user-captured text artifact, including highlighted "clip"
// variants. TaskID/SubtaskID are inferred at creation time, not asserted,
// and stay empty when inference fails.
type Note struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	PageURL     string   `json:"pageUrl"`
	PageTitle   string   `json:"pageTitle,omitempty"`
	TaskID      string   `json:"taskId,omitempty"`
	SubtaskID   string   `json:"subtaskId,omitempty"`
	SourceTabID string   `json:"sourceTabId,omitempty"`
	LinkedTabs  []string `json:"linkedTabs"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Note types.
const (
	NoteTypeNote = "note"
	NoteTypeClip = "clip"
)

// SessionEvent is an append-only log entry for tab lifecycle activity.
// The core never updates or deletes session events.
type SessionEvent struct {
	ID        string         `json:"id"`
	SessionID string         `json:"sessionId"`
	EventType string         `json:"eventType"`
	TabID     string         `json:"tabId,omitempty"`
	Timestamp int64          `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// Session event types emitted by the tab listeners and the session lifecycle.
const (
	EventSessionStart = "session_start"
	EventTabOpen      = "tab_open"
	EventTabLoaded    = "tab_loaded"
	EventTabClose     = "tab_close"
	EventTabSwitch    = "tab_switch"
)

// Settings holds the user-tunable workspace flags.
type Settings struct {
	AutoGroupTabs           bool `json:"autoGroupTabs"`
	SalienceIndicators      bool `json:"salienceIndicators"`
	ShowProductivityReports bool `json:"showProductivityReports"`
	EdgeLighting            bool `json:"edgeLighting"`
}

// TaskDetails is a task augmented with its subtasks, each carrying its tabs.
// This is the read-side join consumed by the sidebar.
type TaskDetails struct {
	Task
	Subtasks []SubtaskDetails `json:"subtasks"`
}

// SubtaskDetails is a subtask augmented with its tabs.
type SubtaskDetails struct {
	Subtask
	Tabs []Tab `json:"tabs"`
}
