package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// StatusCommand — show record counts per collection and database info.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// NoteCommand — capture a note for a page URL with attribution.
type NoteCommand struct {
	URL       string `long:"url" description:"Page URL the note was captured on (required)"`
	Title     string `long:"title" description:"Note title"`
	Content   string `long:"content" description:"Note body text"`
	PageTitle string `long:"page-title" description:"Title of the page"`
	Clip      bool   `long:"clip" description:"Store as a clip (content becomes the excerpt)"`

	globals *GlobalFlags
	version string
}

// NotesCommand — list all notes attributable to a page URL.
type NotesCommand struct {
	URL string `long:"url" description:"Page URL to look up (required)"`

	globals *GlobalFlags
	version string
}

// TaskCommand — create a new research task.
type TaskCommand struct {
	Title string `long:"title" description:"Task title (required)"`
	Color string `long:"color" description:"Task color hex"`

	globals *GlobalFlags
	version string
}

// TasksCommand — list tasks with details, or the most recently active ones.
type TasksCommand struct {
	Top int `long:"top" description:"Show only the N most recently active tasks" default:"0"`

	globals *GlobalFlags
	version string
}

// ServeCommand — start the Loom daemon (local HTTP service).
type ServeCommand struct {
	Host string `long:"host" description:"Override daemon host"`
	Port int    `long:"port" description:"Override daemon port"`

	globals *GlobalFlags
	version string
}
