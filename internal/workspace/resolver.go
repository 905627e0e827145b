package workspace

// Attribution is the resolved (tab, subtask, task) association for a note.
// Any field may be empty: resolution is best-effort and a miss is a normal
// outcome, never an error.
type Attribution struct {
	TabID     string
	SubtaskID string
	TaskID    string
}

// resolveContext determines which tab, subtask, and task a captured note
// belongs to, given full collection snapshots. Ordered fallback chain, first
// match wins at each stage:
//
//  1. direct match: a tab whose normalized URL equals the note's;
//  2. provenance: a tab whose provenance sourceUrl normalizes to the note's
//     URL (the note was captured on a page a tracked tab navigated from);
//  3. inherit subtask and task from the matched tab;
//  4. no tab: the task with the greatest lastActiveAt, ties by iteration
//     order;
//  5. task but no subtask: the first subtask belonging to that task.
func resolveContext(pageURL string, tabs []Tab, subtasks []Subtask, tasks []Task) Attribution {
	normalized := NormalizeURL(pageURL)

	var matched *Tab
	for i := range tabs {
		if tabs[i].URL != "" && NormalizeURL(tabs[i].URL) == normalized {
			matched = &tabs[i]
			break
		}
	}
	if matched == nil {
		for i := range tabs {
			p := tabs[i].Provenance
			if p != nil && p.SourceURL != "" && NormalizeURL(p.SourceURL) == normalized {
				matched = &tabs[i]
				break
			}
		}
	}

	var attr Attribution
	if matched != nil {
		attr.TabID = matched.ID
		attr.SubtaskID = matched.SubtaskID
		attr.TaskID = matched.TaskID
	}

	if attr.TaskID == "" {
		var recent *Task
		for i := range tasks {
			if recent == nil || tasks[i].LastActiveAt > recent.LastActiveAt {
				recent = &tasks[i]
			}
		}
		if recent != nil {
			attr.TaskID = recent.ID
		}
	}

	if attr.SubtaskID == "" && attr.TaskID != "" {
		for i := range subtasks {
			if subtasks[i].TaskID == attr.TaskID {
				attr.SubtaskID = subtasks[i].ID
				break
			}
		}
	}

	return attr
}
