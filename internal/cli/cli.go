package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Status *StatusCommand
	Note   *NoteCommand
	Notes  *NotesCommand
	Task   *TaskCommand
	Tasks  *TasksCommand
	Serve  *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "loom"
	parser.LongDescription = "Local research workspace capture for fabric: tasks, tabs, and notes."

	cmds := &commands{
		Status: &StatusCommand{globals: &globals, version: version},
		Note:   &NoteCommand{globals: &globals, version: version},
		Notes:  &NotesCommand{globals: &globals, version: version},
		Task:   &TaskCommand{globals: &globals, version: version},
		Tasks:  &TasksCommand{globals: &globals, version: version},
		Serve:  &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("status", "Show workspace statistics", "Show record counts per collection and database information.", cmds.Status)
	parser.AddCommand("note", "Capture a note", "Capture a note for a page URL with best-effort task attribution.", cmds.Note)
	parser.AddCommand("notes", "List notes for a page", "List all notes attributable to a page URL.", cmds.Notes)
	parser.AddCommand("task", "Create a research task", "Create a new research task.", cmds.Task)
	parser.AddCommand("tasks", "List tasks", "List tasks with their subtasks and tabs, or the most recently active ones.", cmds.Tasks)
	parser.AddCommand("serve", "Start the Loom daemon", "Start the Loom daemon (local HTTP service the extension talks to).", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the Loom CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("loom %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
