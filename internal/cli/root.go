// Package cli provides the command-line interface for taskping.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mkondo/taskping/internal/app"
)

// Command group IDs.
const (
	groupTask  = "task"
	groupServe = "serve"
)

// NewRootCommand creates the root command for taskping.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var owner string

	root := &cobra.Command{
		Use:   "taskping",
		Short: "Personal task reminder service",
		Long: `taskping tracks your tasks and pings you when they are due.

Tasks can carry a due instant; open tasks get a reminder in the minute
they fall due, high priority ones an extra heads-up 30 minutes before,
and every morning a digest lists what the day holds. Run 'taskping serve'
to keep the reminder engine going.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&owner, "owner", defaultOwner(), "owner id scoping all task operations")

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupServe, Title: "Service Commands:"},
	)

	root.AddCommand(
		newAddCommand(c, &owner),
		newImportCommand(c, &owner),
		newListCommand(c, &owner),
		newTodayCommand(c, &owner),
		newNextCommand(c, &owner),
		newDoneCommand(c),
		newSnoozeCommand(c),
		newDeleteCommand(c),
		newServeCommand(c),
		newTokenCommand(c),
	)

	return root
}

func defaultOwner() string {
	if owner := os.Getenv("TASKPING_OWNER"); owner != "" {
		return owner
	}
	return "local"
}
