package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkondo/taskping/internal/app"
	"github.com/mkondo/taskping/internal/domain"
	"github.com/mkondo/taskping/internal/usecase"
)

// newAddCommand creates the add command.
func newAddCommand(c *app.Container, owner *string) *cobra.Command {
	var opts struct {
		Title    string
		Due      string
		Category string
		Priority string
	}

	cmd := &cobra.Command{
		Use:     "add [text...]",
		Short:   "Add one or more tasks",
		GroupID: groupTask,
		Long: `Add tasks either from free text or from explicit flags.

Free text goes through the phrase extractor: "call mom tomorrow evening"
becomes a task due tomorrow at 19:00, and urgency words like "urgent" or
"ASAP" raise the priority.

Examples:
  taskping add pay the electricity bill tomorrow morning
  taskping add --title "Quarterly report" --due 2026-09-15T17:00:00+02:00 --priority high`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.AddTaskInput{
				OwnerID:  *owner,
				Text:     strings.Join(args, " "),
				Title:    opts.Title,
				Category: opts.Category,
				Priority: domain.Priority(opts.Priority),
			}
			if opts.Due != "" {
				due, err := time.Parse(time.RFC3339, opts.Due)
				if err != nil {
					return fmt.Errorf("parse --due (want RFC3339): %w", err)
				}
				input.DueAt = &due
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			for _, t := range out.Tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", t.ID, t.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "explicit title (bypasses the extractor)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "due instant, RFC3339")
	cmd.Flags().StringVar(&opts.Category, "category", "", "category label")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "priority: normal or high")
	return cmd
}

// newImportCommand creates the import command for bulk creation from YAML.
func newImportCommand(c *app.Container, owner *string) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "import <file>",
		Short:   "Create tasks from a YAML file",
		GroupID: groupTask,
		Long: `Create tasks from a YAML list. Each entry supports title (required),
due (RFC3339), category, priority and owner (defaults to --owner).

Example file:
  - title: Pay rent
    due: 2026-09-01T10:00:00+02:00
    category: payment
    priority: high
  - title: Water the plants`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				OwnerID: *owner,
				Path:    args[0],
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would create %d task(s)\n", len(out.Drafts))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d task(s)\n", out.Created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without creating")
	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container, owner *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List open tasks",
		GroupID: groupTask,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := usecase.ListTasksInput{OwnerID: *owner, Status: domain.StatusOpen}
			if all {
				in.Status = ""
			}
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			printTaskTable(cmd, c, out.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include done tasks")
	return cmd
}

// newTodayCommand creates the today command.
func newTodayCommand(c *app.Container, owner *string) *cobra.Command {
	return &cobra.Command{
		Use:     "today",
		Short:   "List open tasks due today",
		GroupID: groupTask,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				OwnerID:   *owner,
				Status:    domain.StatusOpen,
				TodayOnly: true,
			})
			if err != nil {
				return err
			}
			printTaskTable(cmd, c, out.Tasks)
			return nil
		},
	}
}

// newNextCommand creates the next command.
func newNextCommand(c *app.Container, owner *string) *cobra.Command {
	return &cobra.Command{
		Use:     "next",
		Short:   "Show the soonest-due open task",
		GroupID: groupTask,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.NextTaskUseCase().Execute(cmd.Context(), usecase.NextTaskInput{OwnerID: *owner})
			if err != nil {
				return err
			}
			if out.Task == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No open tasks.")
				return nil
			}
			printTaskTable(cmd, c, []*domain.Task{out.Task})
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Short:   "Mark a task as done",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{TaskID: id})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Done: #%d %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newSnoozeCommand creates the snooze command.
func newSnoozeCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "snooze <id> <hours>",
		Short:   "Shift a task's due time forward",
		GroupID: groupTask,
		Long: `Shift a task's due time by the given number of hours and re-arm its
reminders. Only tasks that already have a due time can be snoozed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			hours, err := strconv.Atoi(args[1])
			if err != nil || hours == 0 {
				return fmt.Errorf("invalid hours %q", args[1])
			}
			out, err := c.SnoozeTaskUseCase().Execute(cmd.Context(), usecase.SnoozeTaskInput{TaskID: id, DeltaHours: hours})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Snoozed: #%d now due %s\n",
				out.Task.ID, out.Task.DueAt.In(c.Location).Format(time.RFC1123))
			return nil
		},
	}
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a task",
		GroupID: groupTask,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			if _, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: id}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}

func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func printTaskTable(cmd *cobra.Command, c *app.Container, tasks []*domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDUE\tPRI\tSTATUS\tCATEGORY\tTITLE")
	for _, t := range tasks {
		due := "-"
		if t.DueAt != nil {
			due = t.DueAt.In(c.Location).Format("2006-01-02 15:04")
		}
		pri := " "
		if t.Priority == domain.PriorityHigh {
			pri = "!"
		}
		category := t.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, due, pri, t.Status.Display(), category, t.Title)
	}
	_ = w.Flush()
}
