package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpad/internal/domain"
	"github.com/runoshun/taskpad/internal/usecase"
)

// warnNotSaved tells the user that the change only lives in memory.
func warnNotSaved(cmd *cobra.Command) {
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: change was not saved; see the log for details")
}

func newAddCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Long: `Add a task with the given text.

All arguments are joined with spaces. Leading and trailing whitespace is
trimmed; blank text adds nothing.

Examples:
  taskpad add buy milk
  taskpad add "call the plumber"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				Text: strings.Join(args, " "),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Added {
				_, _ = fmt.Fprintln(w, "Nothing added: task text is empty")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Added task #%d: %s\n", out.Task.ID, out.Task.Text)
			_, _ = fmt.Fprintln(w, out.Stats)
			if !out.Persisted {
				warnNotSaved(cmd)
			}
			return nil
		},
	}
	return cmd
}

func newToggleCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task done, or not done again",
		Long: `Flip the completion flag of a task.

Examples:
  taskpad toggle 3
  taskpad done "#3"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Found {
				_, _ = fmt.Fprintf(w, "No task #%d\n", taskID)
				return nil
			}
			verb := "Reopened"
			if out.Task.Completed {
				verb = "Completed"
			}
			_, _ = fmt.Fprintf(w, "%s task #%d: %s\n", verb, out.Task.ID, out.Task.Text)
			_, _ = fmt.Fprintln(w, out.Stats)
			if !out.Persisted {
				warnNotSaved(cmd)
			}
			return nil
		},
	}
	return cmd
}

func newRmCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task.

Examples:
  # Delete task by ID
  taskpad rm 1

  # Delete task using # prefix
  taskpad rm "#1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := domain.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: taskID})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !out.Found {
				_, _ = fmt.Fprintf(w, "No task #%d\n", taskID)
				return nil
			}
			_, _ = fmt.Fprintf(w, "Deleted task #%d: %s\n", out.Task.ID, out.Task.Text)
			_, _ = fmt.Fprintln(w, out.Stats)
			if !out.Persisted {
				warnNotSaved(cmd)
			}
			return nil
		},
	}
	return cmd
}

func newClearCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.ClearCompletedUseCase().Execute(cmd.Context(), usecase.ClearCompletedInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Removed == 0 {
				_, _ = fmt.Fprintln(w, "No completed tasks")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Cleared %d completed %s\n", out.Removed, plural(out.Removed, "task", "tasks"))
			_, _ = fmt.Fprintln(w, out.Stats)
			if !out.Persisted {
				warnNotSaved(cmd)
			}
			return nil
		},
	}
	return cmd
}

// filterFromFlags maps --active/--completed to a ListTasks filter.
func filterFromFlags(active, completed bool) (string, error) {
	switch {
	case active && completed:
		return "", errors.New("--active and --completed are mutually exclusive")
	case active:
		return usecase.FilterActive, nil
	case completed:
		return usecase.FilterCompleted, nil
	default:
		return usecase.FilterAll, nil
	}
}

func newListCommand(s *session) *cobra.Command {
	var opts struct {
		Active    bool
		Completed bool
		JSON      bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display tasks in the order they were added, followed by the stats line.

Stats always cover every task, not just the filtered ones.

Examples:
  taskpad list
  taskpad list --active
  taskpad list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := filterFromFlags(opts.Active, opts.Completed)
			if err != nil {
				return err
			}
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Filter: filter})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printTaskListJSON(cmd.OutOrStdout(), out.Tasks, out.Stats)
			}
			printTaskList(cmd.OutOrStdout(), out.Tasks, out.Stats)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Active, "active", "a", false, "Show only tasks not yet done")
	cmd.Flags().BoolVarP(&opts.Completed, "completed", "c", false, "Show only completed tasks")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

func printTaskList(w io.Writer, tasks []domain.Task, stats domain.Stats) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tDONE\tTEXT")
		for _, t := range tasks {
			done := "[ ]"
			if t.Completed {
				done = "[x]"
			}
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, done, t.Text)
		}
		_ = tw.Flush()
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", stats)
}

func printTaskListJSON(w io.Writer, tasks []domain.Task, stats domain.Stats) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Tasks []domain.Task `json:"tasks"`
		Stats domain.Stats  `json:"stats"`
	}{Tasks: tasks, Stats: stats})
}

func newStatsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			out, err := c.ShowStatsUseCase().Execute(cmd.Context(), usecase.ShowStatsInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Total:        %d\n", out.Stats.Total)
			_, _ = fmt.Fprintf(w, "Completed:    %d\n", out.Stats.Completed)
			_, _ = fmt.Fprintf(w, "Active:       %d\n", out.Stats.Active())
			_, _ = fmt.Fprintf(w, "Productivity: %d%%\n", out.Stats.Productivity)
			return nil
		},
	}
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
