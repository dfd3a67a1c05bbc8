package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpad/internal/infra/export"
	"github.com/runoshun/taskpad/internal/usecase"
)

func newExportCommand(s *session) *cobra.Command {
	var opts struct {
		Format    string
		Output    string
		Active    bool
		Completed bool
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks and stats",
		Long: fmt.Sprintf(`Write the task list and its stats in another format.

Formats: %s. The default comes from [export] default_format.
Without --output the report is written to stdout.

Examples:
  taskpad export --format csv
  taskpad export -f pdf -o tasks.pdf
  taskpad export -f yaml --completed`, strings.Join(export.Formats, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			filter, err := filterFromFlags(opts.Active, opts.Completed)
			if err != nil {
				return err
			}
			c, err := s.open(cmd)
			if err != nil {
				return err
			}

			format := opts.Format
			if format == "" {
				format = c.AppConfig.Export.DefaultFormat
			}
			format, err = export.NormalizeFormat(format)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if opts.Output != "" {
				f, err := os.Create(opts.Output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() {
					if cerr := f.Close(); cerr != nil && err == nil {
						err = fmt.Errorf("close output file: %w", cerr)
					}
				}()
				w = f
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{
				Writer: w,
				Format: format,
				Filter: filter,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s (%s)\n",
					out.Count, plural(out.Count, "task", "tasks"), opts.Output, out.Format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format ("+strings.Join(export.Formats, ", ")+")")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Active, "active", "a", false, "Export only tasks not yet done")
	cmd.Flags().BoolVarP(&opts.Completed, "completed", "c", false, "Export only completed tasks")

	return cmd
}
