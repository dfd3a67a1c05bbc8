// Package cli provides the command-line interface for taskpad.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskpad/internal/app"
	"github.com/runoshun/taskpad/internal/infra/config"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// ContainerFactory builds the application container once global flags are known.
type ContainerFactory func(opts app.Options) (*app.Container, error)

// session builds the container on first use and reports config warnings once.
type session struct {
	factory       ContainerFactory
	c             *app.Container
	globalConfDir string // Global config directory used by the config command
	opts          app.Options
	warned        bool
}

// open returns the container, building it if needed.
func (s *session) open(cmd *cobra.Command) (*app.Container, error) {
	if s.c == nil {
		c, err := s.factory(s.opts)
		if err != nil {
			return nil, fmt.Errorf("initialize: %w", err)
		}
		s.c = c
	}
	if !s.warned {
		s.warned = true
		for _, w := range s.c.AppConfig.Warnings {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
		}
	}
	return s.c, nil
}

// loader returns a config loader honoring --config.
func (s *session) loader() *config.Loader {
	if s.opts.ConfigFile != "" {
		return config.NewFileLoader(s.opts.ConfigFile)
	}
	return config.NewLoaderWithGlobalDir(s.opts.WorkDir, s.globalConfDir)
}

func (s *session) manager() *config.Manager {
	return config.NewManagerWithGlobalDir(s.opts.WorkDir, s.globalConfDir)
}

// close releases the container. It is safe to call more than once.
func (s *session) close() error {
	if s.c == nil {
		return nil
	}
	c := s.c
	s.c = nil
	return c.Close()
}

// Run executes taskpad with args and releases the container afterwards,
// including when the command fails.
func Run(factory ContainerFactory, version string, args []string, stdout, stderr io.Writer) error {
	s := newSession(factory)
	return execute(s, newRootCommand(s, version), args, stdout, stderr)
}

func newSession(factory ContainerFactory) *session {
	s := &session{
		factory:       factory,
		globalConfDir: config.DefaultGlobalConfigDir(),
	}
	if wd, err := os.Getwd(); err == nil {
		s.opts.WorkDir = wd
	}
	return s
}

// execute runs root and closes the session even when RunE fails, since
// cobra skips PersistentPostRunE in that case.
func execute(s *session, root *cobra.Command, args []string, stdout, stderr io.Writer) (err error) {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	return root.Execute()
}

func newRootCommand(s *session, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskpad",
		Short: "A small task list with live stats",
		Long: `taskpad keeps a list of short tasks, lets you mark them done or delete
them, and shows how many are complete along with a productivity percentage.

Run without arguments to open the interactive TUI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd)
			if err != nil {
				return err
			}
			return launchTUIFunc(c)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return s.close()
		},
	}

	root.PersistentFlags().BoolVar(&s.opts.Ephemeral, "ephemeral", false, "Keep tasks in memory only for this run")
	root.PersistentFlags().StringVar(&s.opts.ConfigFile, "config", "", "Read configuration from this file only")

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	configCmd := newConfigCommand(s)
	configCmd.GroupID = groupSetup

	addCmd := newAddCommand(s)
	addCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(s)
	toggleCmd.GroupID = groupTask

	rmCmd := newRmCommand(s)
	rmCmd.GroupID = groupTask

	clearCmd := newClearCommand(s)
	clearCmd.GroupID = groupTask

	listCmd := newListCommand(s)
	listCmd.GroupID = groupTask

	statsCmd := newStatsCommand(s)
	statsCmd.GroupID = groupTask

	exportCmd := newExportCommand(s)
	exportCmd.GroupID = groupTask

	tuiCmd := newTUICommand(s)
	tuiCmd.GroupID = groupTask

	root.AddCommand(
		configCmd,
		addCmd,
		toggleCmd,
		rmCmd,
		clearCmd,
		listCmd,
		statsCmd,
		exportCmd,
		tuiCmd,
	)

	return root
}
