package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/taskpad/internal/domain"
)

// newConfigCommand creates the config command.
// Without a subcommand it behaves like `config show`.
func newConfigCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage taskpad configuration files and settings.

Configuration is read from the global file and then ./.taskpad.toml;
later files win. --config replaces both with a single file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, s)
		},
	}

	cmd.AddCommand(newConfigShowCommand(s))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(s))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long:  `Display which config files were loaded and the final merged configuration.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd, s)
		},
	}
}

func showConfig(cmd *cobra.Command, s *session) error {
	cfg, err := s.loader().Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, "[Loaded from]")
	if s.opts.ConfigFile != "" {
		_, _ = fmt.Fprintf(w, "- %s\n", s.opts.ConfigFile)
	} else {
		m := s.manager()
		printConfigSource(w, m.GetGlobalConfigInfo())
		printConfigSource(w, m.GetLocalConfigInfo())
	}

	for _, warn := range cfg.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warn)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "[Effective config]")
	_, _ = w.Write(data)
	return nil
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the default config template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return err
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(s *session) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file from the default template",
		Long: `Create ./.taskpad.toml, or the global config file with --global.

An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := s.manager()
			cfg := domain.NewDefaultConfig()

			var path string
			var err error
			if global {
				path, err = m.InitGlobalConfig(cfg)
			} else {
				path, err = m.InitLocalConfig(cfg)
			}
			if errors.Is(err, domain.ErrConfigExists) {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "Create the global config file")

	return cmd
}
