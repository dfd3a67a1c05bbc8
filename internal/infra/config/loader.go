// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/taskpad/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	workDir       string // Directory searched for .taskpad.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskpad)
	explicitPath  string // --config file; replaces global and local files when set
}

// NewLoader creates a new Loader.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// NewFileLoader creates a Loader that reads only the given file on top of defaults.
func NewFileLoader(path string) *Loader {
	return &Loader{explicitPath: path}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Later sources take precedence: defaults <- global <- local.
// An explicit file is required to exist; the others are optional.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if l.explicitPath != "" {
		raw, err := readRaw(l.explicitPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", l.explicitPath, err)
		}
		base.Warnings = append(base.Warnings, applyRaw(base, raw)...)
		return base, nil
	}

	for _, path := range []string{l.globalPath(), l.localPath()} {
		if path == "" {
			continue
		}
		raw, err := readRaw(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		base.Warnings = append(base.Warnings, applyRaw(base, raw)...)
	}

	return base, nil
}

// LoadGlobal returns defaults overlaid with only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	return loadSingle(l.globalPath())
}

// LoadLocal returns defaults overlaid with only the local configuration.
func (l *Loader) LoadLocal() (*domain.Config, error) {
	return loadSingle(l.localPath())
}

func (l *Loader) globalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

func (l *Loader) localPath() string {
	if l.workDir == "" {
		return ""
	}
	return domain.LocalConfigPath(l.workDir)
}

func loadSingle(path string) (*domain.Config, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	cfg := domain.NewDefaultConfig()
	cfg.Warnings = applyRaw(cfg, raw)
	return cfg, nil
}

// readRaw parses a TOML file into a generic map.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// applyRaw overlays the keys present in raw onto cfg and returns warnings
// for unknown sections, unknown keys and values of the wrong type.
// Keys absent from raw leave cfg untouched, so booleans can be turned off.
func applyRaw(cfg *domain.Config, raw map[string]any) []string {
	var warnings []string

	for _, section := range sortedKeys(raw) {
		m, ok := raw[section].(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}

		var fields map[string]any
		switch section {
		case "store":
			fields = map[string]any{
				"backend":        &cfg.Store.Backend,
				"path":           &cfg.Store.Path,
				"repo":           &cfg.Store.Repo,
				"namespace":      &cfg.Store.Namespace,
				"encryption_key": &cfg.Store.EncryptionKey,
			}
		case "log":
			fields = map[string]any{
				"level": &cfg.Log.Level,
				"dir":   &cfg.Log.Dir,
			}
		case "export":
			fields = map[string]any{
				"default_format": &cfg.Export.DefaultFormat,
			}
		case "tui":
			fields = map[string]any{
				"show_clock":     &cfg.TUI.ShowClock,
				"confirm_delete": &cfg.TUI.ConfirmDelete,
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: [%s]", section))
			continue
		}

		for _, k := range sortedKeys(m) {
			dst, known := fields[k]
			if !known {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
				continue
			}
			if !assign(dst, m[k]) {
				warnings = append(warnings, fmt.Sprintf("invalid value for %s.%s: %v", section, k, m[k]))
			}
		}
	}

	return warnings
}

// assign stores v into dst when the types agree.
func assign(dst, v any) bool {
	switch d := dst.(type) {
	case *string:
		s, ok := v.(string)
		if ok {
			*d = s
		}
		return ok
	case *bool:
		b, ok := v.(bool)
		if ok {
			*d = b
		}
		return ok
	default:
		return false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
