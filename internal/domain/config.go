package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Store    StoreConfig  `toml:"store"`
	Log      LogConfig    `toml:"log"`
	Export   ExportConfig `toml:"export"`
	TUI      TUIConfig    `toml:"tui"`
}

// StoreConfig holds settings for the durable key-value store from [store] section.
type StoreConfig struct {
	Backend       string `toml:"backend,omitempty"`        // "json" (default), "git" or "memory"
	Path          string `toml:"path,omitempty"`           // JSON store file (default: <data dir>/tasks.json)
	Repo          string `toml:"repo,omitempty"`           // Git repository for the git backend (default: ".")
	Namespace     string `toml:"namespace,omitempty"`      // Ref namespace for the git backend (default: "taskpad")
	EncryptionKey string `toml:"encryption_key,omitempty"` // 64 hex chars enables AES-256-GCM at rest
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
	Dir   string `toml:"dir,omitempty"`   // Log directory (default: <data dir>/logs)
}

// ExportConfig holds settings for the export command from [export] section.
type ExportConfig struct {
	DefaultFormat string `toml:"default_format,omitempty"` // json, yaml, csv, md, pdf
}

// TUIConfig holds terminal UI settings from [tui] section.
type TUIConfig struct {
	ShowClock     bool `toml:"show_clock"`     // Show the ticking date/time header
	ConfirmDelete bool `toml:"confirm_delete"` // Ask before deleting a task
}

// Store backends.
const (
	BackendJSON   = "json"
	BackendGit    = "git"
	BackendMemory = "memory"
)

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultNamespace     = "taskpad"
	DefaultExportFormat  = "md"
	DefaultStoreBackend  = BackendJSON
	DefaultGitRepository = "."
)

// NewDefaultConfig returns a new Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   DefaultStoreBackend,
			Repo:      DefaultGitRepository,
			Namespace: DefaultNamespace,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Export: ExportConfig{
			DefaultFormat: DefaultExportFormat,
		},
		TUI: TUIConfig{
			ShowClock:     true,
			ConfirmDelete: true,
		},
	}
}

// RenderConfigTemplate renders the commented config template with cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to render config template: %v", err))
	}
	return buf.String()
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
