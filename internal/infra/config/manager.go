package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/taskpad/internal/domain"
)

// Manager manages configuration files.
type Manager struct {
	workDir       string // Directory holding .taskpad.toml
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskpad)
}

// NewManager creates a new Manager.
func NewManager(workDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(workDir, globalConfDir string) *Manager {
	return &Manager{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// GetLocalConfigInfo returns information about the local config file.
func (m *Manager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(domain.LocalConfigPath(m.workDir))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitLocalConfig writes the default template to ./.taskpad.toml.
func (m *Manager) InitLocalConfig(cfg *domain.Config) (string, error) {
	path := domain.LocalConfigPath(m.workDir)
	return path, m.initConfig(path, cfg)
}

// InitGlobalConfig writes the default template to the global config file.
func (m *Manager) InitGlobalConfig(cfg *domain.Config) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	path := filepath.Join(m.globalConfDir, domain.ConfigFileName)

	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return path, err
	}

	return path, m.initConfig(path, cfg)
}

func (m *Manager) initConfig(path string, cfg *domain.Config) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}

	content := domain.RenderConfigTemplate(cfg)

	return os.WriteFile(path, []byte(content), 0o600)
}
