package domain

import "path/filepath"

// Directory and file names for taskpad.
const (
	AppDirName          = "taskpad"       // Directory name under XDG config/data homes
	ConfigFileName      = "config.toml"   // Global config file name
	LocalConfigFileName = ".taskpad.toml" // Config file name in the working directory
	StoreFileName       = "tasks.json"    // JSON store file name
	LogFileName         = "taskpad.log"   // Log file name
)

// Persisted keys.
const (
	TasksKey          = "tasks"
	CompletedTasksKey = "completedTasks"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// LocalConfigPath returns the local config path for a working directory.
func LocalConfigPath(dir string) string {
	return filepath.Join(dir, LocalConfigFileName)
}

// DataDir returns the data directory.
// dataHome is typically XDG_DATA_HOME or ~/.local/share (resolved by caller).
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppDirName)
}

// StorePath returns the default JSON store path inside a data directory.
func StorePath(dataDir string) string {
	return filepath.Join(dataDir, StoreFileName)
}

// LogPath returns the log file path inside a log directory.
func LogPath(logDir string) string {
	return filepath.Join(logDir, LogFileName)
}
