package domain

import (
	"io"
	"time"
)

// KVStore is a durable, byte-oriented key-value store.
type KVStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys returns all stored keys in sorted order.
	Keys() ([]string, error)
}

// TaskPersister saves and restores the full task store state.
type TaskPersister interface {
	// Save writes the task sequence and completed counter.
	Save(tasks []Task, completed int) error

	// Load reads the persisted state. It never fails; missing or
	// corrupt data yields an empty list and zero.
	Load() ([]Task, int)
}

// Logger records diagnostic messages by category.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (defaults <- global <- local).
	Load() (*Config, error)
}

// ExportReport is the snapshot handed to a TaskExporter.
type ExportReport struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Tasks       []Task    `json:"tasks" yaml:"tasks"`
	Stats       Stats     `json:"stats" yaml:"stats"`
}

// TaskExporter renders an ExportReport in a named format.
type TaskExporter interface {
	// Export writes report to w. Unknown formats return ErrUnknownFormat.
	Export(w io.Writer, format string, report ExportReport) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
