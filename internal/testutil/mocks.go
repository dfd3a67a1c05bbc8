// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/taskpad/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockKVStore is a test double for domain.KVStore with error injection.
// Fields are ordered to minimize memory padding.
type MockKVStore struct {
	Data      map[string][]byte
	GetErr    error
	SetErr    error
	DeleteErr error
	KeysErr   error
	SetCalls  int
}

// NewMockKVStore creates a new MockKVStore with an initialized map.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{Data: make(map[string][]byte)}
}

// Get returns the stored value or domain.ErrKeyNotFound.
func (m *MockKVStore) Get(key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.Data[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

// Set stores value under key.
func (m *MockKVStore) Set(key string, value []byte) error {
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (m *MockKVStore) Delete(key string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Data, key)
	return nil
}

// Keys returns all keys in sorted order.
func (m *MockKVStore) Keys() ([]string, error) {
	if m.KeysErr != nil {
		return nil, m.KeysErr
	}
	keys := make([]string, 0, len(m.Data))
	for k := range m.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// String renders the entry as "LEVEL [category] msg".
func (e LogEntry) String() string {
	return fmt.Sprintf("%s [%s] %s", e.Level, e.Category, e.Msg)
}

// MockLogger is a test double for domain.Logger that records messages.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Info records an info message.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error message.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// ByLevel returns the recorded entries with the given level.
func (m *MockLogger) ByLevel(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// Load returns the configured config, or defaults when none is set.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}
