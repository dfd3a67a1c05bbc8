// Package jsonstore provides a JSON file-based implementation of KVStore.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"unicode/utf8"

	"github.com/runoshun/taskpad/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Values map[string]string `json:"values"`
	Meta   meta              `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

const currentVersion = 1

// ErrBinaryValue is returned when a value is not valid UTF-8 text.
var ErrBinaryValue = errors.New("value is not valid UTF-8 text")

// Ensure Store implements domain.KVStore.
var _ domain.KVStore = (*Store)(nil)

// Store implements domain.KVStore using a JSON file.
// Values are text, like browser local storage.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.withLock(func(data *storeData) error {
		v, ok := data.Values[key]
		if !ok {
			return domain.ErrKeyNotFound
		}
		value = []byte(v)
		return nil
	})
	return value, err
}

// Set stores value under key.
func (s *Store) Set(key string, value []byte) error {
	if !utf8.Valid(value) {
		return fmt.Errorf("set %q: %w", key, ErrBinaryValue)
	}
	return s.withLockWrite(func(data *storeData) error {
		data.Values[key] = string(value)
		return nil
	})
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Values, key)
		return nil
	})
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.withLock(func(data *storeData) error {
		for k := range data.Values {
			keys = append(keys, k)
		}
		return nil
	})
	slices.Sort(keys)
	return keys, err
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the store file. A missing file reads as an empty store.
func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storeData{
				Values: make(map[string]string),
				Meta:   meta{Version: currentVersion},
			}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	if data.Values == nil {
		data.Values = make(map[string]string)
	}
	if data.Meta.Version == 0 {
		data.Meta.Version = currentVersion
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
