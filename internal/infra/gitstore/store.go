// Package gitstore provides a Git plumbing-based implementation of KVStore.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskpad/internal/domain"
)

// Store implements domain.KVStore using Git plumbing (refs and blobs).
// The working tree and branches are never touched.
//
// Data structure:
//
//	refs/<namespace>/
//	  meta     → blob (store metadata, YAML)
//	  kv/
//	    <key>  → blob (raw value)
type Store struct {
	repo      *git.Repository
	namespace string
	mu        sync.RWMutex
}

// meta contains store metadata.
type meta struct {
	Version int `yaml:"version"`
}

const currentVersion = 1

// validKey restricts keys to names that are always valid ref components.
var validKey = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

// ErrInvalidKeyName is returned for keys that cannot be used as ref names.
var ErrInvalidKeyName = errors.New("invalid key name")

// Ensure Store implements domain.KVStore.
var _ domain.KVStore = (*Store)(nil)

// New opens the repository containing repoPath and returns a Store
// that keeps its data under refs/<namespace>/.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", repoPath, domain.ErrNotGitRepository)
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// keyRef returns the ref name for a key.
func (s *Store) keyRef(key string) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "kv/" + key)
}

// metaRef returns the ref name for metadata.
func (s *Store) metaRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "meta")
}

func checkKey(key string) error {
	if !validKey.MatchString(key) || strings.HasSuffix(key, ".lock") || strings.Contains(key, "..") {
		return fmt.Errorf("%q: %w", key, ErrInvalidKeyName)
	}
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.keyRef(key), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get key ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureMeta(); err != nil {
		return err
	}

	hash, err := s.writeBlob(value)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.keyRef(key), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set key ref: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Storer.RemoveReference(s.keyRef(key)); err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("remove key ref: %w", err)
		}
	}
	return nil
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := s.refPrefix() + "kv/"
	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	var keys []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if key, ok := strings.CutPrefix(name, prefix); ok && key != "" {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate refs: %w", err)
	}

	slices.Sort(keys)
	return keys, nil
}

// Version returns the store format version, or 0 if nothing was written yet.
func (s *Store) Version() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, err := s.loadMeta()
	if err != nil {
		return 0, err
	}
	if m == nil {
		return 0, nil
	}
	return m.Version, nil
}

// ensureMeta writes the metadata blob on first use. Caller holds the write lock.
func (s *Store) ensureMeta() error {
	m, err := s.loadMeta()
	if err != nil {
		return err
	}
	if m != nil {
		return nil
	}

	data, err := yaml.Marshal(&meta{Version: currentVersion})
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}
	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}
	ref := plumbing.NewHashReference(s.metaRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set meta ref: %w", err)
	}
	return nil
}

// loadMeta reads the metadata blob. Returns nil if it does not exist.
func (s *Store) loadMeta() (*meta, error) {
	ref, err := s.repo.Reference(s.metaRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get meta ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	var m meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	return &m, nil
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads the full contents of a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}
