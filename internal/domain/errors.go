package domain

import "errors"

// Domain errors.
var (
	ErrKeyNotFound      = errors.New("key not found")
	ErrInvalidID        = errors.New("invalid task id")
	ErrUnknownBackend   = errors.New("unknown store backend")
	ErrUnknownFormat    = errors.New("unknown export format")
	ErrUnknownFilter    = errors.New("unknown task filter")
	ErrConfigExists     = errors.New("config file already exists")
	ErrInvalidKey       = errors.New("invalid encryption key: must be 32 bytes (64 hex characters)")
	ErrDecryptFailed    = errors.New("decryption failed: invalid ciphertext or key")
	ErrNotGitRepository = errors.New("not a git repository")
)
