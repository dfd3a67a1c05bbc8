// Package crypto provides at-rest encryption for key-value stores.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/taskpad/internal/domain"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
)

// envelopePrefix marks encrypted values. Values without it are plaintext
// written before encryption was enabled.
var envelopePrefix = []byte("enc:v1:")

// ErrCiphertextTooShort is returned when the ciphertext is too short.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Encryptor handles AES-256-GCM encryption.
type Encryptor struct {
	gcm cipher.AEAD
}

// NewEncryptor creates a new Encryptor with the given hex-encoded key.
// The key must be 64 hex characters (32 bytes).
func NewEncryptor(hexKey string) (*Encryptor, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil || len(key) != KeySize {
		return nil, domain.ErrInvalidKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{gcm: gcm}, nil
}

// Encrypt encrypts plaintext bound to additional data ad.
// Returns: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Encrypt(plaintext, ad []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return e.gcm.Seal(nonce, nonce, plaintext, ad), nil
}

// Decrypt reverses Encrypt. ad must match the value used to encrypt.
func (e *Encryptor) Decrypt(ciphertext, ad []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := ciphertext[:NonceSize]
	encrypted := ciphertext[NonceSize:]

	plaintext, err := e.gcm.Open(nil, nonce, encrypted, ad)
	if err != nil {
		return nil, domain.ErrDecryptFailed
	}
	return plaintext, nil
}

// Ensure Store implements domain.KVStore.
var _ domain.KVStore = (*Store)(nil)

// Store encrypts values before handing them to an inner KVStore.
// Ciphertext is base64 text so text-only backends can hold it.
// Each value is bound to its key, so values cannot be swapped between keys.
type Store struct {
	inner domain.KVStore
	enc   *Encryptor
}

// NewStore wraps inner with encryption using the hex-encoded key.
func NewStore(inner domain.KVStore, hexKey string) (*Store, error) {
	enc, err := NewEncryptor(hexKey)
	if err != nil {
		return nil, err
	}
	return &Store{inner: inner, enc: enc}, nil
}

// Get returns the decrypted value stored under key.
// Plaintext values written before encryption was enabled are returned as-is.
func (s *Store) Get(key string) ([]byte, error) {
	raw, err := s.inner.Get(key)
	if err != nil {
		return nil, err
	}

	encoded, ok := bytes.CutPrefix(raw, envelopePrefix)
	if !ok {
		return raw, nil
	}

	ciphertext, err := base64.StdEncoding.DecodeString(string(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, domain.ErrDecryptFailed)
	}
	plaintext, err := s.enc.Decrypt(ciphertext, []byte(key))
	if err != nil {
		return nil, fmt.Errorf("decrypt %q: %w", key, err)
	}
	return plaintext, nil
}

// Set encrypts value and stores it under key.
func (s *Store) Set(key string, value []byte) error {
	ciphertext, err := s.enc.Encrypt(value, []byte(key))
	if err != nil {
		return fmt.Errorf("encrypt %q: %w", key, err)
	}
	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	return s.inner.Set(key, append(bytes.Clone(envelopePrefix), encoded...))
}

// Delete removes key from the inner store.
func (s *Store) Delete(key string) error {
	return s.inner.Delete(key)
}

// Keys returns the inner store's keys; keys are not encrypted.
func (s *Store) Keys() ([]string, error) {
	return s.inner.Keys()
}
