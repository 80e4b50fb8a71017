package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"cordlink/internal/domain"
	"cordlink/internal/util/memzero"
)

const tokenFile = "token.enc"

// FileStore keeps the session token on disk, encrypted under a passphrase.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// SaveToken encrypts token with the passphrase and writes it atomically.
func (s *FileStore) SaveToken(passphrase, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := []byte(token)
	defer memzero.Zero(raw)

	N, r, p := scryptParamsDefault()
	blob, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, tokenFile), blob, 0o600)
}

// LoadToken decrypts and returns the stored token. A missing file is not an
// error; ok reports whether a token exists.
func (s *FileStore) LoadToken(passphrase string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	raw, err := decrypt(passphrase, blob)
	if err != nil {
		return "", false, err
	}
	token := string(raw)
	memzero.Zero(raw)
	return token, true, nil
}

// DeleteToken removes the stored token. Deleting a token that does not
// exist is not an error.
func (s *FileStore) DeleteToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertion that FileStore implements domain.TokenStore.
var _ domain.TokenStore = (*FileStore)(nil)
