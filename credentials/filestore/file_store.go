package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-student-jobs/credentials"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/rs/zerolog"
)

var _ credentials.Store = (*FileStore)(nil)

// FileStore persists the two tokens as a small JSON object of string keys. The
// file is re-read on every access so separate processes (for instance two CLI
// invocations) observe each other's logins and logouts.
type FileStore struct {
	path   string
	logger zerolog.Logger
	lock   sync.RWMutex
}

type Option func(*FileStore)

func WithLogger(logger zerolog.Logger) Option {
	return func(fs *FileStore) {
		fs.logger = logger
	}
}

func New(path string, opts ...Option) *FileStore {
	fs := &FileStore{
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) GetAccessToken() *string {
	return fs.get(credentials.AccessTokenKey)
}

func (fs *FileStore) GetRefreshToken() *string {
	return fs.get(credentials.RefreshTokenKey)
}

func (fs *FileStore) SetTokens(access string, refresh *string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	values, err := fs.load()
	if err != nil {
		// An unreadable file is replaced rather than blocking a fresh login.
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("discarding unreadable credentials file")
		values = map[string]string{}
	}

	cred := toCredential(values)
	cred.Set(access, refresh)
	return fs.save(fromCredential(cred))
}

func (fs *FileStore) ClearTokens() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

func (fs *FileStore) IsAuthenticated() bool {
	return utils.IsSet(fs.GetAccessToken())
}

func (fs *FileStore) get(key string) *string {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	values, err := fs.load()
	if err != nil {
		fs.logger.Warn().Err(err).Str("path", fs.path).Msg("failed to read credentials file")
		return nil
	}
	return utils.NonEmpty(values[key])
}

func (fs *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode credentials file: %w", err)
	}
	return values, nil
}

// save writes values with the rename-swap pattern: temp file, fsync, rename.
// A crash mid-write leaves either the old or the new file, never a torn one.
func (fs *FileStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tempPath := fmt.Sprintf("%s.tmp.%s", fs.path, uuid.New().String())
	tempFile, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	cleanupTemp := true
	defer func() {
		if cleanupTemp {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, fs.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	cleanupTemp = false
	return nil
}

func toCredential(values map[string]string) credentials.Credential {
	return credentials.Credential{
		AccessToken:  utils.NonEmpty(values[credentials.AccessTokenKey]),
		RefreshToken: utils.NonEmpty(values[credentials.RefreshTokenKey]),
	}
}

func fromCredential(cred credentials.Credential) map[string]string {
	values := map[string]string{}
	if utils.IsSet(cred.AccessToken) {
		values[credentials.AccessTokenKey] = *cred.AccessToken
	}
	if utils.IsSet(cred.RefreshToken) {
		values[credentials.RefreshTokenKey] = *cred.RefreshToken
	}
	return values
}
