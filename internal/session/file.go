package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	WalletID  string    `yaml:"wallet_id"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

type fileContent struct {
	Sessions map[string]fileEntry `yaml:"sessions"`
}

// FileStore keeps all sessions in one yaml file. It is safe for concurrent
// use inside one process only.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.read()
	if err != nil {
		return "", err
	}
	return content.Sessions[name].WalletID, nil
}

func (f *FileStore) Save(_ context.Context, name, walletID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.read()
	if err != nil {
		return err
	}
	content.Sessions[name] = fileEntry{WalletID: walletID, UpdatedAt: time.Now().UTC()}

	out, err := yaml.Marshal(content)
	if err != nil {
		return fmt.Errorf("%w: can't marshal sessions", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%w: can't create session dir", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return fmt.Errorf("%w: can't write session file", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: can't replace session file", err)
	}
	return nil
}

func (f *FileStore) read() (fileContent, error) {
	content := fileContent{Sessions: make(map[string]fileEntry)}

	input, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return content, nil
	}
	if err != nil {
		return content, fmt.Errorf("%w: can't read session file", err)
	}

	if err := yaml.Unmarshal(input, &content); err != nil {
		return content, fmt.Errorf("%w: can't unmarshal session file", err)
	}
	if content.Sessions == nil {
		content.Sessions = make(map[string]fileEntry)
	}
	return content, nil
}
