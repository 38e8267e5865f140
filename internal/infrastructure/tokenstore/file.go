package tokenstore

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

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// sessionFile is the on-disk shape of ~/.botaxxx/session.yaml.
type sessionFile struct {
	Sessions map[string]sessionEntry `yaml:"sessions"`
}

type sessionEntry struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved-at"`
}

// DefaultDir returns ~/.botaxxx.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".botaxxx")
}

// DefaultPath returns ~/.botaxxx/session.yaml.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "session.yaml")
}

// FileProvider persists credentials in a YAML file keyed by scope, normally
// the backend origin.
type FileProvider struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

var _ ports.TokenStoreProvider = (*FileProvider)(nil)

// NewFileProvider uses path, or DefaultPath when path is empty.
func NewFileProvider(path string) *FileProvider {
	if path == "" {
		path = DefaultPath()
	}
	return &FileProvider{path: path, now: time.Now}
}

// Path returns the backing file.
func (p *FileProvider) Path() string { return p.path }

func (p *FileProvider) For(scope string) ports.TokenStore {
	return &fileStore{p: p, scope: scope}
}

func (p *FileProvider) load() (*sessionFile, error) {
	f := &sessionFile{Sessions: map[string]sessionEntry{}}
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if f.Sessions == nil {
		f.Sessions = map[string]sessionEntry{}
	}
	return f, nil
}

// save writes through a temp file and rename so a crash never leaves a
// truncated file behind.
func (p *FileProvider) save(f *sessionFile) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal session file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

type fileStore struct {
	p     *FileProvider
	scope string
}

func (s *fileStore) Get(context.Context) (domain.Credential, bool, error) {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	f, err := s.p.load()
	if err != nil {
		return "", false, err
	}
	e, ok := f.Sessions[s.scope]
	if !ok || e.Token == "" {
		return "", false, nil
	}
	return domain.Credential(e.Token), true, nil
}

func (s *fileStore) Set(_ context.Context, cred domain.Credential) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	f, err := s.p.load()
	if err != nil {
		return err
	}
	f.Sessions[s.scope] = sessionEntry{Token: string(cred), SavedAt: s.p.now().UTC()}
	return s.p.save(f)
}

func (s *fileStore) Clear(context.Context) error {
	s.p.mu.Lock()
	defer s.p.mu.Unlock()

	f, err := s.p.load()
	if err != nil {
		return err
	}
	if _, ok := f.Sessions[s.scope]; !ok {
		return nil
	}
	delete(f.Sessions, s.scope)
	return s.p.save(f)
}
