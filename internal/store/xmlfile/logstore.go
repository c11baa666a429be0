// Package xmlfile provides an XML file-based sync log store.
package xmlfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/core/validate"
)

const ext = ".xml"

// LogStore implements synclog.Store with one XML document per profile.
type LogStore struct {
	dir string
	mu  sync.RWMutex
}

// NewLogStore creates a new store keeping its files in dir.
func NewLogStore(dir string) *LogStore {
	return &LogStore{dir: dir}
}

// List returns the names of all profiles with a stored log, sorted.
func (s *LogStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read logs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ext))
	}
	slices.Sort(names)

	return names, nil
}

// Get returns the log for a profile. Returns ErrNotFound if none exists.
func (s *LogStore) Get(ctx context.Context, profile string) (*synclog.Log, error) {
	l, err := s.load(profile)
	if err != nil {
		return nil, err
	}

	// The file name is authoritative.
	l.SetProfileName(profile)
	return l, nil
}

// StoredName returns the profile name recorded inside the profile's file,
// which differs from profile when the file was renamed or copied by hand.
func (s *LogStore) StoredName(ctx context.Context, profile string) (string, error) {
	l, err := s.load(profile)
	if err != nil {
		return "", err
	}
	return l.ProfileName(), nil
}

func (s *LogStore) load(profile string) (*synclog.Log, error) {
	path, err := s.path(profile)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, synclog.ErrNotFound
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	l, err := synclog.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("log file %s corrupted (run 'synclog clear %s' to reset): %w", path, profile, err)
	}
	return l, nil
}

// Save writes the log to disk atomically.
func (s *LogStore) Save(ctx context.Context, l *synclog.Log) error {
	path, err := s.path(l.ProfileName())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		return fmt.Errorf("marshal log: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write log temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename log file: %w", err)
	}

	return nil
}

// Delete removes the log for a profile. Returns ErrNotFound if none exists.
func (s *LogStore) Delete(ctx context.Context, profile string) error {
	path, err := s.path(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return synclog.ErrNotFound
		}
		return fmt.Errorf("remove log file: %w", err)
	}
	return nil
}

func (s *LogStore) path(profile string) (string, error) {
	if err := validate.ProfileName(profile); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, profile+ext), nil
}
