// Package recorder records sync results into persisted per-profile logs.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/hay-kot/synclog/internal/core/config"
	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/core/validate"
	"github.com/hay-kot/synclog/pkg/executil"
)

// Service orchestrates reads and writes of sync logs.
//
// synclog.Log is not safe for concurrent use, so every read-modify-write of a
// stored log happens under mu.
type Service struct {
	logs       synclog.Store
	config     *config.Config
	log        zerolog.Logger
	hookRunner *HookRunner

	mu sync.Mutex
}

// New creates a new Service.
func New(
	logs synclog.Store,
	cfg *config.Config,
	exec executil.Executor,
	log zerolog.Logger,
	stdout, stderr io.Writer,
) *Service {
	return &Service{
		logs:       logs,
		config:     cfg,
		log:        log,
		hookRunner: NewHookRunner(log.With().Str("component", "hooks").Logger(), exec, cfg.Display.TimeFormat, stdout, stderr),
	}
}

// Record appends r to the profile's log, creating the log if needed, and
// runs matching hooks once the log is saved.
func (s *Service) Record(ctx context.Context, profile string, r results.Result) (*synclog.Log, error) {
	if err := validate.ProfileName(profile); err != nil {
		return nil, err
	}

	l, err := s.record(ctx, profile, r)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("profile", profile).
		Stringer("major", r.Major).
		Stringer("minor", r.Minor).
		Bool("successful", synclog.IsSuccessful(r)).
		Int("entries", l.Len()).
		Msg("recorded sync result")

	if err := s.hookRunner.RunHooks(ctx, s.config.Hooks, profile, r); err != nil {
		return l, fmt.Errorf("run hooks: %w", err)
	}

	return l, nil
}

func (s *Service) record(ctx context.Context, profile string, r results.Result) (*synclog.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.logs.Get(ctx, profile)
	switch {
	case errors.Is(err, synclog.ErrNotFound):
		s.log.Debug().Str("profile", profile).Msg("creating sync log")
		l = synclog.New(profile)
	case err != nil:
		return nil, fmt.Errorf("load log: %w", err)
	}

	if l.Len() == synclog.MaxEntries {
		oldest := l.All()[0]
		s.log.Debug().
			Str("profile", profile).
			Time("sync_time", oldest.SyncTime).
			Msg("evicting oldest result")
	}

	l.Record(r)

	if err := s.logs.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save log: %w", err)
	}

	return l.Clone(), nil
}

// Log returns the stored log for a profile.
func (s *Service) Log(ctx context.Context, profile string) (*synclog.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logs.Get(ctx, profile)
}

// Logs returns the logs of every profile matching the glob pattern, sorted by
// profile name. An empty pattern matches all profiles.
func (s *Service) Logs(ctx context.Context, pattern string) ([]*synclog.Log, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := s.logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	out := make([]*synclog.Log, 0, len(names))
	for _, name := range names {
		matched, err := matchPattern(pattern, name)
		if err != nil {
			return nil, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if !matched {
			continue
		}

		l, err := s.logs.Get(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load log %q: %w", name, err)
		}
		out = append(out, l)
	}

	return out, nil
}

// Export writes the profile's log document to w.
func (s *Service) Export(ctx context.Context, profile string, w io.Writer) error {
	l, err := s.Log(ctx, profile)
	if err != nil {
		return err
	}
	return l.Encode(w)
}

// Import reads a log document from r and stores it, replacing any existing
// log of the same profile. A non-empty profile overrides the document's name.
func (s *Service) Import(ctx context.Context, r io.Reader, profile string) (*synclog.Log, error) {
	l, err := synclog.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}

	if profile != "" {
		l.SetProfileName(profile)
	}
	if err := validate.ProfileName(l.ProfileName()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logs.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("save log: %w", err)
	}

	s.log.Info().
		Str("profile", l.ProfileName()).
		Int("entries", l.Len()).
		Msg("imported sync log")

	return l, nil
}

// Clear deletes the profile's log.
func (s *Service) Clear(ctx context.Context, profile string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.logs.Delete(ctx, profile); err != nil {
		return err
	}

	s.log.Info().Str("profile", profile).Msg("cleared sync log")
	return nil
}
