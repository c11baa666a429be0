package synclog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no log exists for a profile.
var ErrNotFound = errors.New("sync log not found")

// Store defines persistence operations for sync logs.
type Store interface {
	// List returns the names of all profiles with a stored log, sorted.
	List(ctx context.Context) ([]string, error)
	// Get returns the log for a profile. Returns ErrNotFound if none exists.
	Get(ctx context.Context, profile string) (*Log, error)
	// Save creates or replaces the log for l.ProfileName().
	Save(ctx context.Context, l *Log) error
	// Delete removes the log for a profile. Returns ErrNotFound if none exists.
	Delete(ctx context.Context, profile string) error
}
