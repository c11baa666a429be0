// Package synclog keeps a bounded history of sync results for one profile,
// along with the latest successful result ever recorded.
package synclog

import (
	"slices"

	"github.com/hay-kot/synclog/internal/core/results"
)

// MaxEntries is the number of results retained in a log.
const MaxEntries = 5

// IsSuccessful reports whether r counts as a successful sync: major code
// success, minor code no-error and a set sync time.
func IsSuccessful(r results.Result) bool {
	return r.Major == results.MajorSuccess &&
		r.Minor == results.MinorNoError &&
		r.HasSyncTime()
}

// Log is the sync history of a single profile.
//
// Results must be recorded in chronological order; the log never re-sorts
// and treats the first retained entry as the oldest. A Log is not safe for
// concurrent use.
type Log struct {
	profile        string
	results        []results.Result
	lastSuccessful *results.Result
}

// New creates an empty log for the given profile.
func New(profile string) *Log {
	return &Log{profile: profile}
}

// ProfileName returns the name of the profile this log belongs to.
func (l *Log) ProfileName() string {
	return l.profile
}

// SetProfileName renames the log.
func (l *Log) SetProfileName(name string) {
	l.profile = name
}

// Record appends r to the log, evicting the oldest entry once MaxEntries is
// reached, and updates the last successful result.
func (l *Log) Record(r results.Result) {
	if len(l.results) >= MaxEntries {
		l.results = slices.Delete(l.results, 0, len(l.results)-MaxEntries+1)
	}
	l.results = append(l.results, r.Clone())

	if IsSuccessful(r) && (l.lastSuccessful == nil || l.lastSuccessful.Less(r)) {
		c := r.Clone()
		l.lastSuccessful = &c
	}
}

// Last returns the most recently recorded result.
func (l *Log) Last() (results.Result, bool) {
	if len(l.results) == 0 {
		return results.Result{}, false
	}
	return l.results[len(l.results)-1].Clone(), true
}

// All returns the retained results, oldest first.
func (l *Log) All() []results.Result {
	out := make([]results.Result, len(l.results))
	for i, r := range l.results {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of retained results.
func (l *Log) Len() int {
	return len(l.results)
}

// LastSuccessful returns the latest successful result ever recorded, even if
// it has since been evicted from the retained results.
func (l *Log) LastSuccessful() (results.Result, bool) {
	if l.lastSuccessful == nil {
		return results.Result{}, false
	}
	return l.lastSuccessful.Clone(), true
}

// Clone returns an independent deep copy of the log.
func (l *Log) Clone() *Log {
	c := &Log{profile: l.profile}
	if l.results != nil {
		c.results = l.All()
	}
	if l.lastSuccessful != nil {
		r := l.lastSuccessful.Clone()
		c.lastSuccessful = &r
	}
	return c
}

// summaryNeeded reports whether the last successful result would be lost if
// only the retained results were written out.
func (l *Log) summaryNeeded() bool {
	if l.lastSuccessful == nil {
		return false
	}
	return len(l.results) == 0 || l.lastSuccessful.Less(l.results[0])
}
