// Package results defines the outcome record of a single synchronization attempt.
package results

import (
	"fmt"
	"strings"
	"time"
)

// MajorCode is the overall outcome of a sync attempt.
type MajorCode int

const (
	MajorInvalid   MajorCode = -1
	MajorSuccess   MajorCode = 0
	MajorFailed    MajorCode = 1
	MajorCancelled MajorCode = 2
)

var majorNames = map[MajorCode]string{
	MajorInvalid:   "invalid",
	MajorSuccess:   "success",
	MajorFailed:    "failed",
	MajorCancelled: "cancelled",
}

func (c MajorCode) String() string {
	if s, ok := majorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("major(%d)", int(c))
}

// ParseMajorCode parses a major code from its name (case-insensitive).
func ParseMajorCode(s string) (MajorCode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for code, name := range majorNames {
		if name == s {
			return code, nil
		}
	}
	return MajorInvalid, fmt.Errorf("unknown major code %q", s)
}

// MinorCode details the reason behind a major code.
type MinorCode int

const (
	MinorNoError MinorCode = 0

	MinorItemFailures MinorCode = iota + 200
	MinorInternalError
	MinorAuthenticationFailure
	MinorDatabaseFailure
	MinorSuspended
	MinorAborted
	MinorConnectionError
	MinorInvalidMessage
	MinorUnsupportedSyncType
	MinorUnsupportedStorageType
	MinorLowBatteryPower
	MinorPowerSavingMode
	MinorOfflineMode
	MinorBackupInProgress
	MinorLowMemory
)

var minorNames = map[MinorCode]string{
	MinorNoError:                "no-error",
	MinorItemFailures:           "item-failures",
	MinorInternalError:          "internal-error",
	MinorAuthenticationFailure:  "authentication-failure",
	MinorDatabaseFailure:        "database-failure",
	MinorSuspended:              "suspended",
	MinorAborted:                "aborted",
	MinorConnectionError:        "connection-error",
	MinorInvalidMessage:         "invalid-message",
	MinorUnsupportedSyncType:    "unsupported-sync-type",
	MinorUnsupportedStorageType: "unsupported-storage-type",
	MinorLowBatteryPower:        "low-battery-power",
	MinorPowerSavingMode:        "power-saving-mode",
	MinorOfflineMode:            "offline-mode",
	MinorBackupInProgress:       "backup-in-progress",
	MinorLowMemory:              "low-memory",
}

func (c MinorCode) String() string {
	if s, ok := minorNames[c]; ok {
		return s
	}
	return fmt.Sprintf("minor(%d)", int(c))
}

// ParseMinorCode parses a minor code from its name (case-insensitive).
func ParseMinorCode(s string) (MinorCode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for code, name := range minorNames {
		if name == s {
			return code, nil
		}
	}
	return MinorNoError, fmt.Errorf("unknown minor code %q", s)
}

// ItemCounts holds the number of items touched on one side of a sync.
type ItemCounts struct {
	Added    int
	Deleted  int
	Modified int
}

// Total returns the sum of all counts.
func (c ItemCounts) Total() int {
	return c.Added + c.Deleted + c.Modified
}

func (c ItemCounts) add(o ItemCounts) ItemCounts {
	return ItemCounts{
		Added:    c.Added + o.Added,
		Deleted:  c.Deleted + o.Deleted,
		Modified: c.Modified + o.Modified,
	}
}

// TargetResult holds item counts for one sync target (contacts, calendar, ...).
type TargetResult struct {
	Name   string
	Local  ItemCounts
	Remote ItemCounts
}

// Result is the outcome of a single sync attempt.
//
// Results are totally ordered by SyncTime. A zero SyncTime means the time is
// unset and orders before any set time.
type Result struct {
	SyncTime  time.Time
	Major     MajorCode
	Minor     MinorCode
	Scheduled bool
	TargetID  string
	Targets   []TargetResult
}

// HasSyncTime reports whether the sync time is set.
func (r Result) HasSyncTime() bool {
	return !r.SyncTime.IsZero()
}

// Compare returns -1, 0 or +1 depending on whether r orders before, equal to
// or after other.
func (r Result) Compare(other Result) int {
	switch {
	case !r.HasSyncTime() && !other.HasSyncTime():
		return 0
	case !r.HasSyncTime():
		return -1
	case !other.HasSyncTime():
		return 1
	}
	return r.SyncTime.Compare(other.SyncTime)
}

// Less reports whether r orders strictly before other.
func (r Result) Less(other Result) bool {
	return r.Compare(other) < 0
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	c := r
	if r.Targets != nil {
		c.Targets = make([]TargetResult, len(r.Targets))
		copy(c.Targets, r.Targets)
	}
	return c
}

// Totals sums the local and remote item counts over all targets.
func (r Result) Totals() (local, remote ItemCounts) {
	for _, t := range r.Targets {
		local = local.add(t.Local)
		remote = remote.add(t.Remote)
	}
	return local, remote
}
