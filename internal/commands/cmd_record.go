package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/printer"
)

type RecordCmd struct {
	flags *Flags

	// Command-specific flags
	major     string
	minor     string
	syncTime  string
	scheduled bool
	targetID  string
	targets   []string
}

// NewRecordCmd creates a new record command
func NewRecordCmd(flags *Flags) *RecordCmd {
	return &RecordCmd{flags: flags}
}

// Register adds the record command to the application
func (cmd *RecordCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "record",
		Usage:     "Record the result of a sync attempt",
		UsageText: "synclog record [options] <profile>",
		Description: `Appends a sync result to the profile's log, creating the log if needed.

Only the 5 most recent results are kept. The latest successful result is
remembered even after it is evicted. Results must be recorded in the order
the syncs happened.

Targets use the form name:added,deleted,modified:added,deleted,modified
with local counts first, e.g. --target contacts:3,0,1:0,0,2`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "major",
				Usage:       "major code (success, failed, cancelled, invalid)",
				Value:       results.MajorSuccess.String(),
				Destination: &cmd.major,
			},
			&cli.StringFlag{
				Name:        "minor",
				Usage:       "minor code (no-error, connection-error, ...)",
				Value:       results.MinorNoError.String(),
				Destination: &cmd.minor,
			},
			&cli.StringFlag{
				Name:        "time",
				Usage:       `sync time in RFC 3339, "now", or empty for unset`,
				Value:       "now",
				Destination: &cmd.syncTime,
			},
			&cli.BoolFlag{
				Name:        "scheduled",
				Usage:       "mark the sync as scheduled rather than manual",
				Destination: &cmd.scheduled,
			},
			&cli.StringFlag{
				Name:        "target-id",
				Usage:       "identifier of the remote the sync ran against",
				Destination: &cmd.targetID,
			},
			&cli.StringSliceFlag{
				Name:        "target",
				Aliases:     []string{"t"},
				Usage:       "per-target item counts (repeatable)",
				Destination: &cmd.targets,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RecordCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one profile name, got %d arguments", c.Args().Len())
	}
	profile := c.Args().First()

	r, err := cmd.buildResult(time.Now())
	if err != nil {
		return err
	}

	l, err := cmd.flags.Service.Record(ctx, profile, r)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}

	if synclog.IsSuccessful(r) {
		p.Successf("Recorded successful sync for %s (%d/%d entries)", profile, l.Len(), synclog.MaxEntries)
	} else {
		p.Warnf("Recorded %s/%s for %s (%d/%d entries)", r.Major, r.Minor, profile, l.Len(), synclog.MaxEntries)
	}
	return nil
}

func (cmd *RecordCmd) buildResult(now time.Time) (results.Result, error) {
	major, err := results.ParseMajorCode(cmd.major)
	if err != nil {
		return results.Result{}, err
	}

	minor, err := results.ParseMinorCode(cmd.minor)
	if err != nil {
		return results.Result{}, err
	}

	syncTime, err := parseSyncTime(cmd.syncTime, now)
	if err != nil {
		return results.Result{}, err
	}

	r := results.Result{
		SyncTime:  syncTime,
		Major:     major,
		Minor:     minor,
		Scheduled: cmd.scheduled,
		TargetID:  cmd.targetID,
	}
	for _, raw := range cmd.targets {
		t, err := parseTarget(raw)
		if err != nil {
			return results.Result{}, err
		}
		r.Targets = append(r.Targets, t)
	}

	return r, nil
}

// parseSyncTime accepts RFC 3339, "now", or an empty string for an unset time.
func parseSyncTime(s string, now time.Time) (time.Time, error) {
	switch strings.TrimSpace(s) {
	case "":
		return time.Time{}, nil
	case "now":
		return now.UTC().Truncate(time.Second), nil
	}

	t, err := time.Parse(results.TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time %q: %w", s, err)
	}
	return t, nil
}

// parseTarget parses name:added,deleted,modified:added,deleted,modified.
// Count groups may be omitted and default to zero.
func parseTarget(raw string) (results.TargetResult, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
		return results.TargetResult{}, fmt.Errorf("invalid --target %q: want name[:local[:remote]]", raw)
	}

	t := results.TargetResult{Name: strings.TrimSpace(parts[0])}
	sides := []*results.ItemCounts{&t.Local, &t.Remote}
	for i, group := range parts[1:] {
		counts, err := parseCounts(group)
		if err != nil {
			return results.TargetResult{}, fmt.Errorf("invalid --target %q: %w", raw, err)
		}
		*sides[i] = counts
	}

	return t, nil
}

func parseCounts(group string) (results.ItemCounts, error) {
	fields := strings.Split(group, ",")
	if len(fields) != 3 {
		return results.ItemCounts{}, fmt.Errorf("counts %q must be added,deleted,modified", group)
	}

	var n [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 {
			return results.ItemCounts{}, fmt.Errorf("count %q must be a non-negative integer", f)
		}
		n[i] = v
	}

	return results.ItemCounts{Added: n[0], Deleted: n[1], Modified: n[2]}, nil
}
