package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/hay-kot/synclog/internal/core/synclog"
)

// logRow is one displayed result of a log.
type logRow struct {
	Time       string
	Outcome    string
	Local      string
	Remote     string
	Successful bool
	Latest     bool // the log's latest successful result
	Evicted    bool // kept only as the latest successful result
}

// logRows returns the rows to display for l, oldest first. The latest
// successful result is prepended when it is no longer retained.
func logRows(l *synclog.Log, timeFormat string) []logRow {
	all := l.All()
	best, hasBest := l.LastSuccessful()

	var rows []logRow
	if hasBest && (len(all) == 0 || best.Less(all[0])) {
		row := newLogRow(best, timeFormat)
		row.Latest = true
		row.Evicted = true
		rows = append(rows, row)
	}

	for _, r := range all {
		row := newLogRow(r, timeFormat)
		row.Latest = hasBest && row.Successful && r.Compare(best) == 0
		rows = append(rows, row)
	}

	return rows
}

func newLogRow(r results.Result, timeFormat string) logRow {
	row := logRow{
		Time:       "-",
		Outcome:    r.Major.String(),
		Successful: synclog.IsSuccessful(r),
	}
	if r.HasSyncTime() {
		row.Time = r.SyncTime.Local().Format(timeFormat)
	}
	if r.Minor != results.MinorNoError {
		row.Outcome += " (" + r.Minor.String() + ")"
	}

	local, remote := r.Totals()
	row.Local = formatCounts(local)
	row.Remote = formatCounts(remote)
	return row
}

func formatCounts(c results.ItemCounts) string {
	if c.Total() == 0 {
		return "-"
	}
	return fmt.Sprintf("+%d -%d ~%d", c.Added, c.Deleted, c.Modified)
}

// logMarkdown renders l as a markdown document.
func logMarkdown(l *synclog.Log, timeFormat string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l.ProfileName())

	rows := logRows(l, timeFormat)
	if len(rows) == 0 {
		b.WriteString("_No sync results recorded._\n")
		return b.String()
	}

	b.WriteString("| Time | Outcome | Local | Remote |\n")
	b.WriteString("|------|---------|-------|--------|\n")
	for _, row := range rows {
		t := row.Time
		if row.Latest {
			t = "**" + t + "**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", t, row.Outcome, row.Local, row.Remote)
	}

	if best, ok := l.LastSuccessful(); ok {
		fmt.Fprintf(&b, "\nLast successful sync: **%s**\n", best.SyncTime.Local().Format(timeFormat))
	} else {
		b.WriteString("\nNo successful sync recorded.\n")
	}

	return b.String()
}

// renderMarkdown renders md for the terminal.
func renderMarkdown(md, style string, wordWrap int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
