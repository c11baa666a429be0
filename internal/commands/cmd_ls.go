package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/printer"
)

type LsCmd struct {
	flags *Flags

	filter string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List profiles with a sync log",
		UsageText:   "synclog ls [--filter <glob>]",
		Description: "Displays a table of all profiles with their latest result and latest successful sync.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "only list profiles matching this glob",
				Destination: &cmd.filter,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	logs, err := cmd.flags.Service.Logs(ctx, cmd.filter)
	if err != nil {
		return fmt.Errorf("list logs: %w", err)
	}

	if len(logs) == 0 {
		p.Infof("No sync logs found")
		return nil
	}

	timeFormat := cmd.flags.Config.Display.TimeFormat

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PROFILE\tENTRIES\tLAST\tLAST SUCCESS")

	for _, l := range logs {
		last := "-"
		if r, ok := l.Last(); ok {
			row := newLogRow(r, timeFormat)
			if row.Successful {
				last = printer.StatusOK(row.Time)
			} else {
				last = printer.StatusFailed(row.Time + " " + row.Outcome)
			}
		}

		lastSuccess := "never"
		if r, ok := l.LastSuccessful(); ok {
			lastSuccess = newLogRow(r, timeFormat).Time
		}

		_, _ = fmt.Fprintf(w, "%s\t%d/%d\t%s\t%s\n", l.ProfileName(), l.Len(), synclog.MaxEntries, last, lastSuccess)
	}

	return w.Flush()
}
