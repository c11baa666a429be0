package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/printer"
)

type ShowCmd struct {
	flags *Flags

	markdown bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags) *ShowCmd {
	return &ShowCmd{flags: flags}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show the sync history of a profile",
		UsageText: "synclog show [--markdown] <profile>",
		Description: `Lists the retained sync results of a profile, oldest first.

The latest successful result is starred. When it has already been evicted
from the retained results it is shown on top.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "markdown",
				Aliases:     []string{"m"},
				Usage:       "render as styled markdown",
				Destination: &cmd.markdown,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ShowCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one profile name, got %d arguments", c.Args().Len())
	}
	profile := c.Args().First()

	l, err := cmd.flags.Service.Log(ctx, profile)
	if err != nil {
		if errors.Is(err, synclog.ErrNotFound) {
			p.Infof("No sync history for %s", profile)
			return nil
		}
		return fmt.Errorf("load log: %w", err)
	}

	display := cmd.flags.Config.Display
	out := c.Root().Writer

	if cmd.markdown {
		rendered, err := renderMarkdown(logMarkdown(l, display.TimeFormat), display.MarkdownStyle, display.WordWrap)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	}

	p.Section(l.ProfileName())

	rows := logRows(l, display.TimeFormat)
	if len(rows) == 0 {
		p.Infof("No sync results recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tSTATUS\tLOCAL\tREMOTE")

	for _, row := range rows {
		status := printer.StatusFailed(row.Outcome)
		if row.Successful {
			status = printer.StatusOK(row.Outcome)
		}

		t := row.Time
		if row.Latest {
			t = printer.Highlight(t)
		}
		if row.Evicted {
			t += " (evicted)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t, status, row.Local, row.Remote)
	}

	return w.Flush()
}
