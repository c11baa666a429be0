package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/printer"
)

type ClearCmd struct {
	flags *Flags

	yes bool
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags) *ClearCmd {
	return &ClearCmd{flags: flags}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Delete a profile's sync log",
		UsageText: "synclog clear [--yes] <profile>",
		Description: `Deletes the stored log, including the latest successful result.

Asks for confirmation when run interactively. Use --yes to skip it.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "do not ask for confirmation",
				Destination: &cmd.yes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one profile name, got %d arguments", c.Args().Len())
	}
	profile := c.Args().First()

	if !cmd.yes && term.IsTerminal(int(os.Stdin.Fd())) {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete the sync log of %s?", profile)).
			Description("The latest successful result is lost as well.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if !confirmed {
			p.Infof("Aborted")
			return nil
		}
	}

	if err := cmd.flags.Service.Clear(ctx, profile); err != nil {
		if errors.Is(err, synclog.ErrNotFound) {
			p.Infof("No sync history for %s", profile)
			return nil
		}
		return fmt.Errorf("clear %s: %w", profile, err)
	}

	p.Successf("Cleared sync log of %s", profile)
	return nil
}
