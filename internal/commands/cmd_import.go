package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/synclog/internal/printer"
)

type ImportCmd struct {
	flags *Flags

	profile string
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Load a sync log from an XML document",
		UsageText: "synclog import [--profile <name>] [file]",
		Description: `Reads a synclog XML document from a file or stdin and stores it,
replacing any existing log for the same profile.

Results are replayed in document order, so only the last 5 are retained and
the latest successful result is recomputed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "profile",
				Aliases:     []string{"p"},
				Usage:       "store under this profile name instead of the document's",
				Destination: &cmd.profile,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	var r io.Reader

	switch path := c.Args().First(); path {
	case "", "-":
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe XML input")
		}
		r = os.Stdin
	default:
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	l, err := cmd.flags.Service.Import(ctx, r, cmd.profile)
	if err != nil {
		return fmt.Errorf("import log: %w", err)
	}

	printer.Ctx(ctx).Successf("Imported %s (%d entries)", l.ProfileName(), l.Len())
	return nil
}
