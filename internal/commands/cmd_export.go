package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/synclog/internal/printer"
)

type ExportCmd struct {
	flags *Flags

	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{flags: flags}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Write a profile's sync log as XML",
		UsageText: "synclog export [-o <file>] <profile>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "write to file instead of stdout",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one profile name, got %d arguments", c.Args().Len())
	}
	profile := c.Args().First()

	var w io.Writer = c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := cmd.flags.Service.Export(ctx, profile, w); err != nil {
		return fmt.Errorf("export %s: %w", profile, err)
	}

	if cmd.output != "" {
		printer.Ctx(ctx).Successf("Exported %s to %s", profile, cmd.output)
	}
	return nil
}
