package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/synclog/internal/commands"
	"github.com/hay-kot/synclog/internal/core/config"
	"github.com/hay-kot/synclog/internal/printer"
	"github.com/hay-kot/synclog/internal/recorder"
	"github.com/hay-kot/synclog/internal/store/xmlfile"
	"github.com/hay-kot/synclog/pkg/executil"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("info", ""); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	app := &cli.Command{
		Name:      "synclog",
		Usage:     "Keep a bounded history of sync results per profile",
		UsageText: "synclog [global options] command [command options]",
		Description: `synclog records the outcome of every sync attempt of a profile.

The 5 most recent results are kept per profile, together with the latest
successful result, which survives even after it is evicted. Logs are stored
as XML documents, one per profile, in the data directory.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SYNCLOG_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("SYNCLOG_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SYNCLOG_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("SYNCLOG_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := setupLogger(flags.LogLevel, flags.LogFile); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			var (
				store  = xmlfile.NewLogStore(cfg.LogsDir())
				exec   = &executil.RealExecutor{}
				logger = log.With().Str("component", "recorder").Logger()
			)

			flags.Store = store
			flags.Service = recorder.New(store, cfg, exec, logger, os.Stdout, os.Stderr)
			return ctx, nil
		},
	}

	app = commands.NewRecordCmd(flags).Register(app)
	app = commands.NewShowCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewExportCmd(flags).Register(app)
	app = commands.NewImportCmd(flags).Register(app)
	app = commands.NewClearCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr)
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	os.Exit(exitCode)
}

func setupLogger(level string, logFile string) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		output = io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, file)
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
