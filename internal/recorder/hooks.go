package recorder

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/hay-kot/synclog/internal/core/config"
	"github.com/hay-kot/synclog/internal/core/results"
	"github.com/hay-kot/synclog/internal/core/synclog"
	"github.com/hay-kot/synclog/internal/styles"
	"github.com/hay-kot/synclog/pkg/executil"
	"github.com/hay-kot/synclog/pkg/tmpl"
)

// HookRunner executes the hooks configured for recorded results.
type HookRunner struct {
	log        zerolog.Logger
	executor   executil.Executor
	timeFormat string
	stdout     io.Writer
	stderr     io.Writer
}

// NewHookRunner creates a new HookRunner.
func NewHookRunner(log zerolog.Logger, executor executil.Executor, timeFormat string, stdout, stderr io.Writer) *HookRunner {
	return &HookRunner{
		log:        log,
		executor:   executor,
		timeFormat: timeFormat,
		stdout:     stdout,
		stderr:     stderr,
	}
}

// RunHooks executes every hook whose pattern matches profile and whose
// trigger matches r. Execution stops at the first failing command.
func (h *HookRunner) RunHooks(ctx context.Context, hooks []config.Hook, profile string, r results.Result) error {
	successful := synclog.IsSuccessful(r)
	data := config.HookTemplateData{
		Profile:    profile,
		Major:      r.Major.String(),
		Minor:      r.Minor.String(),
		Successful: successful,
	}
	if r.HasSyncTime() {
		data.Time = r.SyncTime.Format(h.timeFormat)
	}

	env := []string{
		"SYNCLOG_PROFILE=" + data.Profile,
		"SYNCLOG_MAJOR=" + data.Major,
		"SYNCLOG_MINOR=" + data.Minor,
		"SYNCLOG_TIME=" + data.Time,
		fmt.Sprintf("SYNCLOG_SUCCESSFUL=%t", successful),
	}

	h.log.Debug().
		Str("profile", profile).
		Int("hook_count", len(hooks)).
		Msg("evaluating hooks")

	hookNum := 0
	for _, hook := range hooks {
		matched, err := matchPattern(hook.Pattern, profile)
		if err != nil {
			return fmt.Errorf("match pattern %q: %w", hook.Pattern, err)
		}

		if !matched || !triggered(hook.On, successful) {
			h.log.Debug().
				Str("pattern", hook.Pattern).
				Str("on", string(hook.On)).
				Bool("matched", matched).
				Msg("hook skipped")
			continue
		}

		hookNum++

		for i, text := range hook.Commands {
			cmd, err := tmpl.Render(text, data)
			if err != nil {
				return fmt.Errorf("render hook %q command %d: %w", hook.Pattern, i, err)
			}

			h.printCommandHeader(hookNum, i+1, len(hook.Commands), cmd)

			if err := h.executor.RunStream(ctx, env, h.stdout, h.stderr, "sh", "-c", cmd); err != nil {
				return fmt.Errorf("run hook %q command %q: %w", hook.Pattern, cmd, err)
			}
		}
	}

	return nil
}

// printCommandHeader prints a styled header for a hook command.
func (h *HookRunner) printCommandHeader(hookNum, cmdNum, totalCmds int, cmd string) {
	divider := styles.DividerStyle.Render(strings.Repeat("─", 50))
	header := styles.CommandHeaderStyle.Render(fmt.Sprintf("hook %d", hookNum))
	cmdLabel := styles.DividerStyle.Render(fmt.Sprintf("[%d/%d]", cmdNum, totalCmds))
	command := styles.CommandStyle.Render(cmd)

	_, _ = fmt.Fprintln(h.stdout, divider)
	_, _ = fmt.Fprintf(h.stdout, "%s %s %s\n", header, cmdLabel, command)
	_, _ = fmt.Fprintln(h.stdout, divider)
}

// matchPattern reports whether profile matches the glob pattern.
// Empty pattern matches all profiles.
func matchPattern(pattern, profile string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	return doublestar.Match(pattern, profile)
}

func triggered(on config.HookTrigger, successful bool) bool {
	switch on {
	case config.TriggerSuccess:
		return successful
	case config.TriggerFailure:
		return !successful
	default:
		return true
	}
}
