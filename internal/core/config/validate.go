package config

import (
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/synclog/pkg/tmpl"
)

// Validate checks that the configuration is valid. The returned error, if
// any, is a criterio.FieldErrors listing every invalid field.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", errors.New("data directory cannot be empty"))
	}

	if c.Display.WordWrap < 0 {
		errs = errs.Append("display.word_wrap", fmt.Errorf("must not be negative, got %d", c.Display.WordWrap))
	}

	for i, hook := range c.Hooks {
		field := fmt.Sprintf("hooks[%d]", i)

		if hook.Pattern != "" && !doublestar.ValidatePattern(hook.Pattern) {
			errs = errs.Append(field+".pattern", fmt.Errorf("invalid glob %q", hook.Pattern))
		}

		if !isValidTrigger(hook.On) {
			errs = errs.Append(field+".on", fmt.Errorf("invalid trigger %q (want success, failure or always)", hook.On))
		}

		if len(hook.Commands) == 0 {
			errs = errs.Append(field+".commands", errors.New("at least one command is required"))
		}

		for j, cmd := range hook.Commands {
			if _, err := tmpl.Render(cmd, HookTemplateData{}); err != nil {
				errs = errs.Append(fmt.Sprintf("%s.commands[%d]", field, j), fmt.Errorf("template error: %w", err))
			}
		}
	}

	return errs.ToError()
}

func isValidTrigger(t HookTrigger) bool {
	switch t {
	case TriggerSuccess, TriggerFailure, TriggerAlways:
		return true
	default:
		return false
	}
}
