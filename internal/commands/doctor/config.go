package doctor

import (
	"context"
	"errors"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/synclog/internal/core/config"
)

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	config *config.Config
}

// NewConfigCheck creates a new configuration check.
func NewConfigCheck(cfg *config.Config) *ConfigCheck {
	return &ConfigCheck{config: cfg}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config loaded",
			Status: StatusFail,
			Detail: "configuration not loaded",
		})
		return result
	}

	err := c.config.Validate()
	if err == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Config valid",
			Status: StatusPass,
		})
		if len(c.config.Hooks) == 0 {
			result.Items = append(result.Items, CheckItem{
				Label:  "Hooks",
				Status: StatusPass,
				Detail: "none configured",
			})
		}
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.Items = append(result.Items, CheckItem{
			Label:  "validation",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	for _, fe := range fieldErrs {
		label := fe.Field
		if label == "" {
			label = "validation"
		}
		result.Items = append(result.Items, CheckItem{
			Label:  label,
			Status: StatusFail,
			Detail: fe.Err.Error(),
		})
	}

	return result
}
