// Package config handles configuration loading and validation for synclog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HookTrigger selects which recorded results fire a hook.
type HookTrigger string

const (
	TriggerSuccess HookTrigger = "success"
	TriggerFailure HookTrigger = "failure"
	TriggerAlways  HookTrigger = "always"
)

// Config holds the application configuration.
type Config struct {
	Hooks   []Hook  `yaml:"hooks"`
	Display Display `yaml:"display"`
	DataDir string  `yaml:"-"` // set by caller, not from config file
}

// Hook runs shell commands after a result is recorded for matching profiles.
type Hook struct {
	// Pattern is a glob matched against the profile name. Empty matches all.
	Pattern string `yaml:"pattern"`
	// On selects the results that fire the hook. Defaults to always.
	On HookTrigger `yaml:"on"`
	// Commands are Go templates rendered with HookTemplateData.
	Commands []string `yaml:"commands"`
}

// Display controls how logs are rendered by the CLI.
type Display struct {
	TimeFormat    string `yaml:"time_format"`
	MarkdownStyle string `yaml:"markdown_style"`
	WordWrap      int    `yaml:"word_wrap"`
}

// HookTemplateData defines available fields for hook command templates.
type HookTemplateData struct {
	Profile    string
	Major      string
	Minor      string
	Time       string
	Successful bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Hooks: []Hook{},
		Display: Display{
			TimeFormat:    "2006-01-02 15:04:05",
			MarkdownStyle: "tokyo-night",
			WordWrap:      100,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Display.TimeFormat == "" {
		c.Display.TimeFormat = defaults.Display.TimeFormat
	}
	if c.Display.MarkdownStyle == "" {
		c.Display.MarkdownStyle = defaults.Display.MarkdownStyle
	}
	if c.Display.WordWrap == 0 {
		c.Display.WordWrap = defaults.Display.WordWrap
	}
	for i := range c.Hooks {
		if c.Hooks[i].On == "" {
			c.Hooks[i].On = TriggerAlways
		}
	}
}

// LogsDir returns the directory holding one XML log per profile.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}
