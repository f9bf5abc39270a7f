// Package config loads the YAML application configuration. Values of the
// form ${VAR_NAME} are replaced with the corresponding environment variable
// before parsing, so credentials never need to live in the file itself.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Load reads, substitutes and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse handles a raw configuration document. Split out from Load for tests.
func Parse(data []byte) (*Config, error) {
	substituted := envPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := envPattern.FindSubmatch(match)[1]
		return []byte(os.Getenv(string(name)))
	})

	var config Config
	if err := yaml.Unmarshal(substituted, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	slog.Debug("Configuration loaded", "feeds", len(config.Feeds),
		"interval_minutes", config.Schedule.IntervalMinutes,
		"max_age_hours", config.Schedule.MaxAgeHours)

	return &config, nil
}

func setDefaults(config *Config) {
	if config.Schedule.IntervalMinutes == 0 {
		config.Schedule.IntervalMinutes = 60
	}
	if config.Schedule.MaxAgeHours == 0 {
		config.Schedule.MaxAgeHours = 24
	}
	if config.Schedule.MaxItemsPerRun == 0 {
		config.Schedule.MaxItemsPerRun = 10
	}
	if config.LLM.Model == "" {
		config.LLM.Model = "gpt-4o-mini"
	}

	for i := range config.Feeds {
		if config.Feeds[i].Category == "" {
			config.Feeds[i].Category = "general"
		}
	}
}

func validate(config *Config) error {
	for i, source := range config.Feeds {
		if source.Name == "" {
			return fmt.Errorf("feed at index %d: name is required", i)
		}
		if source.URL == "" {
			return fmt.Errorf("feed %q: url is required", source.Name)
		}
	}

	nonNegativeFields := map[string]int{
		"interval_minutes":  config.Schedule.IntervalMinutes,
		"max_age_hours":     config.Schedule.MaxAgeHours,
		"max_items_per_run": config.Schedule.MaxItemsPerRun,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("schedule.%s must be non-negative", fieldName)
		}
	}

	if config.Notify.Telegram.Enabled && config.Notify.Telegram.ChatID == "" {
		return fmt.Errorf("notify.telegram.chat_id is required when telegram is enabled")
	}

	return nil
}
