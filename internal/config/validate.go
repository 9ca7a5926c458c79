package config

import (
	"errors"
	"fmt"
	"strings"
)

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for conditions that would make the
// CLI misbehave later. It collects every problem instead of stopping at
// the first one.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		problems = append(problems, "paths.output_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LibraryDB) == "" {
		problems = append(problems, "paths.library_db must not be empty")
	}
	if strings.TrimSpace(c.Console.Manufacturer) == "" {
		problems = append(problems, "console.manufacturer must not be empty")
	}
	if strings.TrimSpace(c.Console.Model) == "" {
		problems = append(problems, "console.model must not be empty")
	}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, fmt.Sprintf("logging.format %q is not one of text, json", c.Logging.Format))
	}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if c.Deploy.WatchTimeout < 0 {
		problems = append(problems, "deploy.watch_timeout must not be negative")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
