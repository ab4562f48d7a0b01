package config

import (
	"fmt"
	"os"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Report {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("unknown report format %q (expected auto, text or json)", c.Report)
	}
	if _, err := parsePlatform(c.Platform); err != nil {
		return err
	}
	return nil
}

// ValidateProjectDir checks that the project directory exists. Run
// separately from Validate so help output works from anywhere.
func (c *Config) ValidateProjectDir() error {
	if _, err := os.Stat(c.Cwd); os.IsNotExist(err) {
		return fmt.Errorf("project directory does not exist: %s\nHint: Use --cwd to point at the package to bundle", c.Cwd)
	}
	return nil
}
