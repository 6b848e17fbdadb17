package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConversion() error {
	if c.Conversion.Workers < 1 {
		return errors.New("conversion.workers must be positive")
	}
	if c.Conversion.Workers > 64 {
		return errors.New("conversion.workers must be 64 or fewer")
	}
	if c.Conversion.TimeoutSeconds < 1 {
		return errors.New("conversion.timeout_seconds must be positive")
	}
	if c.Conversion.SourceSampleRate < 8000 || c.Conversion.SourceSampleRate > 192000 {
		return errors.New("conversion.source_sample_rate must be between 8000 and 192000")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
