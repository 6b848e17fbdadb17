package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeConversion()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() error {
	var err error
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	// Overrides pointing at files are expanded; bare command names are left
	// for PATH resolution.
	if strings.ContainsAny(c.Tools.FFmpeg, "/\\~") {
		if c.Tools.FFmpeg, err = expandPath(c.Tools.FFmpeg); err != nil {
			return fmt.Errorf("tools.ffmpeg: %w", err)
		}
	}
	if strings.ContainsAny(c.Tools.FFprobe, "/\\~") {
		if c.Tools.FFprobe, err = expandPath(c.Tools.FFprobe); err != nil {
			return fmt.Errorf("tools.ffprobe: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeConversion() {
	if c.Conversion.Workers == 0 {
		c.Conversion.Workers = defaultWorkers
	}
	if c.Conversion.TimeoutSeconds == 0 {
		c.Conversion.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.Conversion.SourceSampleRate == 0 {
		c.Conversion.SourceSampleRate = defaultSourceSampleRate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
