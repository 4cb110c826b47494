// Package config loads the YAML configuration of the vidbuf tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vidbuf/transform"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Range selects frames first, first+step, ... up to last.
type Range struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
	Step  int `yaml:"step"`
}

// Config holds the settings shared by the vidbuf subcommands.
type Config struct {
	// Input selects the frames read from image sequences.
	Input Range `yaml:"input"`
	// OutputFirst and OutputStep number the frames of written sequences.
	OutputFirst int `yaml:"output_first"`
	OutputStep  int `yaml:"output_step"`

	// PMin and PMax is the sample range quantized on image output.
	PMin float32 `yaml:"pmin"`
	PMax float32 `yaml:"pmax"`

	// Compress stores raw dumps with zstd when the output name carries no
	// explicit suffix.
	Compress bool `yaml:"compress"`

	BlurRadius int    `yaml:"blur_radius"`
	Model      string `yaml:"model"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:       Range{First: 1, Last: 1, Step: 1},
		OutputFirst: 1,
		OutputStep:  1,
		PMin:        0,
		PMax:        255,
		BlurRadius:  1,
		Model:       transform.Affine.String(),
		LogLevel:    "info",
	}
}

// Load reads path over the defaults, so absent keys keep their default
// value, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "Load",
		"path":     path,
	}).Debug("Configuration loaded")
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Input.Step <= 0:
		return fmt.Errorf("%w: input step %d", ErrInvalidConfig, c.Input.Step)
	case c.Input.Last < c.Input.First:
		return fmt.Errorf("%w: input frames %d-%d", ErrInvalidConfig, c.Input.First, c.Input.Last)
	case c.OutputStep <= 0:
		return fmt.Errorf("%w: output step %d", ErrInvalidConfig, c.OutputStep)
	case c.PMax <= c.PMin:
		return fmt.Errorf("%w: pmin %g >= pmax %g", ErrInvalidConfig, c.PMin, c.PMax)
	case c.BlurRadius < 1:
		return fmt.Errorf("%w: blur radius %d", ErrInvalidConfig, c.BlurRadius)
	}
	if _, err := transform.ParseModel(c.Model); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Level returns the parsed log level. It falls back to Info for a
// configuration that was not validated.
func (c *Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
