// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of an energy comparison.
//
// Settings are resolved in increasing order of precedence from
// Default, an optional YAML file, ENERGYSTAT_* environment variables
// (optionally loaded from a .env file), and command-line flags. The
// resolved Config is passed by value and never modified by the
// packages that consume it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Environment variables that override file settings.
const (
	EnvDataFolder   = "ENERGYSTAT_DATA_FOLDER"
	EnvEnergyColumn = "ENERGYSTAT_ENERGY_COLUMN"
	EnvAlpha        = "ENERGYSTAT_ALPHA"
	EnvExtension    = "ENERGYSTAT_EXTENSION"
)

// Config configures a comparison of two profiles.
type Config struct {
	// DataFolder is the directory holding one measurement file per
	// run.
	DataFolder string `yaml:"data_folder"`

	// EnergyColumn is the header of the cumulative energy column.
	EnergyColumn string `yaml:"energy_column"`

	// Alpha is the significance level shared by the normality
	// checks and the significance test.
	Alpha float64 `yaml:"alpha"`

	// Extension selects measurement files by suffix.
	Extension string `yaml:"extension"`

	Labels Labels `yaml:"labels"`

	// Unmatched is the policy for files that belong to neither
	// profile: "warn" or "fail".
	Unmatched string `yaml:"unmatched"`

	// Format is the report format: "text" or "json".
	Format string `yaml:"format"`
}

// Labels are the path substrings identifying each profile's files.
type Labels struct {
	Profile1 string `yaml:"profile1"`
	Profile2 string `yaml:"profile2"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataFolder:   "../energibridge_outputs",
		EnergyColumn: "PACKAGE_ENERGY (J)",
		Alpha:        0.05,
		Extension:    energyfmt.DefaultExtension,
		Labels: Labels{
			Profile1: energyfmt.DefaultClassifier.Profile1,
			Profile2: energyfmt.DefaultClassifier.Profile2,
		},
		Unmatched: energyfmt.SkipUnmatched.String(),
		Format:    FormatText,
	}
}

// Load returns the default configuration overlaid with the YAML file
// at path and then with the environment. An empty path or a missing
// file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from the named .env files
// (".env" if none are given). Files that do not exist are ignored, and
// variables already set in the environment take precedence.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with the ENERGYSTAT_* environment variables
// that are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDataFolder); v != "" {
		c.DataFolder = v
	}
	if v := os.Getenv(EnvEnergyColumn); v != "" {
		c.EnergyColumn = v
	}
	if v := os.Getenv(EnvExtension); v != "" {
		c.Extension = v
	}
	if v := os.Getenv(EnvAlpha); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return &ValidationError{Field: "alpha", Msg: fmt.Sprintf("%s=%q is not a number", EnvAlpha, v)}
		}
		c.Alpha = alpha
	}
	return nil
}

// A ValidationError reports an unusable configuration setting.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Validate checks that c describes a usable comparison.
func (c Config) Validate() error {
	if !(c.Alpha > 0 && c.Alpha < 1) {
		return &ValidationError{"alpha", fmt.Sprintf("%v is not in (0, 1)", c.Alpha)}
	}
	if c.DataFolder == "" {
		return &ValidationError{"data_folder", "must not be empty"}
	}
	if c.EnergyColumn == "" {
		return &ValidationError{"energy_column", "must not be empty"}
	}
	if c.Labels.Profile1 == "" || c.Labels.Profile2 == "" {
		return &ValidationError{"labels", "both profile labels must be set"}
	}
	if c.Labels.Profile1 == c.Labels.Profile2 {
		return &ValidationError{"labels", fmt.Sprintf("profiles share the label %q", c.Labels.Profile1)}
	}
	if _, err := energyfmt.ParseUnmatchedPolicy(c.Unmatched); err != nil {
		return &ValidationError{"unmatched", err.Error()}
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return &ValidationError{"format", fmt.Sprintf("unknown format %q (want %s or %s)", c.Format, FormatText, FormatJSON)}
	}
	return nil
}

// Classifier returns the file classifier for c's labels.
func (c Config) Classifier() energyfmt.Classifier {
	return energyfmt.SubstringClassifier{Profile1: c.Labels.Profile1, Profile2: c.Labels.Profile2}
}

// UnmatchedPolicy returns the parsed unmatched-file policy. c must be
// valid.
func (c Config) UnmatchedPolicy() energyfmt.UnmatchedPolicy {
	p, _ := energyfmt.ParseUnmatchedPolicy(c.Unmatched)
	return p
}
