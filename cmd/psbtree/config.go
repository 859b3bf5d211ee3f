// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/valsr/psb/tree"
)

// DefaultConfigPath is the configuration file used when none is given.
const DefaultConfigPath = "~/.config/psbtree/config.toml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the configuration of psbtree, read from a TOML file.
// Command line flags override it.
type Config struct {

	// Indent is the indentation per level of tree dumps.
	Indent string `toml:"indent"`

	// DataIndent is the indentation of the attributes and children headers.
	DataIndent string `toml:"data_indent"`

	// Color is when to color the output: auto, always or never.
	Color string `toml:"color"`

	// ShowIDs is whether to show the session ids of nodes.
	ShowIDs bool `toml:"show_ids"`

	// Fuzzy is the similarity threshold of find --like, between 0 and 1.
	Fuzzy float64 `toml:"fuzzy"`

	// LogLevel is the minimum level of log messages: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Indent:     "  ",
		DataIndent: "-",
		Color:      ColorAuto,
		ShowIDs:    true,
		Fuzzy:      0.8,
		LogLevel:   "info",
	}
}

// LoadConfig returns the configuration in the file at the given path,
// with the defaults for any missing values. An empty path loads
// [DefaultConfigPath] if it exists, and the defaults otherwise.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("resolve config path: %w", err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", expanded, err)
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be %s, %s or %s, not %q", ColorAuto, ColorAlways, ColorNever, c.Color)
	}
	if c.Fuzzy < 0 || c.Fuzzy > 1 {
		return fmt.Errorf("fuzzy must be between 0 and 1, not %v", c.Fuzzy)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level of the configuration.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// DumpOptions returns the tree dump options of the configuration.
func (c *Config) DumpOptions() tree.DumpOptions {
	return tree.DumpOptions{Indent: c.Indent, DataIndent: c.DataIndent, HideIDs: !c.ShowIDs}
}
