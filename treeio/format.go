// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treeio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an enumerated list of the document formats
// that trees can be encoded to and decoded from.
type Format int32

const (
	// JSON is the JSON format, with the .json extension.
	JSON Format = iota

	// YAML is the YAML format, with the .yaml and .yml extensions.
	YAML

	// TOML is the TOML format, with the .toml extension.
	TOML
)

var formatNames = []string{"json", "yaml", "toml"}

// formatExts maps lowercase file extensions to formats.
var formatExts = map[string]Format{
	".json": JSON,
	".yaml": YAML,
	".yml":  YAML,
	".toml": TOML,
}

// FormatValues returns all possible values for the type Format.
func FormatValues() []Format { return []Format{JSON, YAML, TOML} }

// String returns the string representation of this Format value.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int32(f))
	}
	return formatNames[f]
}

// SetString sets the Format value from its string representation,
// ignoring case, and returns an error if the string is invalid.
func (f *Format) SetString(s string) error {
	for i, name := range formatNames {
		if strings.EqualFold(s, name) {
			*f = Format(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type Format: %w", s, ErrUnknownFormat)
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (f *Format) UnmarshalText(text []byte) error { return f.SetString(string(text)) }

// FormatFromPath returns the format for the extension of the given path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatExts[ext]
	if !ok {
		return JSON, fmt.Errorf("treeio.FormatFromPath: no format for extension %q of %s: %w", ext, path, ErrUnknownFormat)
	}
	return f, nil
}
