// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"strconv"
	"time"
)

// MediaInfo is the information about an audio file of a project.
type MediaInfo struct {

	// File is the path of the audio file.
	File string

	// Duration is the play time of the file.
	Duration time.Duration

	// Fingerprint is the acoustic fingerprint of the file: the hex digest
	// of its level peaks. It is empty if the file was not analyzed.
	Fingerprint string

	// Error is the error encountered while analyzing the file, if any.
	Error string

	// ErrorDebug is the debug information for Error.
	ErrorDebug string
}

// OK returns whether the file was analyzed without error.
func (mi *MediaInfo) OK() bool {
	return mi.Error == ""
}

// Media info keys in encoded documents.
const (
	mediaKey       = "media"
	fileKey        = "file"
	durationKey    = "duration"
	fingerprintKey = "fingerprint"
	errorKey       = "error"
	errorDebugKey  = "error_debug"
)

// toMap returns the encoded form of the media info.
func (mi *MediaInfo) toMap() map[string]any {
	m := map[string]any{
		fileKey:     mi.File,
		durationKey: mi.Duration.String(),
	}
	if mi.Fingerprint != "" {
		m[fingerprintKey] = mi.Fingerprint
	}
	if mi.Error != "" {
		m[errorKey] = mi.Error
	}
	if mi.ErrorDebug != "" {
		m[errorDebugKey] = mi.ErrorDebug
	}
	return m
}

// mediaInfoFromMap returns the media info for the given encoded form.
func mediaInfoFromMap(m map[string]any) (*MediaInfo, error) {
	mi := &MediaInfo{}
	var ok bool
	if v, has := m[fileKey]; has {
		if mi.File, ok = v.(string); !ok {
			return nil, fmt.Errorf("media %s is %T, not a string: %w", fileKey, v, ErrInvalidMedia)
		}
	}
	if v, has := m[durationKey]; has {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("media %s is %T, not a string: %w", durationKey, v, ErrInvalidMedia)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("media %s: %w: %w", durationKey, ErrInvalidMedia, err)
		}
		mi.Duration = d
	}
	// Files that were never analyzed carry a numeric 0.
	switch v := m[fingerprintKey].(type) {
	case nil:
	case string:
		mi.Fingerprint = v
	case int64:
		if v != 0 {
			mi.Fingerprint = strconv.FormatInt(v, 10)
		}
	case float64:
		if v != 0 {
			mi.Fingerprint = strconv.FormatFloat(v, 'f', -1, 64)
		}
	default:
		return nil, fmt.Errorf("media %s is %T, not a string: %w", fingerprintKey, v, ErrInvalidMedia)
	}
	mi.Error, _ = m[errorKey].(string)
	mi.ErrorDebug, _ = m[errorDebugKey].(string)
	return mi, nil
}
