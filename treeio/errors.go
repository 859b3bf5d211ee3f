// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treeio

import "github.com/valsr/psb/base/errors"

var (
	// ErrUnknownFormat is returned for a format name or file
	// extension that does not correspond to a [Format].
	ErrUnknownFormat = errors.New("unknown format")

	// ErrInvalidDocument is returned for a document that cannot
	// be turned into a tree, such as one without a root.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnsupportedVersion is returned for a document whose version
	// is not compatible with [Version].
	ErrUnsupportedVersion = errors.New("unsupported document version")
)
