// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import "github.com/valsr/psb/base/errors"

var (
	// ErrInvalidProject is returned when opening a document
	// that does not have the files and lanes trees.
	ErrInvalidProject = errors.New("invalid project")

	// ErrInvalidMedia is returned for media information
	// with values of the wrong type.
	ErrInvalidMedia = errors.New("invalid media information")

	// ErrNotCategory is returned when adding a node under a file node.
	ErrNotCategory = errors.New("not a category")

	// ErrForeignNode is returned for a parent node that
	// is not in the files or lanes tree of the project.
	ErrForeignNode = errors.New("node is not in the project")
)
