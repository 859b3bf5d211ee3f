// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "github.com/valsr/psb/base/errors"

// The errors returned by tree operations are wrapped versions of
// these values, so callers should test for them with [errors.Is].
// A failed operation leaves the tree unmodified.
var (
	// ErrInvalidArgument is returned for a value of the wrong shape,
	// such as a nil node or an attribute map that is not a map.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStructuralViolation is returned when adding a node would add a
	// node to itself, attach an already attached node, or create a cycle.
	ErrStructuralViolation = errors.New("structural violation")

	// ErrAttributeNotFound is returned when reading an attribute that
	// was never set. Use [NodeBase.HasData] where absence is expected.
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrNotFound is returned by [NodeBase.NodeIndex] for a node that
	// is not an immediate child. Lookups such as [NodeBase.NodeAt] and
	// [NodeBase.GetNode] return nil instead.
	ErrNotFound = errors.New("node not found")
)
