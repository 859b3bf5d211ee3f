// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"iter"
	"slices"

	"github.com/google/uuid"
)

// IterateNodes returns a lazy sequence of the nodes matching the given
// predicate; a nil predicate matches every node. If includeSelf is set
// and this node matches, it is yielded first. Then the matching immediate
// children are yielded in order, and, if descend is set, the matches within
// each child's subtree follow, child by child, in the same order.
//
// The tree must not be modified while the sequence is being consumed;
// collect it first (for example with [NodeBase.FindNodes]) to remove
// nodes found by a search.
func (n *NodeBase) IterateNodes(match Predicate, descend, includeSelf bool) iter.Seq[Node] {
	if match == nil {
		match = All()
	}
	return func(yield func(Node) bool) {
		n.iterate(match, descend, includeSelf, yield)
	}
}

// iterate implements [NodeBase.IterateNodes], returning false
// once yield has asked to stop.
func (n *NodeBase) iterate(match Predicate, descend, includeSelf bool, yield func(Node) bool) bool {
	if includeSelf {
		this := n.This()
		if match(this) && !yield(this) {
			return false
		}
	}
	for _, kid := range n.children {
		if match(kid) && !yield(kid) {
			return false
		}
	}
	if !descend {
		return true
	}
	for _, kid := range n.children {
		if !kid.AsTree().iterate(match, true, false, yield) {
			return false
		}
	}
	return true
}

// FindNodes returns all of the nodes matching the given predicate among the
// immediate children, or in the whole subtree if descend is set, in the
// order of [NodeBase.IterateNodes]. This node itself is not considered.
// The result is a snapshot that stays valid while the tree is modified.
func (n *NodeBase) FindNodes(match Predicate, descend bool) []Node {
	return slices.Collect(n.IterateNodes(match, descend, false))
}

// FindNode returns the first node matching the given predicate, or nil.
// See [NodeBase.FindNodes] for the search scope.
func (n *NodeBase) FindNode(match Predicate, descend bool) Node {
	for found := range n.IterateNodes(match, descend, false) {
		return found
	}
	return nil
}

// HasNode returns whether any node matches the given predicate,
// stopping at the first match. See [NodeBase.FindNodes] for the search scope.
func (n *NodeBase) HasNode(match Predicate, descend bool) bool {
	return n.FindNode(match, descend) != nil
}

// GetNode returns the node with the given id among the immediate
// children, or in the whole subtree if descend is set. It returns
// nil if there is no such node.
func (n *NodeBase) GetNode(id uuid.UUID, descend bool) Node {
	return n.FindNode(ByID(id), descend)
}
