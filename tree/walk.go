// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"strings"
)

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents,
// sequentially in the current goroutine. It stops walking if the function
// returns [Break] and keeps walking if it returns [Continue]. It returns
// whether walking was finished (false if it was aborted with [Break]).
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	cur := n.This()
	for {
		if !fun(cur) { // false return means stop
			return false
		}
		parent := cur.AsTree().parent
		if parent == nil {
			return true
		}
		cur = parent
	}
}

// WalkUpParent calls the given function on all of the node's parents (but not
// the node itself). See [NodeBase.WalkUp].
func (n *NodeBase) WalkUpParent(fun func(n Node) bool) bool {
	if n.parent == nil {
		return true
	}
	return n.parent.AsTree().WalkUp(fun)
}

// WalkDown calls the given function on the node and all of its descendants
// in depth-first pre-order. It stops walking the current branch of the tree
// if the function returns [Break] and keeps walking if it returns [Continue].
// Unlike [NodeBase.IterateNodes], it visits each node before its siblings'
// subtrees.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if !fun(n.This()) {
		return
	}
	for _, kid := range n.children {
		kid.AsTree().WalkDown(fun)
	}
}

// Depth returns the number of ancestors of the node; a root has depth 0.
func (n *NodeBase) Depth() int {
	depth := 0
	n.WalkUpParent(func(k Node) bool {
		depth++
		return Continue
	})
	return depth
}

// Path returns the path to this node from the tree root as the
// slash-separated indexes of each node in its parent, such as /0/3/1.
// The path of a root node is /.
func (n *NodeBase) Path() string {
	if n.parent == nil {
		return "/"
	}
	pp := n.parent.AsTree().Path()
	if pp == "/" {
		pp = ""
	}
	return pp + "/" + strconv.Itoa(n.IndexInParent())
}

// FindPath returns the node at the given path from this node, in the
// format produced by [NodeBase.Path] relative to this node. Elements may
// also be written as [i], and negative indexes count from the end.
// It returns nil if no node is found at the given path.
func (n *NodeBase) FindPath(path string) Node {
	cur := n.This()
	for _, pe := range strings.Split(strings.TrimSpace(path), "/") {
		if pe == "" {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(pe, "["), "]"))
		if err != nil {
			return nil
		}
		cur = cur.AsTree().NodeAt(idx)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Last returns the last node in the tree under the given node
// in [NodeBase.WalkDown] order.
func Last(n Node) Node {
	nb := n.AsTree()
	if nb.HasChildren() {
		return Last(nb.NodeAt(-1))
	}
	return nb.This()
}

// Previous returns the previous node in the tree in
// [NodeBase.WalkDown] order, or nil if this is the root node.
func Previous(n Node) Node {
	nb := n.AsTree()
	if nb.parent == nil {
		return nil
	}
	myidx := nb.IndexInParent()
	if myidx > 0 {
		return Last(nb.parent.AsTree().NodeAt(myidx - 1))
	}
	return nb.parent
}

// Next returns next node in the tree in [NodeBase.WalkDown] order,
// or nil if this is the last node.
func Next(n Node) Node {
	nb := n.AsTree()
	if !nb.HasChildren() {
		return NextSibling(n)
	}
	return nb.NodeAt(0)
}

// NextSibling returns the next sibling of this node, or that of its
// closest ancestor that has one, or nil if there is none.
func NextSibling(n Node) Node {
	nb := n.AsTree()
	if nb.parent == nil {
		return nil
	}
	myidx := nb.IndexInParent()
	if myidx >= 0 && myidx < nb.parent.AsTree().NumChildren()-1 {
		return nb.parent.AsTree().NodeAt(myidx + 1)
	}
	return NextSibling(nb.parent)
}
