// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides a hierarchical ownership tree of nodes
// carrying schema-less attributes, centered on the core [Node]
// interface. There is no separate tree container: any node is
// the root of its own subtree and can be attached, detached,
// searched and cloned independently.
//
// The tree is not safe for concurrent mutation; all changes to
// a tree must come from a single goroutine at a time.
package tree

// Node is an interface that all tree nodes satisfy. The core functionality
// of a tree node is defined on [NodeBase], and all higher-level node types
// must embed it. This interface only contains the tree functionality that
// higher-level node types may need to override. You can call [Node.AsTree]
// to get the [NodeBase] of a Node and access the core tree functionality.
// All values that implement [Node] are pointer values.
type Node interface {

	// AsTree returns the [NodeBase] of this Node. Most core
	// tree functionality is implemented on [NodeBase].
	AsTree() *NodeBase

	// Init is called when the node is first initialized.
	// It is called before the node is added to the tree,
	// so it will not have any parents or siblings.
	// It will be called only once in the lifetime of the node.
	// It does nothing by default, but it can be implemented
	// by higher-level types that want to set default attributes.
	Init()

	// OnAdd is called when the node is added to a parent,
	// including when it is attached as part of a clone.
	// It does nothing by default.
	OnAdd()

	// CopyFieldsFrom copies the fields of the node from the given node
	// during [NodeBase.Clone]. By default, it is [NodeBase.CopyFieldsFrom],
	// which does a deep copy of all of the exported fields of the node that
	// do not have a `copier:"-"` struct tag. Fields that point into a tree
	// must carry that tag.
	CopyFieldsFrom(from Node)
}
