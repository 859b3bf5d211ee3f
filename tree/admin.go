// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/valsr/psb/base/metadata"
)

// admin.go has infrastructure code outside of the Node interface.

// InitNode initializes the node: it sets [NodeBase.This] to the given
// value, assigns the node its id, and calls [Node.Init]. It does
// nothing for a node that is already initialized.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.this != nil {
		return
	}
	nb.this = n
	if nb.id == uuid.Nil {
		nb.id = uuid.New()
	}
	n.Init()
}

// New returns a new initialized root node of the given type,
// with the union of the given attribute sets. T must be a
// pointer type, such as *NodeBase.
func New[T Node](data ...metadata.Data) T {
	n := reflect.New(reflect.TypeFor[T]().Elem()).Interface().(T)
	InitNode(n)
	nb := n.AsTree()
	for _, d := range data {
		nb.data.Copy(d)
	}
	return n
}

// NewInstance returns a new, uninitialized instance of this node's type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This()).Elem()).Interface().(Node)
}

// AttrAs returns the attribute of the given node with the given name
// as type T. It returns [ErrAttributeNotFound] if the attribute is not
// set and [ErrInvalidArgument] if it holds a value of another type.
func AttrAs[T any](n Node, name string) (T, error) {
	var z T
	v, err := n.AsTree().Attr(name)
	if err != nil {
		return z, err
	}
	t, ok := v.(T)
	if !ok {
		return z, fmt.Errorf("tree.AttrAs: %q is %T, not %T: %w", name, v, z, ErrInvalidArgument)
	}
	return t, nil
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	return n.AsTree().parent == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	root := n.AsTree().This()
	n.AsTree().WalkUp(func(k Node) bool {
		root = k
		return Continue
	})
	return root
}

// isNil returns whether the given node is nil or a nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	rv := reflect.ValueOf(n)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
