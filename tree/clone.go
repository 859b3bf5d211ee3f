// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jinzhu/copier"

	"github.com/valsr/psb/base/errors"
	"github.com/valsr/psb/base/metadata"
)

// Clone creates and returns a copy of the tree from this node down.
// The clone is a new root of the same type as this node (see [Node.CopyFieldsFrom]
// for how the fields of higher-level types are copied), and every node of the
// cloned subtree receives a new id. Children are always cloned, in order.
//
// The attribute map of each node is always a new map. If deep is false, the
// values in it are shared with the source; if deep is true, composite values
// (maps, slices, structs and pointers) are copied recursively as well.
func (n *NodeBase) Clone(deep bool) Node {
	nc := n.NewInstance()
	InitNode(nc)
	nc.CopyFieldsFrom(n.This())
	nb := nc.AsTree()
	nb.data = cloneData(n.data, deep)
	nb.children = make([]Node, 0, len(n.children))
	for i, kid := range n.children {
		kc := kid.AsTree().Clone(deep)
		kb := kc.AsTree()
		kb.parent = nc
		kb.index = i
		nb.children = append(nb.children, kc)
		kc.OnAdd()
	}
	return nc
}

// CopyFieldsFrom copies the fields of the node from the given node.
// It does a deep copy of all of the exported fields of higher-level
// node types that do not have a `copier:"-"` struct tag; [NodeBase]
// itself has no exported fields, so tree structure is never copied.
// Node types should only implement a custom CopyFieldsFrom method when
// they have fields that need special copying logic, and they should call
// [NodeBase.CopyFieldsFrom] first.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	if _, ok := n.This().(*NodeBase); ok {
		return
	}
	// copier also copies unexported struct fields, so the tree state is restored
	saved := *n
	err := copier.CopyWithOption(n.This(), from.AsTree().This(), copier.Option{CaseSensitive: true, DeepCopy: true})
	*n = saved
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// cloneData returns a new attribute map with the entries of md,
// deep copying the values if deep is set.
func cloneData(md metadata.Data, deep bool) metadata.Data {
	if !deep {
		return md.Clone()
	}
	c := make(metadata.Data, len(md))
	for k, v := range md {
		c[k] = deepCopy(v)
	}
	return c
}

// deepCopy returns a copy of v that shares no composite
// values with it. Scalars and strings are returned as is.
func deepCopy(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case metadata.Data:
		return metadata.Data(deepCopyMap(x))
	case map[string]any:
		return deepCopyMap(x)
	case []any:
		c := make([]any, len(x))
		for i, e := range x {
			c[i] = deepCopy(e)
		}
		return c
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return v
		}
		c := reflect.New(rv.Type())
		if errors.Log(copyValue(c.Interface(), v)) != nil {
			return v
		}
		return c.Elem().Interface()
	case reflect.Struct:
		if !hasExportedFields(rv.Type()) {
			return v // a value copy is all there is to copy
		}
		c := reflect.New(rv.Type())
		if errors.Log(copyValue(c.Interface(), v)) != nil {
			return v
		}
		return c.Elem().Interface()
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		c := reflect.New(rv.Elem().Type())
		if rv.Elem().Kind() == reflect.Struct && !hasExportedFields(rv.Elem().Type()) {
			c.Elem().Set(rv.Elem())
			return c.Interface()
		}
		if errors.Log(copyValue(c.Interface(), v)) != nil {
			return v
		}
		return c.Interface()
	}
	return v
}

func deepCopyMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = deepCopy(v)
	}
	return c
}

// copyValue deep copies from into the value pointed to by to.
func copyValue(to, from any) error {
	if err := copier.CopyWithOption(to, from, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("tree: deep copying attribute of type %T: %w", from, err)
	}
	return nil
}

func hasExportedFields(t reflect.Type) bool {
	for i := range t.NumField() {
		if t.Field(i).IsExported() {
			return true
		}
	}
	return false
}
