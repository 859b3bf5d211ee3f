// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"

	"github.com/valsr/psb/base/metadata"
)

// Reserved attribute names. They are not stored in the attribute map;
// [NodeBase.Attr] resolves them to the structural fields of the node
// and [NodeBase.SetAttr] refuses them.
const (
	AttrID       = "id"
	AttrParent   = "parent"
	AttrChildren = "children"
)

// NodeBase implements the [Node] interface and provides the core functionality
// of the tree system. You must use NodeBase as an embedded struct
// in all higher-level node types.
//
// Nodes that are used as parents should be initialized with [New],
// [NewNodeBase] or [InitNode] so that [NodeBase.This] refers to the
// higher-level node type; children are initialized automatically
// when they are added.
type NodeBase struct {

	// id is the session-unique identity of the node, assigned
	// on initialization and never changed afterwards.
	id uuid.UUID

	// this is the value of this Node as its true underlying type.
	this Node

	// parent is the non-owning back reference to the node
	// that has this node among its children.
	parent Node

	// children is the ordered list of owned child nodes.
	children []Node

	// data is the attribute map.
	data metadata.Data

	// index is the last known index of this node in its parent,
	// used as the starting point for finding it next time.
	// It is not guaranteed to be accurate; use [NodeBase.IndexInParent].
	index int
}

// NewNodeBase returns a new initialized root [NodeBase] with the
// union of the given attribute sets.
func NewNodeBase(data ...metadata.Data) *NodeBase {
	return New[*NodeBase](data...)
}

// String implements the [fmt.Stringer] interface by returning the
// index path of the node followed by its id.
func (n *NodeBase) String() string {
	if n == nil {
		return "nil"
	}
	return n.Path() + " " + n.ID().String()
}

// AsTree returns the [NodeBase] for this Node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// This returns the value of this node as its true underlying type.
// A plain NodeBase that was never initialized initializes itself.
func (n *NodeBase) This() Node {
	if n.this == nil {
		InitNode(n)
	}
	return n.this
}

// ID returns the identity of the node, which is unique within
// the running process and is never shared with a clone.
func (n *NodeBase) ID() uuid.UUID {
	if n.id == uuid.Nil {
		n.id = uuid.New()
	}
	return n.id
}

// Parent returns the parent of this node, or nil if it is not attached.
func (n *NodeBase) Parent() Node {
	return n.parent
}

// Children returns a copy of the list of children of this node.
// It is always non-nil.
func (n *NodeBase) Children() []Node {
	return append(make([]Node, 0, len(n.children)), n.children...)
}

// HasChildren returns whether this node has any children.
func (n *NodeBase) HasChildren() bool {
	return len(n.children) > 0
}

// NumChildren returns the number of children this node has.
func (n *NodeBase) NumChildren() int {
	return len(n.children)
}

// Attributes:

// HasData returns whether the attribute with the given name is set.
func (n *NodeBase) HasData(name string) bool {
	return n.data.Has(name)
}

// Data returns the attribute map of the node. It is the live map,
// so changes to it are changes to the node.
func (n *NodeBase) Data() metadata.Data {
	if n.data == nil {
		n.data = metadata.Data{}
	}
	return n.data
}

// SetData replaces the entire attribute map. The value must be nil,
// a [metadata.Data] or map[string]any (which the node takes over), or
// another map with string keys (which is copied); a nil or empty value
// clears the attributes. Any other value returns [ErrInvalidArgument].
func (n *NodeBase) SetData(value any) error {
	switch v := value.(type) {
	case nil:
		n.ClearData()
		return nil
	case metadata.Data:
		n.replaceData(v)
		return nil
	case map[string]any:
		n.replaceData(v)
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("tree.NodeBase.SetData: %T is not an attribute map: %w", value, ErrInvalidArgument)
	}
	md := make(metadata.Data, rv.Len())
	for it := rv.MapRange(); it.Next(); {
		md[it.Key().String()] = it.Value().Interface()
	}
	n.replaceData(md)
	return nil
}

func (n *NodeBase) replaceData(md metadata.Data) {
	if len(md) == 0 {
		n.ClearData()
		return
	}
	n.data = md
}

// ClearData empties the attribute map. The id, parent and
// children of the node are not affected.
func (n *NodeBase) ClearData() {
	n.data = metadata.Data{}
}

// Attr returns the value of the attribute with the given name,
// or [ErrAttributeNotFound] if it was never set. The reserved names
// [AttrID], [AttrParent] and [AttrChildren] return the structural
// fields of the node.
func (n *NodeBase) Attr(name string) (any, error) {
	switch name {
	case AttrID:
		return n.ID(), nil
	case AttrParent:
		return n.parent, nil
	case AttrChildren:
		return n.Children(), nil
	}
	v, ok := n.data[name]
	if !ok {
		return nil, fmt.Errorf("tree.NodeBase.Attr: %q: %w", name, ErrAttributeNotFound)
	}
	return v, nil
}

// SetAttr sets the attribute with the given name to the given value.
// It returns [ErrInvalidArgument] for the reserved structural names.
func (n *NodeBase) SetAttr(name string, value any) error {
	if isReserved(name) {
		return fmt.Errorf("tree.NodeBase.SetAttr: %q is a structural field: %w", name, ErrInvalidArgument)
	}
	n.data.Set(name, value)
	return nil
}

// DeleteAttr deletes the attribute with the given name, if set.
func (n *NodeBase) DeleteAttr(name string) {
	n.data.Delete(name)
}

func isReserved(name string) bool {
	return name == AttrID || name == AttrParent || name == AttrChildren
}

// Adding Children:

// AddNode adds the given node as a child of this node and returns it.
// With no position, or a negative position, the node is inserted counting
// from the end: -1 appends, -2 inserts before the current last child, and so on,
// clamped to the start. A position >= 0 inserts before that index, clamped to
// the end.
//
// It returns [ErrInvalidArgument] for a nil node, and [ErrStructuralViolation]
// if the node is this node, is already attached (here or elsewhere), or is an
// ancestor of this node. On error the tree is unchanged.
func (n *NodeBase) AddNode(node Node, position ...int) (Node, error) {
	if err := n.validateAdd(node); err != nil {
		return nil, err
	}
	InitNode(node)
	pos := -1
	if len(position) > 0 {
		pos = position[0]
	}
	idx := insertIndex(len(n.children), pos)
	n.children = slices.Insert(n.children, idx, node)
	kid := node.AsTree()
	kid.parent = n.This()
	kid.index = idx
	node.OnAdd()
	return node, nil
}

// validateAdd checks that the given node can be added as a child.
func (n *NodeBase) validateAdd(node Node) error {
	if isNil(node) {
		return fmt.Errorf("tree.NodeBase.AddNode: nil node: %w", ErrInvalidArgument)
	}
	kid := node.AsTree()
	if kid == n {
		return fmt.Errorf("tree.NodeBase.AddNode: cannot add %v to itself: %w", n, ErrStructuralViolation)
	}
	if kid.parent != nil || indexOf(n.children, kid, kid.index) >= 0 {
		return fmt.Errorf("tree.NodeBase.AddNode: %v is already attached to %v: %w", kid, kid.parent, ErrStructuralViolation)
	}
	// the walk is O(depth); only an ancestor can close a cycle
	noCycle := n.WalkUp(func(k Node) bool {
		return k.AsTree() != kid
	})
	if !noCycle {
		return fmt.Errorf("tree.NodeBase.AddNode: %v is an ancestor of %v: %w", kid, n, ErrStructuralViolation)
	}
	return nil
}

// Removing Children:

// RemoveAt removes the child at the given position and returns it with its
// parent cleared. Negative positions count from the end (-1 is the last child),
// which is also the default. It returns nil if the position is out of range.
func (n *NodeBase) RemoveAt(position ...int) Node {
	pos := -1
	if len(position) > 0 {
		pos = position[0]
	}
	idx, ok := childIndex(len(n.children), pos)
	if !ok {
		return nil
	}
	return n.removeIndex(idx)
}

// removeIndex removes the child at the given valid index.
func (n *NodeBase) removeIndex(idx int) Node {
	kid := n.children[idx]
	n.children = slices.Delete(n.children, idx, idx+1)
	kb := kid.AsTree()
	kb.parent = nil
	kb.index = 0
	return kid
}

// RemoveNode removes the given node if it is an immediate child of this node,
// returning whether it did. Use [NodeBase.RemoveNodeByID] or
// [NodeBase.RemoveNodes] to remove from the whole subtree.
func (n *NodeBase) RemoveNode(node Node) bool {
	if isNil(node) {
		return false
	}
	kid := node.AsTree()
	idx := indexOf(n.children, kid, kid.index)
	if idx < 0 {
		return false
	}
	n.removeIndex(idx)
	return true
}

// RemoveNodeByID detaches the node with the given id, looking among the
// immediate children, or in the whole subtree if descend is set.
// It returns the removed node, or nil if there is no such node.
func (n *NodeBase) RemoveNodeByID(id uuid.UUID, descend bool) Node {
	found := n.GetNode(id, descend)
	if found == nil {
		return nil
	}
	found.AsTree().Detach()
	return found
}

// RemoveNodes detaches every node matching the given predicate among the
// immediate children, or in the whole subtree if descend is set. If includeSelf
// is set, this node is also detached from its parent if it matches.
// It returns the detached nodes in traversal order.
func (n *NodeBase) RemoveNodes(match Predicate, descend, includeSelf bool) []Node {
	removed := slices.Collect(n.IterateNodes(match, descend, includeSelf))
	for _, r := range removed {
		r.AsTree().Detach()
	}
	return removed
}

// ClearNodes detaches all of the immediate children of this node
// and returns this node. Grandchildren stay attached to their parents.
func (n *NodeBase) ClearNodes() Node {
	for _, kid := range n.children {
		kb := kid.AsTree()
		kb.parent = nil
		kb.index = 0
	}
	n.children = nil
	return n.This()
}

// Detach removes this node from its parent, if it has one,
// leaving it as the root of its own subtree.
func (n *NodeBase) Detach() {
	if n.parent == nil {
		return
	}
	if !n.parent.AsTree().RemoveNode(n.This()) {
		n.parent = nil
	}
}

// Child Access:

// NodeAt returns the child at the given position, which defaults to 0.
// Negative positions count from the end (-1 is the last child).
// It returns nil if the position is out of range.
func (n *NodeBase) NodeAt(position ...int) Node {
	pos := 0
	if len(position) > 0 {
		pos = position[0]
	}
	idx, ok := childIndex(len(n.children), pos)
	if !ok {
		return nil
	}
	return n.children[idx]
}

// NodeIndex returns the index of the given node among the immediate
// children of this node, or [ErrNotFound] if it is not one of them.
func (n *NodeBase) NodeIndex(node Node) (int, error) {
	if !isNil(node) {
		kid := node.AsTree()
		if idx := indexOf(n.children, kid, kid.index); idx >= 0 {
			kid.index = idx
			return idx, nil
		}
	}
	return -1, fmt.Errorf("tree.NodeBase.NodeIndex: %v is not a child of %v: %w", node, n, ErrNotFound)
}

// IndexInParent returns our index within our parent node. It caches the
// last value and uses that for an optimized search so subsequent calls
// are typically quite fast. Returns -1 if we don't have a parent.
func (n *NodeBase) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	idx := indexOf(n.parent.AsTree().children, n, n.index) // very fast if index is close
	n.index = idx
	return idx
}

// Event methods:

// Init is a placeholder implementation of
// [Node.Init] that does nothing.
func (n *NodeBase) Init() {}

// OnAdd is a placeholder implementation of
// [Node.OnAdd] that does nothing.
func (n *NodeBase) OnAdd() {}
