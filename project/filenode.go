// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/valsr/psb/base/errors"
	"github.com/valsr/psb/base/metadata"
	"github.com/valsr/psb/tree"
	"github.com/valsr/psb/treeio"
)

// FileNode is a node of the files or lanes tree of a project.
// A node with media information is a file; any other node is
// a category that groups files and other categories.
type FileNode struct {
	tree.NodeBase

	// Info is the media information of a file; it is nil for a category.
	Info *MediaInfo
}

// NewFileNode returns a new root category with the given label.
func NewFileNode(label string) *FileNode {
	n := tree.New[*FileNode]()
	n.SetLabel(label)
	return n
}

// Init gives the node a persistent id equal to its session id.
func (n *FileNode) Init() {
	if !n.HasData(metadata.NodeIDKey) {
		errors.Must(n.SetAttr(metadata.NodeIDKey, n.ID().String()))
	}
}

// Label returns the display label of the node.
func (n *FileNode) Label() string {
	return n.Data().Label()
}

// SetLabel sets the display label of the node.
func (n *FileNode) SetLabel(label string) {
	errors.Must(n.SetAttr(metadata.LabelKey, label))
}

// NodeID returns the persistent id of the node,
// which is kept when the project is saved and opened.
func (n *FileNode) NodeID() string {
	return n.Data().NodeID()
}

// IsFile returns whether the node is an audio file.
func (n *FileNode) IsFile() bool {
	return n.Info != nil
}

// IsCategory returns whether the node is a category.
func (n *FileNode) IsCategory() bool {
	return !n.IsFile()
}

// FileNodes returns the file nodes in the subtree of the node.
func (n *FileNode) FileNodes() []*FileNode {
	var res []*FileNode
	for k := range n.IterateNodes(isFile, true, false) {
		res = append(res, k.(*FileNode))
	}
	return res
}

func isFile(n tree.Node) bool {
	fn, ok := n.(*FileNode)
	return ok && fn.IsFile()
}

// MarshalRecord implements [treeio.Marshaler] by adding the
// media information to the attributes of the record.
func (n *FileNode) MarshalRecord(rec *treeio.Record) error {
	if n.Info == nil {
		return nil
	}
	if rec.Attributes == nil {
		rec.Attributes = map[string]any{}
	}
	rec.Attributes[mediaKey] = n.Info.toMap()
	return nil
}

// UnmarshalRecord implements [treeio.Unmarshaler] by moving
// the media information from the attributes to [FileNode.Info].
func (n *FileNode) UnmarshalRecord(rec *treeio.Record) error {
	v, has := rec.Attributes[mediaKey]
	if !has {
		return nil
	}
	n.DeleteAttr(mediaKey)
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("project.FileNode: %s is %T: %w", mediaKey, v, ErrInvalidMedia)
	}
	mi, err := mediaInfoFromMap(m)
	if err != nil {
		return err
	}
	n.Info = mi
	return nil
}
