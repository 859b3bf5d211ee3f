// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testdata

import (
	"github.com/valsr/psb/base/errors"
	"github.com/valsr/psb/tree"
)

// NodeEmbed embeds tree.NodeBase and adds a couple of fields.
type NodeEmbed struct {
	tree.NodeBase
	Mbr1 string
	Mbr2 int
	Tags []string

	// Added counts the calls to OnAdd; it is not cloned.
	Added int `copier:"-"`
}

// NewNodeEmbed returns a new root NodeEmbed.
func NewNodeEmbed() *NodeEmbed {
	return tree.New[*NodeEmbed]()
}

// Init sets the default kind attribute.
func (n *NodeEmbed) Init() {
	errors.Must(n.SetAttr("kind", "embed"))
}

// OnAdd counts the attachments of the node.
func (n *NodeEmbed) OnAdd() {
	n.Added++
}
