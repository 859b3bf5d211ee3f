// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"io"
	"strings"
)

// DumpOptions are the options for [Dump].
type DumpOptions struct {

	// Indent is repeated once per level of depth. It defaults to a single space.
	Indent string

	// DataIndent is written after the level indent before the attribute
	// and children headers. It defaults to a single space.
	DataIndent string

	// HideIDs omits the node ids, which differ between sessions,
	// so that the dumps of equal trees are equal.
	HideIDs bool
}

// Dump writes a human-readable outline of the given node and its subtree
// to w: a Node line per node, followed by its attributes in key order and
// its children one level deeper.
func Dump(w io.Writer, n Node, opts DumpOptions) error {
	if opts.Indent == "" {
		opts.Indent = " "
	}
	if opts.DataIndent == "" {
		opts.DataIndent = " "
	}
	var b strings.Builder
	dumpNode(&b, n.AsTree(), &opts, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpNode(b *strings.Builder, n *NodeBase, opts *DumpOptions, level int) {
	ind := strings.Repeat(opts.Indent, level)
	if opts.HideIDs {
		fmt.Fprintf(b, "%sNode\n", ind)
	} else {
		fmt.Fprintf(b, "%sNode: %s\n", ind, n.ID())
	}
	if len(n.data) > 0 {
		fmt.Fprintf(b, "%s%sData:\n", ind, opts.DataIndent)
		for _, k := range n.data.Keys() {
			fmt.Fprintf(b, "%s%s%s:%v\n", ind, opts.DataIndent, k, n.data[k])
		}
	}
	if len(n.children) > 0 {
		fmt.Fprintf(b, "%s%sChildren:\n", ind, opts.DataIndent)
		for _, kid := range n.children {
			dumpNode(b, kid.AsTree(), opts, level+1)
		}
	}
}
