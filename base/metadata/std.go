// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metadata

// Standard keys shared by the node types of the application.
const (
	// LabelKey is the display label of a node.
	LabelKey = "label"

	// NodeIDKey is the persistent identifier of a node, which,
	// unlike the session id of a tree node, survives save and load.
	NodeIDKey = "node_id"
)

// SetLabel sets the [LabelKey] standard key.
func (md *Data) SetLabel(label string) {
	md.Set(LabelKey, label)
}

// Label returns the [LabelKey] standard key value (empty if not set).
func (md Data) Label() string {
	label, _ := Get[string](md, LabelKey)
	return label
}

// SetNodeID sets the [NodeIDKey] standard key.
func (md *Data) SetNodeID(id string) {
	md.Set(NodeIDKey, id)
}

// NodeID returns the [NodeIDKey] standard key value (empty if not set).
func (md Data) NodeID() string {
	id, _ := Get[string](md, NodeIDKey)
	return id
}
