// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package treeio encodes trees of [tree.Node] values to JSON, YAML
// and TOML documents and decodes them back, and saves and opens
// such documents as files protected by a lock file.
//
// A document records the attributes and the children of every node.
// Node ids are written for reference only: ids are unique to a session,
// so every decoded node receives a new one. Node types that keep state
// outside of their attributes implement [Marshaler] and [Unmarshaler].
package treeio

import (
	"fmt"
	"maps"

	"github.com/Masterminds/semver/v3"

	"github.com/valsr/psb/tree"
)

// Version is the version of the document format written by this package.
// Documents with any 1.x version can be decoded.
const Version = "1.0.0"

// versionConstraint is the range of document versions that can be decoded.
const versionConstraint = "^1"

// Document is the top-level value of an encoded tree.
type Document struct {

	// Version is the version of the document format.
	Version string `json:"version" yaml:"version" toml:"version"`

	// Root is the record of the root node.
	Root *Record `json:"root" yaml:"root" toml:"root"`
}

// Record is the encoded form of a single node and its subtree.
type Record struct {

	// ID is the id the node had when it was encoded.
	// It is informational and is not restored.
	ID string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`

	// Attributes are the attributes of the node.
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty"`

	// Children are the records of the children of the node, in order.
	Children []*Record `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Marshaler is implemented by node types that store state outside of
// their attributes. MarshalRecord is called after the attributes of the
// node have been copied to the record, and may add to them.
type Marshaler interface {
	MarshalRecord(rec *Record) error
}

// Unmarshaler is the counterpart of [Marshaler]. UnmarshalRecord is
// called after the attributes of the record have been set on the node,
// before its children are added.
type Unmarshaler interface {
	UnmarshalRecord(rec *Record) error
}

// NewDocument returns the document for the tree from the given node down.
func NewDocument(n tree.Node) (*Document, error) {
	rec, err := NewRecord(n)
	if err != nil {
		return nil, err
	}
	return &Document{Version: Version, Root: rec}, nil
}

// NewRecord returns the record for the given node and its subtree.
// The attribute maps of the records are shallow copies.
func NewRecord(n tree.Node) (*Record, error) {
	nb := n.AsTree()
	rec := &Record{ID: nb.ID().String()}
	if md := nb.Data(); len(md) > 0 {
		rec.Attributes = maps.Clone(map[string]any(md))
	}
	if m, ok := n.(Marshaler); ok {
		if err := m.MarshalRecord(rec); err != nil {
			return nil, fmt.Errorf("treeio.NewRecord: %v: %w", nb, err)
		}
	}
	for _, kid := range nb.Children() {
		kr, err := NewRecord(kid)
		if err != nil {
			return nil, err
		}
		rec.Children = append(rec.Children, kr)
	}
	return rec, nil
}

// Validate checks that the document has a root and a compatible version.
func (d *Document) Validate() error {
	v, err := semver.NewVersion(d.Version)
	if err != nil {
		return fmt.Errorf("treeio: version %q: %w", d.Version, ErrUnsupportedVersion)
	}
	c, err := semver.NewConstraint(versionConstraint)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("treeio: version %s is not %s: %w", v, versionConstraint, ErrUnsupportedVersion)
	}
	if d.Root == nil {
		return fmt.Errorf("treeio: document has no root: %w", ErrInvalidDocument)
	}
	return nil
}

// Option is an option for building trees from documents.
type Option func(o *options)

type options struct {
	newNode func(rec *Record) tree.Node
}

// WithNewNode sets the function that returns the node for each record,
// which defaults to returning a new [tree.NodeBase]. The returned node
// must not be attached; its attributes and children are set from the record.
func WithNewNode(fun func(rec *Record) tree.Node) Option {
	return func(o *options) {
		o.newNode = fun
	}
}

// Build validates the document and returns a new tree built from it.
func (d *Document) Build(opts ...Option) (tree.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := &options{newNode: func(rec *Record) tree.Node { return tree.NewNodeBase() }}
	for _, opt := range opts {
		opt(o)
	}
	return build(d.Root, o, "/")
}

func build(rec *Record, o *options, path string) (tree.Node, error) {
	if rec == nil {
		return nil, fmt.Errorf("treeio: empty record at %s: %w", path, ErrInvalidDocument)
	}
	n := o.newNode(rec)
	if n == nil {
		return nil, fmt.Errorf("treeio: no node for record at %s: %w", path, ErrInvalidDocument)
	}
	tree.InitNode(n)
	md := n.AsTree().Data()
	for k, v := range rec.Attributes {
		if k == tree.AttrID || k == tree.AttrParent || k == tree.AttrChildren {
			return nil, fmt.Errorf("treeio: record at %s has structural attribute %q: %w", path, k, ErrInvalidDocument)
		}
		md[k] = normalize(v)
	}
	if u, ok := n.(Unmarshaler); ok {
		if err := u.UnmarshalRecord(rec); err != nil {
			return nil, fmt.Errorf("treeio: record at %s: %w", path, err)
		}
	}
	for i, kr := range rec.Children {
		kid, err := build(kr, o, fmt.Sprintf("%s%d/", path, i))
		if err != nil {
			return nil, err
		}
		if _, err := n.AsTree().AddNode(kid); err != nil {
			return nil, fmt.Errorf("treeio: record at %s: %w", path, err)
		}
	}
	return n, nil
}
