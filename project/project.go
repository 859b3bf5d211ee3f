// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package project provides the project of the sound board: a tree of
// the audio files added to it, organized in categories, and a tree of
// the lanes that the files are played in. Both trees are made of
// [FileNode] values, and a project is saved as a single tree document
// with the files and lanes trees as the children of its root.
package project

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/valsr/psb/base/metadata"
	"github.com/valsr/psb/tree"
	"github.com/valsr/psb/treeio"
)

// Root labels of the trees of a project.
const (
	FilesLabel   = "files"
	LanesLabel   = "lanes"
	ProjectLabel = "project"
)

// Project is a sound board project.
type Project struct {

	// Files is the root of the tree of audio files.
	Files *FileNode

	// Lanes is the root of the tree of lanes.
	Lanes *FileNode

	// File is the path the project was last opened from or saved to.
	File string
}

// New returns a new empty project.
func New() *Project {
	return &Project{Files: NewFileNode(FilesLabel), Lanes: NewFileNode(LanesLabel)}
}

// Open returns the project saved at the given path.
func Open(path string) (*Project, error) {
	p := New()
	if err := p.Load(path); err != nil {
		return nil, err
	}
	return p, nil
}

// AddCategory adds a new category with the given label under the given
// parent, which must be a category of the project, and returns it.
func (p *Project) AddCategory(parent *FileNode, label string) (*FileNode, error) {
	return p.add(parent, NewFileNode(label))
}

// AddFile adds a new file with the given label and media information under
// the given parent, which must be a category of the project, and returns it.
func (p *Project) AddFile(parent *FileNode, label string, info *MediaInfo) (*FileNode, error) {
	if info == nil {
		return nil, fmt.Errorf("project.AddFile: %q has no media information: %w", label, tree.ErrInvalidArgument)
	}
	n := NewFileNode(label)
	n.Info = info
	return p.add(parent, n)
}

func (p *Project) add(parent, n *FileNode) (*FileNode, error) {
	if parent == nil {
		return nil, fmt.Errorf("project: nil parent: %w", tree.ErrInvalidArgument)
	}
	if root := tree.Root(parent); root != tree.Node(p.Files) && root != tree.Node(p.Lanes) {
		return nil, fmt.Errorf("project: %q: %w", parent.Label(), ErrForeignNode)
	}
	if parent.IsFile() {
		return nil, fmt.Errorf("project: %q is a file: %w", parent.Label(), ErrNotCategory)
	}
	if _, err := parent.AddNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// FindByFingerprint returns the files with the given fingerprint.
// Files that were never analyzed have no fingerprint and never match.
func (p *Project) FindByFingerprint(fingerprint string) []*FileNode {
	if fingerprint == "" {
		return nil
	}
	var res []*FileNode
	for _, n := range p.Files.FileNodes() {
		if n.Info.Fingerprint == fingerprint {
			res = append(res, n)
		}
	}
	return res
}

// FindByNodeID returns the node of the files or lanes tree
// with the given persistent id, or nil if there is none.
func (p *Project) FindByNodeID(id string) *FileNode {
	match := tree.ByProperty(metadata.NodeIDKey, id)
	for _, root := range []*FileNode{p.Files, p.Lanes} {
		for n := range root.IterateNodes(match, true, true) {
			if fn, ok := n.(*FileNode); ok {
				return fn
			}
		}
	}
	return nil
}

// Load replaces the trees of the project with those saved at the given path.
// The project is unchanged if the file cannot be loaded.
func (p *Project) Load(path string) error {
	slog.Info("opening project", "path", path)
	root, err := treeio.Open(path, treeio.WithNewNode(func(rec *treeio.Record) tree.Node {
		return new(FileNode)
	}))
	if err != nil {
		return err
	}
	rb := root.AsTree()
	files, _ := rb.FindNode(tree.ByProperty(metadata.LabelKey, FilesLabel), false).(*FileNode)
	lanes, _ := rb.FindNode(tree.ByProperty(metadata.LabelKey, LanesLabel), false).(*FileNode)
	if files == nil || lanes == nil {
		return fmt.Errorf("project.Load: %s does not have the %s and %s trees: %w", path, FilesLabel, LanesLabel, ErrInvalidProject)
	}
	files = files.Clone(true).(*FileNode)
	lanes = lanes.Clone(true).(*FileNode)
	resolveFiles(files, filepath.Dir(path))
	p.Files, p.Lanes, p.File = files, lanes, path
	return nil
}

// Save saves the project to the given path, in the format of its extension.
// The paths of the files are saved relative to the directory of the project file
// where possible.
func (p *Project) Save(path string) error {
	slog.Info("saving project", "path", path)
	root := tree.NewNodeBase(metadata.Data{metadata.LabelKey: ProjectLabel})
	files := p.Files.Clone(true).(*FileNode)
	relativeFiles(files, filepath.Dir(path))
	for _, n := range []tree.Node{files, p.Lanes.Clone(true)} {
		if _, err := root.AddNode(n); err != nil {
			return err
		}
	}
	if err := treeio.Save(path, root); err != nil {
		return err
	}
	p.File = path
	slog.Info("project saved", "path", path)
	return nil
}

// relativeFiles makes the file paths of the files under n
// that are within dir relative to dir.
func relativeFiles(n *FileNode, dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return
	}
	for _, f := range n.FileNodes() {
		if !filepath.IsAbs(f.Info.File) {
			continue
		}
		rel, err := filepath.Rel(abs, f.Info.File)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		f.Info.File = rel
	}
}

// resolveFiles makes the relative file paths of the files under n relative
// to the working directory by joining them to dir.
func resolveFiles(n *FileNode, dir string) {
	for _, f := range n.FileNodes() {
		if f.Info.File != "" && !filepath.IsAbs(f.Info.File) {
			f.Info.File = filepath.Join(dir, f.Info.File)
		}
	}
}

// Dump writes an outline of the project to w.
func (p *Project) Dump(w io.Writer, opts tree.DumpOptions) error {
	if _, err := fmt.Fprintf(w, "Project\nFile: %s\n", p.File); err != nil {
		return err
	}
	for _, root := range []*FileNode{p.Files, p.Lanes} {
		if err := tree.Dump(w, root, opts); err != nil {
			return err
		}
	}
	return nil
}
