// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treeio

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"github.com/valsr/psb/base/errors"
	"github.com/valsr/psb/tree"
)

// LockPath returns the path of the lock file that guards
// the document at the given path.
func LockPath(path string) string {
	return path + ".lock"
}

// Save writes the tree from the given node down to the given file, in the
// format of its extension, while holding an exclusive lock on [LockPath].
func Save(path string, n tree.Node) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	b, err := Marshal(n, format)
	if err != nil {
		return fmt.Errorf("treeio.Save: %s: %w", path, err)
	}
	lock := flock.New(LockPath(path))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("treeio.Save: acquire lock: %w", err)
	}
	defer func() { errors.Log(lock.Unlock()) }()
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("treeio.Save: %w", err)
	}
	slog.Debug("saved tree", "path", path, "format", format)
	return nil
}

// Open reads the given file, in the format of its extension, while holding
// a shared lock on [LockPath], and returns a new tree built from it.
func Open(path string, opts ...Option) (tree.Node, error) {
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	n, err := doc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("treeio.Open: %s: %w", path, err)
	}
	return n, nil
}

// OpenDocument reads the document in the given file without building a tree.
func OpenDocument(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	lock := flock.New(LockPath(path))
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("treeio.Open: acquire lock: %w", err)
	}
	defer func() { errors.Log(lock.Unlock()) }()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("treeio.Open: %w", err)
	}
	defer f.Close()
	doc, err := DecodeDocument(f, format)
	if err != nil {
		return nil, fmt.Errorf("treeio.Open: %s: %w", path, err)
	}
	return doc, nil
}
