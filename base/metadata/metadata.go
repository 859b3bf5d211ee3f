// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metadata provides a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
// It is the attribute storage of tree nodes, where keys function
// as optional, schema-less fields of the node.
package metadata

import (
	"fmt"
	"maps"
	"slices"
)

// Data is metadata as a map of named any elements
// with generic support for type-safe Get and nil-safe Set.
// In general it is good practice to provide access functions
// that establish standard key names, to avoid issues with typos.
type Data map[string]any

func (md *Data) init() {
	if *md == nil {
		*md = make(map[string]any)
	}
}

// Set sets key to given value, ensuring that
// the map is created if not previously.
func (md *Data) Set(key string, value any) {
	md.init()
	(*md)[key] = value
}

// Has returns whether the given key is present, even with a nil value.
func (md Data) Has(key string) bool {
	_, ok := md[key]
	return ok
}

// Delete removes the given key. It is a no-op for a missing key.
func (md Data) Delete(key string) {
	delete(md, key)
}

// Keys returns the keys in sorted order.
func (md Data) Keys() []string {
	return slices.Sorted(maps.Keys(md))
}

// Get gets metadata value of given type.
// returns error if not present or item is a different type.
func Get[T any](md Data, key string) (T, error) {
	var z T
	x, ok := md[key]
	if !ok {
		return z, fmt.Errorf("key %q not found in metadata", key)
	}
	v, ok := x.(T)
	if !ok {
		return z, fmt.Errorf("key %q has a different type than expected %T: is %T", key, z, x)
	}
	return v, nil
}

// Copy does a shallow copy of metadata from source.
// Any pointer-based values will still point to the same
// underlying data as the source, but the two maps remain
// distinct.  It uses [maps.Copy].
func (md *Data) Copy(src Data) {
	if src == nil {
		return
	}
	md.init()
	maps.Copy(*md, src)
}

// Clone returns a new Data with the same keys and values.
// Values are shared with md, see [Data.Copy].
func (md Data) Clone() Data {
	c := make(Data, len(md))
	maps.Copy(c, md)
	return c
}
