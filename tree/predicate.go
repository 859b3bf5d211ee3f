// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"reflect"

	"github.com/google/uuid"
)

// Predicate is a reusable matcher over nodes, accepted by every
// traversal, search and removal method. Any function with this
// signature can be used; the constructors below cover the common cases.
type Predicate func(n Node) bool

// All returns a [Predicate] that matches every node.
func All() Predicate {
	return func(n Node) bool { return true }
}

// ByID returns a [Predicate] that matches the node with the given id.
func ByID(id uuid.UUID) Predicate {
	return func(n Node) bool {
		return n.AsTree().ID() == id
	}
}

// ByProperty returns a [Predicate] that matches nodes whose attribute with
// the given name is set and equal to the given value. Values of comparable
// types are compared with ==, and others with [reflect.DeepEqual].
func ByProperty(name string, value any) Predicate {
	return func(n Node) bool {
		v, err := n.AsTree().Attr(name)
		return err == nil && equal(v, value)
	}
}

// HasProperty returns a [Predicate] that matches nodes
// with an attribute of the given name.
func HasProperty(name string) Predicate {
	return func(n Node) bool {
		return n.AsTree().HasData(name)
	}
}

// Not returns a [Predicate] that matches nodes not matched by p.
func Not(p Predicate) Predicate {
	return func(n Node) bool { return !p(n) }
}

// And returns a [Predicate] that matches nodes matched by all of ps.
func And(ps ...Predicate) Predicate {
	return func(n Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Or returns a [Predicate] that matches nodes matched by any of ps.
func Or(ps ...Predicate) Predicate {
	return func(n Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// equal compares two attribute values without panicking
// on uncomparable dynamic types such as maps and slices.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va := reflect.ValueOf(a)
	if va.Type() != reflect.TypeOf(b) {
		return false
	}
	if va.Comparable() && reflect.ValueOf(b).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
