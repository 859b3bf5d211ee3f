// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query provides [tree.Predicate] constructors beyond the
// exact matches of package tree: boolean expressions over the
// attributes of a node, fuzzy string matches, and case-insensitive
// string matches.
package query

import (
	"fmt"
	"log/slog"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/expr-lang/expr"
	"golang.org/x/text/cases"

	"github.com/valsr/psb/tree"
)

// Environment variables that are always defined in [Expr] expressions.
const (
	// IDVar is the id of the node, as a string.
	IDVar = "id"

	// ChildrenVar is the number of children of the node.
	ChildrenVar = "children"

	// DepthVar is the number of ancestors of the node.
	DepthVar = "depth"
)

// Expr returns a [tree.Predicate] for the given boolean expression in
// the expr language (see https://expr-lang.org). The attributes of a node
// are variables of the expression, along with [IDVar], [ChildrenVar] and
// [DepthVar], which take precedence over attributes of the same name.
// Attributes that a node does not have are nil, so that
//
//	label == "first" && children > 0
//
// matches the nodes labeled first that have children. The builtin
// functions of the language are disabled, so that attributes such as
// count, len or type are variables. Operators such as startsWith, in
// and matches remain. A node for which the expression fails at runtime,
// or does not evaluate to a bool, does not match. Expr returns an error
// if the expression does not compile.
func Expr(src string) (tree.Predicate, error) {
	prog, err := expr.Compile(src, expr.Env(map[string]any{}), expr.AllowUndefinedVariables(), expr.DisableAllBuiltins(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query.Expr: %q: %w", src, err)
	}
	return func(n tree.Node) bool {
		out, err := expr.Run(prog, Env(n))
		if err != nil {
			slog.Debug("query.Expr: no match", "expr", src, "node", n, "err", err)
			return false
		}
		b, ok := out.(bool)
		return ok && b
	}, nil
}

// Env returns the variables that [Expr] expressions see for the given node.
func Env(n tree.Node) map[string]any {
	nb := n.AsTree()
	md := nb.Data()
	env := make(map[string]any, len(md)+3)
	for k, v := range md {
		env[k] = v
	}
	env[IDVar] = nb.ID().String()
	env[ChildrenVar] = nb.NumChildren()
	env[DepthVar] = nb.Depth()
	return env
}

// Similar returns a [tree.Predicate] that matches nodes with a string
// attribute of the given name whose Levenshtein similarity to the given
// value, ignoring case, is at least the given threshold between 0 and 1.
func Similar(name, value string, threshold float64) tree.Predicate {
	metric := metrics.NewLevenshtein()
	metric.CaseSensitive = false
	return func(n tree.Node) bool {
		s, err := tree.AttrAs[string](n, name)
		if err != nil {
			return false
		}
		return Similarity(s, value, metric) >= threshold
	}
}

// Similarity returns the similarity of a and b between 0 and 1
// under the given metric. Equal strings, including two empty
// strings, have a similarity of 1.
func Similarity(a, b string, metric strutil.StringMetric) float64 {
	if a == b {
		return 1
	}
	return strutil.Similarity(a, b, metric)
}

// Fold returns a [tree.Predicate] that matches nodes with a string
// attribute of the given name equal to the given value under Unicode
// case folding, so that "ΟΔΟΣ" matches "οδος".
func Fold(name, value string) tree.Predicate {
	folded := cases.Fold().String(value)
	return func(n tree.Node) bool {
		s, err := tree.AttrAs[string](n, name)
		return err == nil && cases.Fold().String(s) == folded
	}
}
