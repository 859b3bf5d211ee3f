// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query_test

import (
	"testing"

	"github.com/adrg/strutil/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valsr/psb/base/metadata"
	. "github.com/valsr/psb/query"
	"github.com/valsr/psb/tree"
)

func node(t testing.TB, md metadata.Data, kids ...tree.Node) *tree.NodeBase {
	n := tree.NewNodeBase(md)
	for _, k := range kids {
		_, err := n.AddNode(k)
		require.NoError(t, err)
	}
	return n
}

func TestExpr(t *testing.T) {
	leaf := node(t, metadata.Data{"label": "first", "duration": 12.5})
	parent := node(t, metadata.Data{"label": "first", "count": 3, "len": 2, "type": "drum", "all": true}, leaf)

	tests := []struct {
		src    string
		parent bool
		leaf   bool
	}{
		{`label == "first"`, true, true},
		{`label == "first" && children > 0`, true, false},
		{`count > 2`, true, false},
		{`len == 2`, true, false},
		{`type == "drum"`, true, false},
		{`all && type != nil`, true, false},
		{`filter == nil`, true, true},
		{`duration >= 10`, false, true},
		{`missing == nil`, true, true},
		{`depth == 1`, false, true},
		{`label startsWith "fi"`, true, true},
		{`label`, false, false},
	}
	for _, test := range tests {
		match, err := Expr(test.src)
		require.NoError(t, err, test.src)
		assert.Equal(t, test.parent, match(parent), test.src)
		assert.Equal(t, test.leaf, match(leaf), test.src)
	}

	match, err := Expr(`id == "` + leaf.ID().String() + `"`)
	require.NoError(t, err)
	assert.Equal(t, []tree.Node{leaf}, parent.FindNodes(match, true))
}

func TestExprErrors(t *testing.T) {
	_, err := Expr(`label ==`)
	assert.Error(t, err)
	_, err = Expr(`1 + 2`)
	assert.Error(t, err)
}

func TestEnv(t *testing.T) {
	kid := node(t, metadata.Data{"children": "shadowed"})
	root := node(t, metadata.Data{"label": "root"}, kid)
	env := Env(root)
	assert.Equal(t, "root", env["label"])
	assert.Equal(t, 1, env[ChildrenVar])
	assert.Equal(t, 0, env[DepthVar])
	assert.Equal(t, root.ID().String(), env[IDVar])
	assert.Equal(t, 0, Env(kid)[ChildrenVar])
}

func TestSimilar(t *testing.T) {
	n := node(t, metadata.Data{"label": "Introduction", "count": 3})
	assert.True(t, Similar("label", "introduction", 1)(n))
	assert.True(t, Similar("label", "Introdcution", 0.8)(n))
	assert.False(t, Similar("label", "Outro", 0.8)(n))
	assert.False(t, Similar("count", "3", 0)(n))
	assert.False(t, Similar("missing", "", 0)(n))

	metric := metrics.NewLevenshtein()
	assert.Equal(t, 1.0, Similarity("", "", metric))
	assert.InDelta(t, 0.75, Similarity("abcd", "abce", metric), 1e-9)
}

func TestFold(t *testing.T) {
	n := node(t, metadata.Data{"label": "ΟΔΟΣ", "count": 3})
	assert.True(t, Fold("label", "οδος")(n))
	assert.True(t, Fold("label", "Οδοσ")(n))
	assert.False(t, Fold("label", "οδο")(n))
	assert.False(t, Fold("count", "3")(n))
}
