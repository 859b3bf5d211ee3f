// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treeio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valsr/psb/base/metadata"
	"github.com/valsr/psb/tree"
	"github.com/valsr/psb/tree/testdata"
	. "github.com/valsr/psb/treeio"
)

// sampleTree returns a root with two children, the first of which has
// a child of its own, using attribute values that every format keeps.
func sampleTree(t testing.TB) *tree.NodeBase {
	root := tree.NewNodeBase(metadata.Data{"label": "files", "count": int64(3), "ratio": 0.5})
	a := tree.NewNodeBase(metadata.Data{"label": "a", "tags": []any{"x", "y"}, "enabled": true})
	b := tree.NewNodeBase(metadata.Data{"label": "b", "meta": map[string]any{"order": int64(1)}})
	_, err := root.AddNode(a)
	require.NoError(t, err)
	_, err = root.AddNode(b)
	require.NoError(t, err)
	_, err = a.AddNode(tree.NewNodeBase(metadata.Data{"label": "a1"}))
	require.NoError(t, err)
	return root
}

func record(t testing.TB, n tree.Node) *Record {
	rec, err := NewRecord(n)
	require.NoError(t, err)
	return rec
}

var ignoreIDs = cmpopts.IgnoreFields(Record{}, "ID")

func TestRoundTrip(t *testing.T) {
	root := sampleTree(t)
	for _, format := range FormatValues() {
		t.Run(format.String(), func(t *testing.T) {
			b, err := Marshal(root, format)
			require.NoError(t, err)
			n, err := Unmarshal(b, format)
			require.NoError(t, err)

			if diff := cmp.Diff(record(t, root), record(t, n), ignoreIDs); diff != "" {
				t.Errorf("decoded tree mismatch (-want +got):\n%s", diff)
			}
			assert.Nil(t, n.AsTree().Parent())
		})
	}
}

func TestRoundTripValues(t *testing.T) {
	values := metadata.Data{
		"whole":  12.0,
		"neg":    -3.0,
		"large":  1e21,
		"half":   2.5,
		"int":    int64(12),
		"nested": map[string]any{"w": 2.0, "list": []any{1.0, int64(2)}},
	}
	for _, format := range FormatValues() {
		t.Run(format.String(), func(t *testing.T) {
			b, err := Marshal(tree.NewNodeBase(values.Clone()), format)
			require.NoError(t, err)
			n, err := Unmarshal(b, format)
			require.NoError(t, err)
			assert.Equal(t, map[string]any(values), map[string]any(n.AsTree().Data()))

			f, err := tree.AttrAs[float64](n, "whole")
			require.NoError(t, err)
			assert.Equal(t, 12.0, f)
		})
	}
}

func TestRoundTripNil(t *testing.T) {
	n := tree.NewNodeBase(metadata.Data{"gone": nil, "nested": map[string]any{"x": nil}})
	for _, format := range []Format{JSON, YAML} {
		b, err := Marshal(n, format)
		require.NoError(t, err)
		d, err := Unmarshal(b, format)
		require.NoError(t, err)
		assert.True(t, d.AsTree().HasData("gone"), format)
		assert.Nil(t, d.AsTree().Data()["gone"], format)
		assert.Equal(t, map[string]any{"x": nil}, d.AsTree().Data()["nested"], format)
	}

	_, err := Marshal(n, TOML)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	_, err = Marshal(tree.NewNodeBase(metadata.Data{"nested": map[string]any{"x": nil}}), TOML)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestDecodeFreshIDs(t *testing.T) {
	root := sampleTree(t)
	b, err := Marshal(root, JSON)
	require.NoError(t, err)
	n, err := Unmarshal(b, JSON)
	require.NoError(t, err)

	orig := map[string]bool{}
	for k := range root.IterateNodes(nil, true, true) {
		orig[k.AsTree().ID().String()] = true
	}
	count := 0
	for k := range n.AsTree().IterateNodes(nil, true, true) {
		assert.False(t, orig[k.AsTree().ID().String()])
		count++
	}
	assert.Equal(t, 4, count)
}

func TestEncodeJSON(t *testing.T) {
	n := tree.NewNodeBase(metadata.Data{"label": "root"})
	b, err := Marshal(n, JSON)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"version": "1.0.0"`)
	assert.Contains(t, s, `"id": "`+n.ID().String()+`"`)
	assert.Contains(t, s, `"label": "root"`)
	assert.NotContains(t, s, "children")
}

func TestDecodeVersion(t *testing.T) {
	tests := []struct {
		doc  string
		err  error
		good bool
	}{
		{`{"version": "1.0.0", "root": {}}`, nil, true},
		{`{"version": "1.4.2", "root": {}}`, nil, true},
		{`{"version": "2.0.0", "root": {}}`, ErrUnsupportedVersion, false},
		{`{"version": "0.9.0", "root": {}}`, ErrUnsupportedVersion, false},
		{`{"version": "one", "root": {}}`, ErrUnsupportedVersion, false},
		{`{"root": {}}`, ErrUnsupportedVersion, false},
		{`{"version": "1.0.0"}`, ErrInvalidDocument, false},
		{`{"version": "1.0.0", "root": {"children": [null]}}`, ErrInvalidDocument, false},
		{`{"version": "1.0.0", "root": {"attributes": {"parent": 1}}}`, ErrInvalidDocument, false},
		{``, ErrInvalidDocument, false},
		{`{"version": `, ErrInvalidDocument, false},
	}
	for _, test := range tests {
		n, err := Unmarshal([]byte(test.doc), JSON)
		if test.good {
			assert.NoError(t, err, test.doc)
			assert.NotNil(t, n, test.doc)
			continue
		}
		assert.ErrorIs(t, err, test.err, test.doc)
		assert.Nil(t, n, test.doc)
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
version: 1.0.0
root:
  attributes:
    label: files
  children:
    - attributes:
        label: a
        count: 2
    - attributes:
        label: b
`
	n, err := Unmarshal([]byte(doc), YAML)
	require.NoError(t, err)
	nb := n.AsTree()
	assert.Equal(t, "files", nb.Data().Label())
	require.Equal(t, 2, nb.NumChildren())
	assert.Equal(t, "a", nb.NodeAt(0).AsTree().Data().Label())
	assert.Equal(t, int64(2), nb.NodeAt(0).AsTree().Data()["count"])
	assert.Equal(t, "b", nb.NodeAt(1).AsTree().Data().Label())
}

func TestDecodeTOML(t *testing.T) {
	doc := `
version = "1.0.0"

[root.attributes]
label = "lanes"

[[root.children]]
  [root.children.attributes]
  label = "lane 1"
`
	n, err := Unmarshal([]byte(doc), TOML)
	require.NoError(t, err)
	assert.Equal(t, "lanes", n.AsTree().Data().Label())
	assert.Equal(t, "lane 1", n.AsTree().NodeAt(0).AsTree().Data().Label())
}

func TestWithNewNode(t *testing.T) {
	root := testdata.NewNodeEmbed()
	_, err := root.AddNode(testdata.NewNodeEmbed())
	require.NoError(t, err)
	b, err := Marshal(root, YAML)
	require.NoError(t, err)

	n, err := Unmarshal(b, YAML, WithNewNode(func(rec *Record) tree.Node {
		return &testdata.NodeEmbed{Mbr1: rec.Attributes["kind"].(string)}
	}))
	require.NoError(t, err)
	ne, ok := n.(*testdata.NodeEmbed)
	require.True(t, ok)
	assert.Equal(t, "embed", ne.Mbr1)
	kid, ok := ne.NodeAt(0).(*testdata.NodeEmbed)
	require.True(t, ok)
	assert.Equal(t, 1, kid.Added)

	_, err = Unmarshal(b, YAML, WithNewNode(func(rec *Record) tree.Node { return nil }))
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestFormat(t *testing.T) {
	tests := map[string]Format{
		"tree.json":      JSON,
		"a/b/tree.YAML":  YAML,
		"tree.yml":       YAML,
		"/tmp/tree.toml": TOML,
	}
	for path, want := range tests {
		f, err := FormatFromPath(path)
		assert.NoError(t, err, path)
		assert.Equal(t, want, f, path)
	}
	_, err := FormatFromPath("tree.xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = FormatFromPath("tree")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	var f Format
	require.NoError(t, f.SetString("TOML"))
	assert.Equal(t, TOML, f)
	assert.ErrorIs(t, f.SetString("xml"), ErrUnknownFormat)
	require.NoError(t, f.UnmarshalText([]byte("yaml")))
	assert.Equal(t, YAML, f)
	text, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "yaml", string(text))
	assert.Equal(t, "Format(7)", Format(7).String())

	_, err = Marshal(tree.NewNodeBase(), Format(7))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Unmarshal([]byte("{}"), Format(7))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveOpen(t *testing.T) {
	root := sampleTree(t)
	dir := t.TempDir()
	for _, name := range []string{"tree.json", "tree.yaml", "tree.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, root))
		_, err := os.Stat(LockPath(path))
		assert.NoError(t, err)

		n, err := Open(path)
		require.NoError(t, err)
		if diff := cmp.Diff(record(t, root), record(t, n), ignoreIDs); diff != "" {
			t.Errorf("%s: opened tree mismatch (-want +got):\n%s", name, diff)
		}
	}

	_, err := Open(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, Save(filepath.Join(dir, "tree.txt"), root), ErrUnknownFormat)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(strings.Repeat("{", 3)), 0o644))
	_, err = Open(bad)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}
