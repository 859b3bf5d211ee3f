// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valsr/psb/base/metadata"
	. "github.com/valsr/psb/project"
	"github.com/valsr/psb/tree"
	"github.com/valsr/psb/treeio"
)

const kickPrint = "d41d8cd98f00b204e9800998ecf8427e"

// sampleProject returns a project with a drums category holding two
// files, a loose file, and a lane. The files are under dir.
func sampleProject(t testing.TB, dir string) *Project {
	p := New()
	drums, err := p.AddCategory(p.Files, "drums")
	require.NoError(t, err)
	_, err = p.AddFile(drums, "kick", &MediaInfo{File: filepath.Join(dir, "audio", "kick.wav"), Duration: 1500 * time.Millisecond, Fingerprint: kickPrint})
	require.NoError(t, err)
	_, err = p.AddFile(drums, "snare", &MediaInfo{File: filepath.Join(dir, "audio", "snare.wav"), Duration: time.Second, Fingerprint: "8f14e45fceea167a5a36dedd4bea2543"})
	require.NoError(t, err)
	_, err = p.AddFile(p.Files, "broken", &MediaInfo{File: "/elsewhere/broken.mp3", Fingerprint: kickPrint, Error: "no decoder", ErrorDebug: "missing plugin"})
	require.NoError(t, err)
	_, err = p.AddCategory(p.Lanes, "lane 1")
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	p := New()
	assert.Equal(t, FilesLabel, p.Files.Label())
	assert.Equal(t, LanesLabel, p.Lanes.Label())
	assert.True(t, p.Files.IsCategory())
	assert.Equal(t, p.Files.ID().String(), p.Files.NodeID())
	assert.NotEqual(t, p.Files.NodeID(), p.Lanes.NodeID())
}

func TestAdd(t *testing.T) {
	p := sampleProject(t, "/music")
	drums := p.Files.NodeAt(0).(*FileNode)
	assert.Equal(t, "drums", drums.Label())
	assert.True(t, drums.IsCategory())
	require.Equal(t, 2, drums.NumChildren())
	kick := drums.NodeAt(0).(*FileNode)
	assert.True(t, kick.IsFile())
	assert.Equal(t, "kick", kick.Label())
	assert.True(t, kick.Info.OK())
	assert.Len(t, p.Files.FileNodes(), 3)

	_, err := p.AddCategory(kick, "under a file")
	assert.ErrorIs(t, err, ErrNotCategory)
	_, err = p.AddCategory(NewFileNode("elsewhere"), "x")
	assert.ErrorIs(t, err, ErrForeignNode)
	_, err = p.AddCategory(nil, "x")
	assert.ErrorIs(t, err, tree.ErrInvalidArgument)
	_, err = p.AddFile(drums, "empty", nil)
	assert.ErrorIs(t, err, tree.ErrInvalidArgument)
	assert.Equal(t, 2, drums.NumChildren())
}

func TestFind(t *testing.T) {
	p := sampleProject(t, "/music")
	found := p.FindByFingerprint(kickPrint)
	require.Len(t, found, 2)
	// immediate children come before the files of categories
	assert.Equal(t, "broken", found[0].Label())
	assert.Equal(t, "kick", found[1].Label())
	assert.False(t, found[0].Info.OK())
	assert.Empty(t, p.FindByFingerprint("0cc175b9c0f1b6a831c399e269772661"))
	assert.Empty(t, p.FindByFingerprint(""))

	lane := p.Lanes.NodeAt(0).(*FileNode)
	assert.Equal(t, lane, p.FindByNodeID(lane.NodeID()))
	assert.Equal(t, p.Files, p.FindByNodeID(p.Files.NodeID()))
	assert.Nil(t, p.FindByNodeID("missing"))

	// nodes of other types attached directly to a tree are skipped
	_, err := p.Lanes.AddNode(tree.NewNodeBase(metadata.Data{metadata.NodeIDKey: "plain"}))
	require.NoError(t, err)
	assert.Nil(t, p.FindByNodeID("plain"))
}

func TestOpenFingerprints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	doc := `{"version": "1.0.0", "root": {"children": [
		{"attributes": {"label": "files"}, "children": [
			{"attributes": {"label": "kick", "media": {"file": "kick.wav", "duration": "1.5s", "fingerprint": "` + kickPrint + `"}}},
			{"attributes": {"label": "new", "media": {"file": "new.wav", "fingerprint": 0}}}]},
		{"attributes": {"label": "lanes"}}]}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	p, err := Open(path)
	require.NoError(t, err)
	files := p.Files.FileNodes()
	require.Len(t, files, 2)
	assert.Equal(t, kickPrint, files[0].Info.Fingerprint)
	assert.Equal(t, 1500*time.Millisecond, files[0].Info.Duration)
	assert.Equal(t, "", files[1].Info.Fingerprint)
	assert.Equal(t, []*FileNode{files[0]}, p.FindByFingerprint(kickPrint))
	assert.Empty(t, p.FindByFingerprint(""))
}

func TestCloneFileNode(t *testing.T) {
	p := sampleProject(t, "/music")
	kick := p.Files.NodeAt(0).AsTree().NodeAt(0).(*FileNode)
	c := kick.Clone(true).(*FileNode)
	assert.NotEqual(t, kick.ID(), c.ID())
	assert.Equal(t, kick.NodeID(), c.NodeID())
	require.NotNil(t, c.Info)
	assert.NotSame(t, kick.Info, c.Info)
	assert.Equal(t, *kick.Info, *c.Info)

	cat := p.Files.Clone(true).(*FileNode)
	assert.True(t, cat.IsCategory())
	assert.Len(t, cat.FileNodes(), 3)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	p := sampleProject(t, dir)
	for _, name := range []string{"project.json", "project.yaml", "project.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, p.Save(path))
		assert.Equal(t, path, p.File)

		// file paths under the project directory are saved relative to it
		doc, err := treeio.OpenDocument(path)
		require.NoError(t, err)
		kick := doc.Root.Children[0].Children[0].Children[0]
		media := kick.Attributes["media"].(map[string]any)
		assert.Equal(t, filepath.Join("audio", "kick.wav"), media["file"])
		broken := doc.Root.Children[0].Children[1].Attributes["media"].(map[string]any)
		assert.Equal(t, "/elsewhere/broken.mp3", broken["file"])

		l, err := Open(path)
		require.NoError(t, err, name)
		assert.Equal(t, path, l.File)
		assert.Nil(t, l.Files.Parent())
		assert.Nil(t, l.Lanes.Parent())
		assert.Equal(t, p.Files.NodeID(), l.Files.NodeID())

		want := p.Files.FileNodes()
		got := l.Files.FileNodes()
		require.Len(t, got, len(want), name)
		for i := range want {
			assert.Equal(t, want[i].Label(), got[i].Label())
			assert.Equal(t, want[i].NodeID(), got[i].NodeID())
			assert.Equal(t, *want[i].Info, *got[i].Info)
			assert.NotEqual(t, want[i].ID(), got[i].ID())
			assert.False(t, got[i].HasData("media"))
		}
		assert.Equal(t, "lane 1", l.Lanes.NodeAt(0).(*FileNode).Label())
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.json")
	require.NoError(t, treeio.Save(path, tree.NewNodeBase()))

	p := sampleProject(t, dir)
	files := p.Files
	assert.ErrorIs(t, p.Load(path), ErrInvalidProject)
	assert.Same(t, files, p.Files)

	bad := filepath.Join(dir, "bad.json")
	doc := `{"version": "1.0.0", "root": {"children": [
		{"attributes": {"label": "files", "media": {"duration": 3}}},
		{"attributes": {"label": "lanes"}}]}}`
	require.NoError(t, os.WriteFile(bad, []byte(doc), 0o644))
	_, err := Open(bad)
	assert.ErrorIs(t, err, ErrInvalidMedia)

	_, err = Open(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDump(t *testing.T) {
	p := New()
	var b strings.Builder
	require.NoError(t, p.Dump(&b, tree.DumpOptions{Indent: "  ", DataIndent: "-", HideIDs: true}))
	s := b.String()
	assert.True(t, strings.HasPrefix(s, "Project\nFile: \nNode\n-Data:\n"), s)
	assert.Contains(t, s, "-label:files\n")
	assert.Contains(t, s, "-label:lanes\n")
	assert.Contains(t, s, "-node_id:"+p.Files.NodeID()+"\n")
}
