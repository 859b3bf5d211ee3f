// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// useColor returns whether output to w should be colored in the given mode.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// palette holds the colors of the output, which are
// no-ops when color is disabled.
type palette struct {
	node   *color.Color
	header *color.Color
	key    *color.Color
	insert *color.Color
	delete *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		node:   color.New(color.FgCyan, color.Bold),
		header: color.New(color.Faint),
		key:    color.New(color.FgYellow),
		insert: color.New(color.FgGreen),
		delete: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.node, p.header, p.key, p.insert, p.delete} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// dumpLine colors a line of a tree dump made with the given data indent.
func (p *palette) dumpLine(line, dataIndent string) string {
	trimmed := strings.TrimLeft(line, " \t")
	lead := line[:len(line)-len(trimmed)]
	if strings.HasPrefix(trimmed, "Node") {
		return lead + p.node.Sprint(trimmed)
	}
	rest := trimmed
	if strings.TrimSpace(dataIndent) != "" {
		var ok bool
		if rest, ok = strings.CutPrefix(trimmed, dataIndent); !ok {
			return line
		}
		lead += dataIndent
	}
	if rest == "Data:" || rest == "Children:" {
		return lead + p.header.Sprint(rest)
	}
	if k, v, ok := strings.Cut(rest, ":"); ok {
		return lead + p.key.Sprint(k) + ":" + v
	}
	return line
}
