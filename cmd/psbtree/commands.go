// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/valsr/psb/query"
	"github.com/valsr/psb/tree"
	"github.com/valsr/psb/treeio"
)

func newDumpCommand(ctx *commandContext) *cobra.Command {
	var hideIDs bool

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the tree in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := treeio.Open(args[0])
			if err != nil {
				return err
			}
			opts := ctx.cfg.DumpOptions()
			if hideIDs {
				opts.HideIDs = true
			}
			out := cmd.OutOrStdout()
			return writeDump(out, n, opts, newPalette(useColor(ctx.cfg.Color, out)))
		},
	}

	cmd.Flags().BoolVar(&hideIDs, "hide-ids", false, "Omit the session ids of the nodes")
	return cmd
}

// dumpString returns the dump of the tree from the given node down.
func dumpString(n tree.Node, opts tree.DumpOptions) (string, error) {
	var b strings.Builder
	if err := tree.Dump(&b, n, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeDump(w io.Writer, n tree.Node, opts tree.DumpOptions, p *palette) error {
	s, err := dumpString(n, opts)
	if err != nil {
		return err
	}
	dataIndent := opts.DataIndent
	if dataIndent == "" {
		dataIndent = " "
	}
	var b strings.Builder
	for line := range strings.Lines(s) {
		b.WriteString(p.dumpLine(strings.TrimSuffix(line, "\n"), dataIndent))
		b.WriteByte('\n')
	}
	_, err = io.WriteString(w, b.String())
	return err
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	var where string
	var like, fold []string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "find FILE",
		Short: "List the nodes of the tree in a file that match all of the given conditions",
		Long: `List the nodes of the tree in a file that match all of the given conditions.
With no conditions, every node is listed.

  --where 'label == "drums" && children > 0'   expression over the attributes
  --like label=drms                            fuzzy match of a string attribute
  --fold label=DRUMS                           case-insensitive match of a string attribute`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = ctx.cfg.Fuzzy
			}
			match, err := findPredicate(where, like, fold, threshold)
			if err != nil {
				return err
			}
			n, err := treeio.Open(args[0])
			if err != nil {
				return err
			}
			found := slices.Collect(n.AsTree().IterateNodes(match, true, true))
			slog.Debug("find", "file", args[0], "matches", len(found))
			out := cmd.OutOrStdout()
			if len(found) == 0 {
				fmt.Fprintln(out, "No matching nodes")
				return nil
			}
			fmt.Fprintln(out, renderFound(found, ctx.cfg.ShowIDs))
			fmt.Fprintf(out, "%d matching nodes\n", len(found))
			return nil
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Expression that matching nodes satisfy")
	cmd.Flags().StringArrayVar(&like, "like", nil, "name=value fuzzy match (repeatable)")
	cmd.Flags().StringArrayVar(&fold, "fold", nil, "name=value case-insensitive match (repeatable)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Similarity threshold of --like (default from config)")
	return cmd
}

// findPredicate returns the conjunction of the conditions of the find command.
func findPredicate(where string, like, fold []string, threshold float64) (tree.Predicate, error) {
	var preds []tree.Predicate
	if strings.TrimSpace(where) != "" {
		p, err := query.Expr(where)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	for _, l := range like {
		name, value, ok := strings.Cut(l, "=")
		if !ok {
			return nil, fmt.Errorf("--like %q is not name=value", l)
		}
		preds = append(preds, query.Similar(name, value, threshold))
	}
	for _, f := range fold {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("--fold %q is not name=value", f)
		}
		preds = append(preds, query.Fold(name, value))
	}
	return tree.And(preds...), nil
}

// renderFound returns the table of the given nodes.
func renderFound(nodes []tree.Node, showIDs bool) string {
	headers := []string{"Path", "Label", "Children", "Attributes"}
	if showIDs {
		headers = slices.Insert(headers, 1, "ID")
	}
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		nb := n.AsTree()
		md := nb.Data()
		var attrs []string
		for _, k := range md.Keys() {
			if k == "label" {
				continue
			}
			attrs = append(attrs, fmt.Sprintf("%s=%v", k, md[k]))
		}
		row := []string{nb.Path(), md.Label(), fmt.Sprint(nb.NumChildren()), strings.Join(attrs, ", ")}
		if showIDs {
			row = slices.Insert(row, 1, nb.ID().String())
		}
		rows = append(rows, row)
	}
	aligns := make([]columnAlignment, len(headers))
	aligns[len(headers)-2] = alignRight
	return renderTable(headers, rows, aligns)
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a tree file to the format of the extension of OUT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := treeio.Open(args[0])
			if err != nil {
				return err
			}
			if err := treeio.Save(args[1], n); err != nil {
				return err
			}
			slog.Info("converted", "from", args[0], "to", args[1])
			return nil
		},
	}
}

func newDiffCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "diff A B",
		Short: "Show the differences between the trees in two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := ctx.cfg.DumpOptions()
			opts.HideIDs = true
			var dumps [2]string
			for i, path := range args {
				n, err := treeio.Open(path)
				if err != nil {
					return err
				}
				if dumps[i], err = dumpString(n, opts); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			return writeDiff(out, dumps[0], dumps[1], newPalette(useColor(ctx.cfg.Color, out)))
		},
	}
}

// lineDiff returns the line by line differences between a and b.
func lineDiff(a, b string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	return dmp.DiffCharsToLines(diffs, lines)
}

// writeDiff writes the lines of a and b prefixed with "- " for removed
// lines, "+ " for added lines and "  " for common lines. It writes
// nothing if a and b are equal.
func writeDiff(w io.Writer, a, b string, p *palette) error {
	if a == b {
		return nil
	}
	var sb strings.Builder
	for _, d := range lineDiff(a, b) {
		for line := range strings.Lines(d.Text) {
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				sb.WriteString(p.insert.Sprint("+ " + line))
			case diffmatchpatch.DiffDelete:
				sb.WriteString(p.delete.Sprint("- " + line))
			default:
				sb.WriteString("  " + line)
			}
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
