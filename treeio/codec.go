// Copyright (c) 2026, The psb Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package treeio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/valsr/psb/base/errors"
	"github.com/valsr/psb/base/metadata"
	"github.com/valsr/psb/tree"
)

// Encode writes the document for the tree from the given node down
// to the given writer in the given format.
func Encode(w io.Writer, n tree.Node, format Format) error {
	doc, err := NewDocument(n)
	if err != nil {
		return err
	}
	return EncodeDocument(w, doc, format)
}

// EncodeDocument writes the given document in the given format.
// Floats with a whole value keep a decimal point, so that they decode
// as floats. TOML has no null, so a nil attribute value is an
// [ErrInvalidDocument] in TOML.
func EncodeDocument(w io.Writer, doc *Document, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc.withValues(jsonValue))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc.withValues(yamlValue)); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		if err := doc.Root.checkValues(tomlValue); err != nil {
			return fmt.Errorf("treeio.Encode: %v: %w", format, err)
		}
		enc := toml.NewEncoder(w)
		enc.SetIndentTables(true)
		return enc.Encode(doc)
	}
	return fmt.Errorf("treeio.Encode: %v: %w", format, ErrUnknownFormat)
}

// wholeFloat returns the text of v with a decimal point
// if v is a finite float with a whole value.
func wholeFloat(v any) (string, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return "", false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return "", false
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, true
}

func jsonValue(v any) any {
	if s, ok := wholeFloat(v); ok {
		return json.Number(s)
	}
	return v
}

func yamlValue(v any) any {
	if s, ok := wholeFloat(v); ok {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
	}
	return v
}

func tomlValue(v any) error {
	if v == nil {
		return fmt.Errorf("nil value: %w", ErrInvalidDocument)
	}
	return nil
}

// withValues returns a copy of the document with every attribute value,
// including those nested in maps and slices, replaced by fun.
func (d *Document) withValues(fun func(v any) any) *Document {
	return &Document{Version: d.Version, Root: d.Root.withValues(fun)}
}

func (r *Record) withValues(fun func(v any) any) *Record {
	if r == nil {
		return nil
	}
	c := &Record{ID: r.ID}
	if r.Attributes != nil {
		c.Attributes = make(map[string]any, len(r.Attributes))
		for k, v := range r.Attributes {
			c.Attributes[k] = mapValue(v, fun)
		}
	}
	for _, kid := range r.Children {
		c.Children = append(c.Children, kid.withValues(fun))
	}
	return c
}

func mapValue(v any, fun func(v any) any) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return v
		}
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = mapValue(e, fun)
		}
		return m
	case metadata.Data:
		return mapValue(map[string]any(x), fun)
	case []any:
		if x == nil {
			return v
		}
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = mapValue(e, fun)
		}
		return s
	}
	return fun(v)
}

// checkValues returns the first error of check for the attribute values
// of the record tree, including those nested in maps and slices.
func (r *Record) checkValues(check func(v any) error) error {
	if r == nil {
		return nil
	}
	var err error
	for k, v := range r.Attributes {
		mapValue(v, func(e any) any {
			if err == nil {
				if cerr := check(e); cerr != nil {
					err = fmt.Errorf("attribute %q: %w", k, cerr)
				}
			}
			return e
		})
		if err != nil {
			return err
		}
	}
	for _, kid := range r.Children {
		if err := kid.checkValues(check); err != nil {
			return err
		}
	}
	return nil
}

// Marshal returns the encoding of the tree from
// the given node down in the given format.
func Marshal(n tree.Node, format Format) ([]byte, error) {
	var b bytes.Buffer
	if err := Encode(&b, n, format); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decode reads a document in the given format from the
// given reader and returns a new tree built from it.
func Decode(r io.Reader, format Format, opts ...Option) (tree.Node, error) {
	doc, err := DecodeDocument(r, format)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

// DecodeDocument reads a document in the given format. Numbers in the
// attributes are decoded as int64 or float64 in every format.
func DecodeDocument(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(doc)
	case TOML:
		err = toml.NewDecoder(r).Decode(doc)
	default:
		return nil, fmt.Errorf("treeio.Decode: %v: %w", format, ErrUnknownFormat)
	}
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("treeio.Decode: empty %v document: %w", format, ErrInvalidDocument)
	}
	if err != nil {
		return nil, fmt.Errorf("treeio.Decode: %v: %w: %w", format, ErrInvalidDocument, err)
	}
	return doc, nil
}

// Unmarshal returns a new tree built from the given
// encoded document in the given format.
func Unmarshal(data []byte, format Format, opts ...Option) (tree.Node, error) {
	return Decode(bytes.NewReader(data), format, opts...)
}

// normalize converts the numbers of decoded attribute values to int64
// or float64, as each format decodes them differently.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if !strings.ContainsAny(x.String(), ".eE") {
			if i, err := x.Int64(); err == nil {
				return i
			}
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return int64(x)
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	}
	return v
}
