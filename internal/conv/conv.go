// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conv implements the format-conversion engine: decode a document in
// one format into a confval.Value, encode that value in another format.
//
// The engine does no I/O and keeps no state between calls; callers hand it
// text and get text (or a typed error) back. Every call is independent, so
// concurrent use needs no coordination.
package conv

import (
	"fmt"

	"github.com/pdiddy/confconv/internal/format"
	"github.com/pdiddy/confconv/pkg/confval"
)

// defaultIndent is the indent width used when Options.Indent is unset.
const defaultIndent = 2

// Options control serialization output.
type Options struct {
	// Pretty selects multi-line indented output. For JSON it switches from
	// the compact single-line form; YAML and TOML are line-oriented either
	// way, so it tunes table indenting and array layout.
	Pretty bool

	// Indent is the number of spaces per nesting level. Zero means the
	// default of two.
	Indent int
}

func (o Options) indent() int {
	if o.Indent <= 0 {
		return defaultIndent
	}
	return o.Indent
}

// ParseError reports that input text is not valid syntax for its declared
// format. Line and Column are 1-based and zero when the underlying parser
// did not supply a position.
type ParseError struct {
	Format format.Format
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s parse error at line %d, column %d: %v", e.Format.Name(), e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s parse error at line %d: %v", e.Format.Name(), e.Line, e.Err)
	default:
		return fmt.Sprintf("%s parse error: %v", e.Format.Name(), e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializeError reports that a value cannot be represented in the target
// format. Path locates the offending node, e.g. "$.servers[2].timeout".
type SerializeError struct {
	Format format.Format
	Path   string
	Reason string
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("cannot encode as %s: %s at %s", e.Format.Name(), e.Reason, e.Path)
}

// Convert decodes input as the from format and encodes the result as the to
// format. It is all-or-nothing: the first error aborts the conversion and no
// output text is produced.
func Convert(input string, from, to format.Format, opts Options) (string, error) {
	v, err := Decode(input, from)
	if err != nil {
		return "", err
	}
	return Encode(v, to, opts)
}

// Decode parses input text in the given format into a document tree.
func Decode(input string, f format.Format) (confval.Value, error) {
	switch f {
	case format.JSON:
		return decodeJSON(input)
	case format.YAML:
		return decodeYAML(input)
	case format.TOML:
		return decodeTOML(input)
	}
	return confval.Value{}, fmt.Errorf("unsupported format %q", f)
}

// Encode serializes a document tree in the given format.
func Encode(v confval.Value, f format.Format, opts Options) (string, error) {
	switch f {
	case format.JSON:
		return encodeJSON(v, opts)
	case format.YAML:
		return encodeYAML(v, opts)
	case format.TOML:
		return encodeTOML(v, opts)
	}
	return "", fmt.Errorf("unsupported format %q", f)
}
