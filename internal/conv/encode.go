// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/confconv/internal/format"
	"github.com/pdiddy/confconv/pkg/confval"
)

// rootPath is the structural path of the document root.
const rootPath = "$"

// --- JSON ---

// encodeJSON writes the tree directly instead of using json.Marshal: the
// ordered mapping has no Go-map equivalent, and integral floats must keep a
// fraction part so 3.0 does not collapse into 3.
func encodeJSON(v confval.Value, opts Options) (string, error) {
	if err := checkFinite(v, rootPath); err != nil {
		return "", err
	}
	var b strings.Builder
	if opts.Pretty {
		writeJSONIndent(&b, v, strings.Repeat(" ", opts.indent()), 0)
	} else {
		writeJSON(&b, v)
	}
	return b.String(), nil
}

// checkFinite rejects NaN and infinities, which YAML and TOML can write but
// JSON cannot.
func checkFinite(v confval.Value, path string) error {
	switch v.Kind() {
	case confval.KindFloat:
		if f := v.Float(); math.IsNaN(f) || math.IsInf(f, 0) {
			return &SerializeError{Format: format.JSON, Path: path, Reason: "JSON cannot represent non-finite numbers"}
		}
	case confval.KindList:
		for i, item := range v.Items() {
			if err := checkFinite(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case confval.KindMap:
		for _, f := range v.Fields() {
			if err := checkFinite(f.Value, path+"."+f.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(b *strings.Builder, v confval.Value) {
	switch v.Kind() {
	case confval.KindNull:
		b.WriteString("null")
	case confval.KindBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case confval.KindInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case confval.KindFloat:
		b.WriteString(floatLexeme(v.Float()))
	case confval.KindString:
		writeJSONString(b, v.Str())
	case confval.KindList:
		b.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSON(b, item)
		}
		b.WriteByte(']')
	case confval.KindMap:
		b.WriteByte('{')
		for i, f := range v.Fields() {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, f.Key)
			b.WriteByte(':')
			writeJSON(b, f.Value)
		}
		b.WriteByte('}')
	}
}

func writeJSONIndent(b *strings.Builder, v confval.Value, indent string, depth int) {
	switch v.Kind() {
	case confval.KindList:
		items := v.Items()
		if len(items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			writeLevel(b, indent, depth+1)
			writeJSONIndent(b, item, indent, depth+1)
		}
		b.WriteByte('\n')
		writeLevel(b, indent, depth)
		b.WriteByte(']')
	case confval.KindMap:
		fields := v.Fields()
		if len(fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			writeLevel(b, indent, depth+1)
			writeJSONString(b, f.Key)
			b.WriteString(": ")
			writeJSONIndent(b, f.Value, indent, depth+1)
		}
		b.WriteByte('\n')
		writeLevel(b, indent, depth)
		b.WriteByte('}')
	default:
		writeJSON(b, v)
	}
}

func writeLevel(b *strings.Builder, indent string, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString(indent)
	}
}

// writeJSONString delegates escaping to the standard marshaler, which never
// fails for a string.
func writeJSONString(b *strings.Builder, s string) {
	data, _ := json.Marshal(s)
	b.Write(data)
}

// floatLexeme renders a finite float so it reads back as a float: a value
// with no fraction or exponent gets a trailing ".0".
func floatLexeme(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// --- YAML ---

func encodeYAML(v confval.Value, opts Options) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(opts.indent())
	if err := enc.Encode(yamlNode(v)); err != nil {
		return "", fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.String(), nil
}

// yamlNode builds the node tree by hand so mapping order survives and every
// scalar carries an explicit tag. The emitter quotes strings like "true" or
// "3" on its own when the tag says they are strings.
func yamlNode(v confval.Value) *yaml.Node {
	switch v.Kind() {
	case confval.KindBool:
		return scalarNode("!!bool", strconv.FormatBool(v.Bool()))
	case confval.KindInt:
		return scalarNode("!!int", strconv.FormatInt(v.Int(), 10))
	case confval.KindFloat:
		return scalarNode("!!float", yamlFloatLexeme(v.Float()))
	case confval.KindString:
		return scalarNode("!!str", v.Str())
	case confval.KindList:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case confval.KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, f := range v.Fields() {
			n.Content = append(n.Content, scalarNode("!!str", f.Key), yamlNode(f.Value))
		}
		return n
	default:
		return scalarNode("!!null", "null")
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloatLexeme(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return floatLexeme(f)
}

// --- TOML ---

// encodeTOML validates the tree against TOML's value space before handing it
// to the marshaler: TOML has no null, arrays must be homogeneous, and the
// document root must be a table. Skipping validation would silently drop or
// mangle data, so a violation is a hard SerializeError with the offending
// path. Table keys are emitted in lexical order.
func encodeTOML(v confval.Value, opts Options) (string, error) {
	if v.Kind() == confval.KindNull {
		return "", &SerializeError{Format: format.TOML, Path: rootPath, Reason: "TOML has no null value"}
	}
	if v.Kind() != confval.KindMap {
		return "", &SerializeError{
			Format: format.TOML,
			Path:   rootPath,
			Reason: fmt.Sprintf("document root must be a table, got %s", v.Kind()),
		}
	}
	if err := validateTOML(v, rootPath); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if opts.Pretty {
		enc.SetIndentTables(true)
		enc.SetArraysMultiline(true)
	}
	if err := enc.Encode(toTOMLGo(v)); err != nil {
		return "", fmt.Errorf("encoding TOML: %w", err)
	}
	return buf.String(), nil
}

// validateTOML walks the tree rejecting nulls and mixed-kind arrays. Integers
// and floats are distinct kinds in TOML, so [1, 2.0] is mixed. A nested list
// counts as one element kind regardless of its contents; each is checked on
// its own.
func validateTOML(v confval.Value, path string) error {
	switch v.Kind() {
	case confval.KindNull:
		return &SerializeError{Format: format.TOML, Path: path, Reason: "TOML has no null value"}
	case confval.KindList:
		items := v.Items()
		var first confval.Kind
		for i, item := range items {
			if i == 0 {
				first = item.Kind()
			} else if item.Kind() != first {
				return &SerializeError{
					Format: format.TOML,
					Path:   fmt.Sprintf("%s[%d]", path, i),
					Reason: fmt.Sprintf("array elements must share one type: element 0 is %s, element %d is %s", first, i, item.Kind()),
				}
			}
			if err := validateTOML(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case confval.KindMap:
		for _, f := range v.Fields() {
			if err := validateTOML(f.Value, path+"."+f.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

// toTOMLGo lowers a validated tree into plain Go values for the marshaler.
func toTOMLGo(v confval.Value) any {
	switch v.Kind() {
	case confval.KindBool:
		return v.Bool()
	case confval.KindInt:
		return v.Int()
	case confval.KindFloat:
		return v.Float()
	case confval.KindString:
		return v.Str()
	case confval.KindList:
		items := make([]any, 0, len(v.Items()))
		for _, item := range v.Items() {
			items = append(items, toTOMLGo(item))
		}
		return items
	case confval.KindMap:
		m := make(map[string]any, len(v.Fields()))
		for _, f := range v.Fields() {
			m[f.Key] = toTOMLGo(f.Value)
		}
		return m
	}
	return nil
}
