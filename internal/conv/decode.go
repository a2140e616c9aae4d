// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conv

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/confconv/internal/format"
	"github.com/pdiddy/confconv/pkg/confval"
)

// --- JSON ---

// decodeJSON walks the decoder token stream instead of unmarshaling into
// interface{}: Go maps would lose object key order and plain float64 would
// lose the distinction between 3 and 3.0. UseNumber keeps the number lexeme
// so the kind can be recovered.
func decodeJSON(input string) (confval.Value, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()

	v, err := jsonValue(dec)
	if err != nil {
		return confval.Value{}, jsonParseError(input, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		line, col := lineCol(input, dec.InputOffset())
		return confval.Value{}, &ParseError{
			Format: format.JSON,
			Line:   line,
			Column: col,
			Err:    errors.New("unexpected data after top-level value"),
		}
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (confval.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return confval.Value{}, err
	}
	return jsonFromToken(dec, tok)
}

func jsonFromToken(dec *json.Decoder, tok json.Token) (confval.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			var fields []confval.Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return confval.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return confval.Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				val, err := jsonValue(dec)
				if err != nil {
					return confval.Value{}, err
				}
				fields = append(fields, confval.Field{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return confval.Value{}, err
			}
			return confval.Map(fields...), nil
		case '[':
			var items []confval.Value
			for dec.More() {
				item, err := jsonValue(dec)
				if err != nil {
					return confval.Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return confval.Value{}, err
			}
			return confval.List(items...), nil
		}
	case bool:
		return confval.Bool(t), nil
	case string:
		return confval.String(t), nil
	case json.Number:
		return numberValue(t.String()), nil
	case nil:
		return confval.Null(), nil
	}
	return confval.Value{}, fmt.Errorf("unexpected token %v", tok)
}

// numberValue classifies a number lexeme: no fraction or exponent and within
// int64 range means integer, everything else is a float. Integers beyond the
// int64 range fall back to float64 and may lose precision above 2^53.
func numberValue(lexeme string) confval.Value {
	if !strings.ContainsAny(lexeme, ".eE") {
		if i, err := strconv.ParseInt(lexeme, 10, 64); err == nil {
			return confval.Int(i)
		}
	}
	f, _ := strconv.ParseFloat(lexeme, 64)
	return confval.Float(f)
}

func jsonParseError(input string, err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		line, col := lineCol(input, syn.Offset)
		return &ParseError{Format: format.JSON, Line: line, Column: col, Err: err}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ParseError{Format: format.JSON, Err: errors.New("unexpected end of input")}
	}
	return &ParseError{Format: format.JSON, Err: err}
}

// lineCol converts a byte offset into a 1-based line and column.
func lineCol(input string, offset int64) (line, col int) {
	if offset > int64(len(input)) {
		offset = int64(len(input))
	}
	line, col = 1, 1
	for _, b := range []byte(input[:offset]) {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// --- YAML ---

// decodeYAML goes through yaml.Node rather than interface{} for the same
// fidelity reasons as decodeJSON: nodes keep mapping order and carry the
// resolved tag, which separates 3 from 3.0 and "true" from true.
func decodeYAML(input string) (confval.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		return confval.Value{}, &ParseError{Format: format.YAML, Err: err}
	}
	// An empty document leaves the node unset; YAML defines it as null.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return confval.Null(), nil
	}
	return yamlValue(doc.Content[0])
}

func yamlValue(n *yaml.Node) (confval.Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.SequenceNode:
		items := make([]confval.Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := yamlValue(c)
			if err != nil {
				return confval.Value{}, err
			}
			items = append(items, item)
		}
		return confval.List(items...), nil
	case yaml.MappingNode:
		fields := make([]confval.Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return confval.Value{}, &ParseError{
					Format: format.YAML,
					Line:   keyNode.Line,
					Column: keyNode.Column,
					Err:    errors.New("mapping keys must be scalars"),
				}
			}
			val, err := yamlValue(valNode)
			if err != nil {
				return confval.Value{}, err
			}
			fields = append(fields, confval.Field{Key: keyNode.Value, Value: val})
		}
		return confval.Map(fields...), nil
	}
	return confval.Value{}, &ParseError{
		Format: format.YAML,
		Line:   n.Line,
		Column: n.Column,
		Err:    fmt.Errorf("unsupported node kind %d", n.Kind),
	}
}

func yamlScalar(n *yaml.Node) (confval.Value, error) {
	switch n.Tag {
	case "!!null":
		return confval.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return confval.Value{}, &ParseError{Format: format.YAML, Line: n.Line, Column: n.Column, Err: err}
		}
		return confval.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return confval.Int(i), nil
		}
		// Out of int64 range; carry it as a float with precision loss.
		var f float64
		if err := n.Decode(&f); err != nil {
			return confval.Value{}, &ParseError{Format: format.YAML, Line: n.Line, Column: n.Column, Err: err}
		}
		return confval.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return confval.Value{}, &ParseError{Format: format.YAML, Line: n.Line, Column: n.Column, Err: err}
		}
		return confval.Float(f), nil
	default:
		// Strings, timestamps, and anything exotic ride as strings; JSON and
		// TOML have no richer scalar to bridge them into.
		return confval.String(n.Value), nil
	}
}

// --- TOML ---

// decodeTOML unmarshals into Go maps, so source key order is unrecoverable;
// fields are sorted lexically for deterministic output. TOML tables are
// order-insignificant, so round trips stay semantically equivalent.
func decodeTOML(input string) (confval.Value, error) {
	if strings.TrimSpace(input) == "" {
		return confval.Value{}, &ParseError{Format: format.TOML, Err: errors.New("empty document")}
	}
	var raw map[string]any
	if err := toml.Unmarshal([]byte(input), &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			line, col := derr.Position()
			return confval.Value{}, &ParseError{Format: format.TOML, Line: line, Column: col, Err: err}
		}
		return confval.Value{}, &ParseError{Format: format.TOML, Err: err}
	}
	return fromTOMLGo(raw)
}

func fromTOMLGo(raw any) (confval.Value, error) {
	switch t := raw.(type) {
	case nil:
		return confval.Null(), nil
	case bool:
		return confval.Bool(t), nil
	case int64:
		return confval.Int(t), nil
	case float64:
		return confval.Float(t), nil
	case string:
		return confval.String(t), nil
	case time.Time:
		return confval.String(t.Format(time.RFC3339Nano)), nil
	case toml.LocalDate:
		return confval.String(t.String()), nil
	case toml.LocalTime:
		return confval.String(t.String()), nil
	case toml.LocalDateTime:
		return confval.String(t.String()), nil
	case []any:
		items := make([]confval.Value, 0, len(t))
		for _, e := range t {
			item, err := fromTOMLGo(e)
			if err != nil {
				return confval.Value{}, err
			}
			items = append(items, item)
		}
		return confval.List(items...), nil
	case []map[string]any:
		items := make([]confval.Value, 0, len(t))
		for _, e := range t {
			item, err := fromTOMLGo(e)
			if err != nil {
				return confval.Value{}, err
			}
			items = append(items, item)
		}
		return confval.List(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]confval.Field, 0, len(keys))
		for _, k := range keys {
			val, err := fromTOMLGo(t[k])
			if err != nil {
				return confval.Value{}, err
			}
			fields = append(fields, confval.Field{Key: k, Value: val})
		}
		return confval.Map(fields...), nil
	}
	return confval.Value{}, fmt.Errorf("unsupported TOML value of type %T", raw)
}
