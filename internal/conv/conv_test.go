// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/confconv/internal/format"
	"github.com/pdiddy/confconv/pkg/confval"
)

func TestConvertJSONToYAMLPretty(t *testing.T) {
	input := `{"name": "confconv", "version": "0.1.0", "features": ["json","yaml","toml"]}`

	out, err := Convert(input, format.JSON, format.YAML, Options{Pretty: true})
	require.NoError(t, err)

	// The output must parse back to the same tree with key order intact.
	got, err := Decode(out, format.YAML)
	require.NoError(t, err)
	want, err := Decode(input, format.JSON)
	require.NoError(t, err)
	assert.True(t, got.Equal(want), "round-tripped value differs:\n%s", out)

	fields := got.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Key)
	assert.Equal(t, "version", fields[1].Key)
	assert.Equal(t, "features", fields[2].Key)
	assert.Contains(t, out, "name: confconv")
	assert.Contains(t, out, "version: 0.1.0")
}

// TestRoundTripIdentity encodes a tree and decodes it in the same format,
// expecting a structurally equal result.
func TestRoundTripIdentity(t *testing.T) {
	full := confval.Map(
		confval.Field{Key: "empty", Value: confval.Null()},
		confval.Field{Key: "flag", Value: confval.Bool(true)},
		confval.Field{Key: "count", Value: confval.Int(42)},
		confval.Field{Key: "ratio", Value: confval.Float(3.0)},
		confval.Field{Key: "text", Value: confval.String("hello, world")},
		confval.Field{Key: "mixed", Value: confval.List(confval.Int(1), confval.String("two"), confval.Null())},
		confval.Field{Key: "nested", Value: confval.Map(
			confval.Field{Key: "inner", Value: confval.List(confval.Float(0.25), confval.Float(0.75))},
		)},
	)
	// TOML cannot hold nulls or mixed arrays; keys sorted because decoding
	// TOML orders fields lexically.
	tomlSafe := confval.Map(
		confval.Field{Key: "count", Value: confval.Int(42)},
		confval.Field{Key: "nested", Value: confval.Map(
			confval.Field{Key: "flag", Value: confval.Bool(false)},
			confval.Field{Key: "ratio", Value: confval.Float(3.0)},
		)},
		confval.Field{Key: "tags", Value: confval.List(confval.String("a"), confval.String("b"))},
		confval.Field{Key: "text", Value: confval.String("hello")},
	)

	tests := []struct {
		name   string
		format format.Format
		value  confval.Value
	}{
		{name: "json full tree", format: format.JSON, value: full},
		{name: "yaml full tree", format: format.YAML, value: full},
		{name: "toml safe tree", format: format.TOML, value: tomlSafe},
		{name: "json scalar root", format: format.JSON, value: confval.String("just text")},
		{name: "yaml list root", format: format.YAML, value: confval.List(confval.Int(1), confval.Int(2))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, pretty := range []bool{false, true} {
				text, err := Encode(tt.value, tt.format, Options{Pretty: pretty})
				require.NoError(t, err)
				got, err := Decode(text, tt.format)
				require.NoError(t, err, "re-parsing %q", text)
				assert.True(t, got.Equal(tt.value), "pretty=%v output:\n%s", pretty, text)
			}
		})
	}
}

// TestCrossFormatStability converts a TOML-safe tree through every format
// pair and expects the original tree back.
func TestCrossFormatStability(t *testing.T) {
	v := confval.Map(
		confval.Field{Key: "count", Value: confval.Int(3)},
		confval.Field{Key: "enabled", Value: confval.Bool(true)},
		confval.Field{Key: "name", Value: confval.String("svc")},
		confval.Field{Key: "ratio", Value: confval.Float(0.5)},
		confval.Field{Key: "servers", Value: confval.List(
			confval.Map(
				confval.Field{Key: "host", Value: confval.String("a.example.com")},
				confval.Field{Key: "port", Value: confval.Int(8080)},
			),
			confval.Map(
				confval.Field{Key: "host", Value: confval.String("b.example.com")},
				confval.Field{Key: "port", Value: confval.Int(8081)},
			),
		)},
		confval.Field{Key: "tags", Value: confval.List(confval.String("x"), confval.String("y"))},
	)

	for _, from := range format.All {
		for _, to := range format.All {
			src, err := Encode(v, from, Options{})
			require.NoError(t, err, "%s encode", from)

			out, err := Convert(src, from, to, Options{})
			require.NoError(t, err, "%s -> %s", from, to)

			got, err := Decode(out, to)
			require.NoError(t, err, "%s -> %s reparse", from, to)
			assert.True(t, got.Equal(v), "%s -> %s changed the tree:\n%s", from, to, out)
		}
	}
}

func TestTOMLNullRejection(t *testing.T) {
	_, err := Convert(`{"a": null}`, format.JSON, format.TOML, Options{})
	require.Error(t, err)

	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, format.TOML, serr.Format)
	assert.Equal(t, "$.a", serr.Path)
}

func TestTOMLHeterogeneousArrayRejection(t *testing.T) {
	_, err := Convert(`{"a": [1, "two"]}`, format.JSON, format.TOML, Options{})
	require.Error(t, err)

	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "$.a[1]", serr.Path)
	assert.Contains(t, serr.Reason, "share one type")
}

func TestTOMLIntFloatArrayRejection(t *testing.T) {
	// TOML treats integer and float as distinct types, so [1, 2.0] is mixed.
	_, err := Convert(`{"a": [1, 2.0]}`, format.JSON, format.TOML, Options{})
	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "$.a[1]", serr.Path)
}

func TestTOMLNestedNullPath(t *testing.T) {
	_, err := Convert(`{"a": {"b": [{"c": null}]}}`, format.JSON, format.TOML, Options{})
	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "$.a.b[0].c", serr.Path)
}

func TestTOMLRootMustBeTable(t *testing.T) {
	_, err := Convert(`[1, 2]`, format.JSON, format.TOML, Options{})
	var serr *SerializeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "$", serr.Path)
}

func TestEmptyInput(t *testing.T) {
	t.Run("json rejects empty", func(t *testing.T) {
		_, err := Convert("", format.JSON, format.JSON, Options{})
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, format.JSON, perr.Format)
	})

	t.Run("toml rejects empty", func(t *testing.T) {
		_, err := Convert("", format.TOML, format.JSON, Options{})
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, format.TOML, perr.Format)
	})

	t.Run("empty yaml is null", func(t *testing.T) {
		out, err := Convert("", format.YAML, format.JSON, Options{})
		require.NoError(t, err)
		assert.Equal(t, "null", out)
	})

	t.Run("empty yaml cannot become toml", func(t *testing.T) {
		_, err := Convert("", format.YAML, format.TOML, Options{})
		var serr *SerializeError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "$", serr.Path)
	})
}

func TestNumericKindPreserved(t *testing.T) {
	out, err := Convert(`{"a": 3.0, "b": 3}`, format.JSON, format.JSON, Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"a":3.0,"b":3}`, out)

	// Through YAML as well.
	out, err = Convert(`{"a": 3.0, "b": 3}`, format.JSON, format.YAML, Options{})
	require.NoError(t, err)
	v, err := Decode(out, format.YAML)
	require.NoError(t, err)
	a, _ := v.Get("a")
	b, _ := v.Get("b")
	assert.Equal(t, confval.KindFloat, a.Kind())
	assert.Equal(t, confval.KindInt, b.Kind())
}

func TestConvertStopsAtFirstError(t *testing.T) {
	// Parse failure surfaces as ParseError, never as serialize output.
	out, err := Convert(`{"a": `, format.JSON, format.YAML, Options{})
	assert.Empty(t, out)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}
