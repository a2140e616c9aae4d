// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format identifies the configuration formats confconv understands
// and resolves them from user-supplied names and file extensions.
package format

import "strings"

// Format tags one of the supported configuration syntaxes.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// All lists the supported formats in display order.
var All = []Format{JSON, YAML, TOML}

// Name returns the conventional uppercase name, e.g. "YAML".
func (f Format) Name() string {
	return strings.ToUpper(string(f))
}

// Parse resolves a format from a user-supplied name, case-insensitively.
// "yml" is accepted as an alias for YAML. The second result reports whether
// the name was recognized; an unrecognized name is an expected outcome the
// caller branches on, not an error.
func Parse(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, true
	case "yaml", "yml":
		return YAML, true
	case "toml":
		return TOML, true
	}
	return "", false
}

// FromExtension resolves a format from the extension of path, i.e. the part
// after the last dot. A path without a dot resolves to nothing.
func FromExtension(path string) (Format, bool) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", false
	}
	return Parse(path[i+1:])
}

// Extensions returns the file extensions confconv recognizes, for help and
// error text.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml", ".toml"}
}
