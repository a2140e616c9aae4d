// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli implements the command bodies behind the confconv CLI: input
// resolution (files, standard input, format inference from extensions),
// invocation of the conversion engine, and output writing. The cobra layer in
// cmd/confconv binds flags and delegates here; keeping the bodies on
// io.Reader/io.Writer keeps them testable without a process boundary.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/confconv/internal/conv"
	"github.com/pdiddy/confconv/internal/format"
)

// ConvertOptions holds the resolved inputs of the convert command.
type ConvertOptions struct {
	// Input is a file path, or "-" (or empty) for standard input.
	Input string
	// Output is a file path, or empty for standard output.
	Output string
	// From names the source format. Required when reading standard input;
	// otherwise it overrides extension inference.
	From string
	// To names the target format.
	To string
	// Pretty selects indented output.
	Pretty bool
	// Indent is the spaces-per-level width, zero for the default.
	Indent int
	// Verbose enables diagnostics on stderr.
	Verbose bool
}

// Convert runs a single conversion: read, convert, write. All errors come
// back to the caller for presentation; nothing is printed besides the
// converted document and, when verbose, diagnostics on stderr.
func Convert(opts ConvertOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	to, ok := format.Parse(opts.To)
	if !ok {
		return fmt.Errorf("unknown target format %q (supported: json, yaml, toml)", opts.To)
	}

	var content []byte
	var from format.Format
	if opts.Input == "" || opts.Input == "-" {
		if opts.From == "" {
			return errors.New("reading from standard input requires --from")
		}
		from, ok = format.Parse(opts.From)
		if !ok {
			return fmt.Errorf("unknown source format %q (supported: json, yaml, toml)", opts.From)
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}
		content = data
	} else {
		if opts.From != "" {
			from, ok = format.Parse(opts.From)
			if !ok {
				return fmt.Errorf("unknown source format %q (supported: json, yaml, toml)", opts.From)
			}
		} else {
			from, ok = format.FromExtension(opts.Input)
			if !ok {
				return fmt.Errorf("cannot infer format of %q; use --from or one of the extensions %s",
					opts.Input, strings.Join(format.Extensions(), ", "))
			}
		}
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("reading %s: %w", opts.Input, err)
		}
		content = data
	}

	if opts.Verbose {
		fmt.Fprintf(stderr, "converting %s -> %s\n", from.Name(), to.Name())
	}

	out, err := conv.Convert(string(content), from, to, conv.Options{Pretty: opts.Pretty, Indent: opts.Indent})
	if err != nil {
		return err
	}
	return writeResult(opts.Output, out, opts.Verbose, stdout, stderr)
}

// ValidateOptions holds the resolved inputs of the validate command.
type ValidateOptions struct {
	File string
	// Format optionally overrides extension inference.
	Format  string
	Quiet   bool
	Verbose bool
}

// Validate parses a file to check its syntax, printing a confirmation line
// unless quiet. A parse failure is returned, not printed.
func Validate(opts ValidateOptions, stdout, stderr io.Writer) error {
	f, err := resolveFileFormat(opts.File, opts.Format)
	if err != nil {
		return err
	}
	if opts.Verbose {
		fmt.Fprintf(stderr, "validating as %s\n", f.Name())
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.File, err)
	}
	if _, err := conv.Decode(string(data), f); err != nil {
		return err
	}
	if !opts.Quiet {
		fmt.Fprintf(stdout, "ok: %s (%s)\n", opts.File, f.Name())
	}
	return nil
}

// FormatOptions holds the resolved inputs of the fmt command.
type FormatOptions struct {
	File string
	// Indent is the spaces-per-level width, 1 through 8.
	Indent int
	// Write rewrites the file in place instead of printing to stdout.
	Write   bool
	Verbose bool
}

// Format re-serializes a file in its own format with normalized indentation.
func Format(opts FormatOptions, stdout, stderr io.Writer) error {
	if opts.Indent < 1 || opts.Indent > 8 {
		return fmt.Errorf("indent must be between 1 and 8, got %d", opts.Indent)
	}
	f, ok := format.FromExtension(opts.File)
	if !ok {
		return fmt.Errorf("cannot infer format of %q; supported extensions are %s",
			opts.File, strings.Join(format.Extensions(), ", "))
	}
	if opts.Verbose {
		fmt.Fprintf(stderr, "formatting as %s with indent %d\n", f.Name(), opts.Indent)
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.File, err)
	}
	v, err := conv.Decode(string(data), f)
	if err != nil {
		return err
	}
	out, err := conv.Encode(v, f, conv.Options{Pretty: true, Indent: opts.Indent})
	if err != nil {
		return err
	}

	if opts.Write {
		if err := os.WriteFile(opts.File, []byte(ensureNewline(out)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", opts.File, err)
		}
		if opts.Verbose {
			fmt.Fprintf(stderr, "rewrote %s\n", opts.File)
		}
		return nil
	}
	_, err = io.WriteString(stdout, ensureNewline(out))
	return err
}

func resolveFileFormat(path, override string) (format.Format, error) {
	if override != "" {
		f, ok := format.Parse(override)
		if !ok {
			return "", fmt.Errorf("unknown format %q (supported: json, yaml, toml)", override)
		}
		return f, nil
	}
	f, ok := format.FromExtension(path)
	if !ok {
		return "", fmt.Errorf("cannot infer format of %q; use --format or one of the extensions %s",
			path, strings.Join(format.Extensions(), ", "))
	}
	return f, nil
}

func writeResult(path, text string, verbose bool, stdout, stderr io.Writer) error {
	text = ensureNewline(text)
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(stderr, "wrote %s\n", path)
	}
	return nil
}

// ensureNewline makes documents end with a newline; the YAML and TOML
// encoders already do, the JSON emitter does not.
func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
