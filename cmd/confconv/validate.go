// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/confconv/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:     "validate <file>",
	Aliases: []string{"v"},
	Short:   "Check a configuration file's syntax",
	Long: `Validate parses a configuration file and reports whether it is syntactically
valid. The format is inferred from the file extension unless --format is given.
The exit code is zero for a valid file and non-zero otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return cli.Validate(cli.ValidateOptions{
		File:    args[0],
		Format:  formatName,
		Quiet:   quiet,
		Verbose: verbose,
	}, os.Stdout, os.Stderr)
}

func init() {
	validateCmd.Flags().String("format", "", "format override: json, yaml, or toml")

	rootCmd.AddCommand(validateCmd)
}
