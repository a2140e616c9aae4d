// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confconv/internal/cli"
)

var fmtCmd = &cobra.Command{
	Use:     "fmt <file>",
	Aliases: []string{"format"},
	Short:   "Normalize a configuration file's formatting",
	Long: `Fmt re-serializes a configuration file in its own format with consistent
indentation. By default the result goes to stdout; --write rewrites the file
in place. Comments are not preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	verbose, _ := cmd.Flags().GetBool("verbose")

	indent := viper.GetInt("indent")
	if cmd.Flags().Changed("indent") {
		indent, _ = cmd.Flags().GetInt("indent")
	}

	return cli.Format(cli.FormatOptions{
		File:    args[0],
		Indent:  indent,
		Write:   write,
		Verbose: verbose,
	}, os.Stdout, os.Stderr)
}

func init() {
	fmtCmd.Flags().IntP("indent", "i", 2, "spaces per indent level (1-8)")
	fmtCmd.Flags().BoolP("write", "w", false, "rewrite the file in place")

	rootCmd.AddCommand(fmtCmd)
}
