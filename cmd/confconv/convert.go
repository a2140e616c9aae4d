// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confconv/internal/cli"
)

var convertCmd = &cobra.Command{
	Use:     "convert [input]",
	Aliases: []string{"c"},
	Short:   "Convert a configuration file to another format",
	Long: `Convert reads a configuration document, parses it into a common tree, and
writes it back out in the target format. The source format comes from --from,
or is inferred from the input file extension.

Examples:
  confconv convert config.json --to yaml
  cat config.json | confconv convert --from json --to yaml --pretty
  confconv convert config.yaml --to toml --output config.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := "-"
	if len(args) == 1 {
		input = args[0]
	}
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		return errors.New("--to is required")
	}
	from, _ := cmd.Flags().GetString("from")
	output, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")

	pretty := viper.GetBool("pretty")
	if cmd.Flags().Changed("pretty") {
		pretty, _ = cmd.Flags().GetBool("pretty")
	}

	return cli.Convert(cli.ConvertOptions{
		Input:   input,
		Output:  output,
		From:    from,
		To:      to,
		Pretty:  pretty,
		Indent:  viper.GetInt("indent"),
		Verbose: verbose,
	}, os.Stdin, os.Stdout, os.Stderr)
}

func init() {
	convertCmd.Flags().StringP("from", "f", "", "source format: json, yaml, or toml (required when reading stdin)")
	convertCmd.Flags().StringP("to", "t", "", "target format: json, yaml, or toml")
	convertCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	convertCmd.Flags().BoolP("pretty", "p", false, "pretty-print the output")

	rootCmd.AddCommand(convertCmd)
}
