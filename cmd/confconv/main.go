// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the confconv CLI, a converter,
// validator, and formatter for JSON, YAML, and TOML configuration files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the confconv CLI.
var rootCmd = &cobra.Command{
	Use:   "confconv",
	Short: "Convert configuration files between JSON, YAML, and TOML",
	Long: `confconv converts configuration files between JSON, YAML, and TOML through
a common document tree, so structure, key order, and scalar types survive the
trip wherever the target format can express them.

Each operation is a subcommand: convert changes a document's format, validate
checks a file's syntax, and fmt normalizes a file's indentation in place or to
standard output.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./confconv.yaml or ~/.config/confconv/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print diagnostics to stderr")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("confconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "confconv"))
		}
	}

	viper.SetEnvPrefix("CONFCONV")
	viper.AutomaticEnv()

	viper.SetDefault("indent", 2)
	viper.SetDefault("pretty", false)

	if err := viper.ReadInConfig(); err == nil {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
