// Package cmd provides the contentvet command-line interface.
//
// Configuration sources, highest priority first:
//  1. Command-line flags (--format, --workers, ...)
//  2. CONTENTVET_-prefixed environment variables (CONTENTVET_SCAN_MODE, ...)
//  3. Configuration file (.contentvet.yml in the working directory, or the
//     path given via --config)
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "contentvet",
	Short: "Security and schema validation for curated content submissions",
	Long: `Contentvet validates markdown content files with YAML frontmatter before
they enter a curated collection. It combines a pattern-based security scanner
(prompt injection, command execution, data exfiltration, and more) with a
per-content-type schema validator, and reports a single pass/fail verdict
per file.

Quick Start:
  contentvet validate 'library/**/*.md'   Validate submissions
  contentvet scan persona.md              Security-scan one file
  contentvet perf                         Benchmark the scanner
  contentvet watch library/               Re-validate on change`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .contentvet.yml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig wires viper's config file and environment binding.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".contentvet")
	}

	viper.SetEnvPrefix("CONTENTVET")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing config files are fine; defaults apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
