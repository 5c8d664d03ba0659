package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contentvet/contentvet/internal/config"
	"github.com/contentvet/contentvet/internal/scanner"
)

var scanMode string

var scanCmd = &cobra.Command{
	Use:   "scan FILE",
	Short: "Run the security pattern scan on a single file",
	Long: `Scan runs only the security pattern scanner, without schema validation.

Modes:
  quick     first critical/high finding only, no line numbers (low latency)
  full      every finding with line numbers (default)
  metrics   full scan plus timing breakdown`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanMode, "mode", "m", "", "scan mode (quick, full, metrics)")
	_ = viper.BindPFlag("scan.mode", scanCmd.Flags().Lookup("mode"))
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var opts scanner.Options
	switch cfg.Scan.Mode {
	case "quick":
		opts = scanner.QuickOptions()
	case "metrics":
		opts = scanner.MetricsOptions()
	default:
		opts = scanner.FullOptions()
	}

	issues, metrics := scanner.New().ScanOptimized(string(raw), opts)

	if len(issues) == 0 {
		fmt.Println("No security findings")
	}
	for _, issue := range issues {
		fmt.Printf("[%s] %s: %s", issue.Severity, issue.Pattern, issue.Details)
		if issue.Line > 0 && !opts.SkipLineNumbers {
			fmt.Printf(" (line %d)", issue.Line)
		}
		fmt.Println()
	}

	if metrics != nil {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(metrics); err != nil {
			return err
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("scan found %d issues", len(issues))
	}
	return nil
}
