package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/contentvet/contentvet/internal/config"
	"github.com/contentvet/contentvet/internal/logging"
	"github.com/contentvet/contentvet/internal/types"
	"github.com/contentvet/contentvet/internal/validator"
)

var (
	validateFormat  string
	validateOutput  string
	validateWorkers int
)

var validateCmd = &cobra.Command{
	Use:   "validate [glob...]",
	Short: "Validate content files against security patterns and schemas",
	Long: `Validate resolves glob patterns to content files, runs schema and security
validation on each, and prints a per-file pass/fail summary. A file passes
only when it has no critical or high severity issues; medium and low issues
are warnings.

Examples:
  contentvet validate 'library/**/*.md'
  contentvet validate personas/*.md skills/*.md --format json
  contentvet validate 'library/**/*.md' --output report.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "", "output format (text, json)")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "write JSON file reports to this path")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "concurrent validation workers (0 = auto)")
	_ = viper.BindPFlag("output.format", validateCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", validateCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("scan.workers", validateCmd.Flags().Lookup("workers"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg)
	ctx := context.Background()

	globs := args
	if len(globs) == 0 {
		globs = cfg.Paths.Include
	}
	files, err := resolveGlobs(globs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No content files matched")
		return nil
	}

	timer := logging.StartOperation(logger, "validate_batch")
	batch := validator.New(logger).ValidateAll(ctx, files, cfg.WorkerCount())
	timer.End(ctx)

	if cfg.Output.File != "" {
		if err := writeFileReports(cfg.Output.File, batch); err != nil {
			return fmt.Errorf("writing report file: %w", err)
		}
	}

	switch cfg.Output.Format {
	case "json":
		if err := printBatchJSON(batch); err != nil {
			return err
		}
	default:
		printBatchText(batch)
	}

	if !batch.Passed() {
		return fmt.Errorf("validation failed: %d of %d files have critical or high issues",
			batch.Summary.InvalidFiles, batch.Summary.TotalFiles)
	}
	return nil
}

// resolveGlobs expands glob patterns into a deduplicated sorted file list.
// Patterns containing ** match any directory depth; plain patterns go
// through filepath.Glob. A pattern without metacharacters names a file that
// must exist.
func resolveGlobs(globs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range globs {
		var matches []string
		var err error
		if strings.Contains(pattern, "**") {
			matches, err = expandRecursive(pattern)
		} else {
			matches, err = filepath.Glob(pattern)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		if matches == nil && !hasGlobMeta(pattern) {
			// Keep the literal path so the missing file is reported as a
			// failed result instead of being silently skipped.
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// expandRecursive resolves a pattern containing **, which filepath.Glob
// treats as a single *. The fixed prefix before ** is the walk root; the
// remainder must match a trailing segment of each file's relative path, so
// ** spans zero or more directories. A missing root matches nothing, same
// as filepath.Glob.
func expandRecursive(pattern string) ([]string, error) {
	idx := strings.Index(pattern, "**")
	root := strings.TrimSuffix(filepath.ToSlash(pattern[:idx]), "/")
	if root == "" {
		root = "."
	}
	tail := strings.TrimPrefix(filepath.ToSlash(pattern[idx+2:]), "/")
	if tail == "" || strings.Contains(tail, "**") {
		return nil, fmt.Errorf("unsupported pattern tail %q", pattern)
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		segments := strings.Split(filepath.ToSlash(rel), "/")
		for i := range segments {
			ok, err := path.Match(tail, strings.Join(segments[i:], "/"))
			if err != nil {
				return err
			}
			if ok {
				files = append(files, p)
				break
			}
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return files, err
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		if r == '*' || r == '?' || r == '[' {
			return true
		}
	}
	return false
}

func printBatchText(batch *validator.BatchResult) {
	for _, result := range batch.Results {
		status := "✅"
		if !result.Passed {
			status = "❌"
		}
		fmt.Printf("%s %s (critical: %d, high: %d, medium: %d, low: %d)\n",
			status, result.File,
			result.Summary.Critical, result.Summary.High,
			result.Summary.Medium, result.Summary.Low)
		for _, issue := range result.Issues {
			if issue.Severity.AtLeast(types.SeverityHigh) {
				fmt.Printf("    [%s] %s", issue.Severity, issue.Details)
				if issue.Line > 0 {
					fmt.Printf(" (line %d)", issue.Line)
				}
				fmt.Println()
			}
		}
	}
	fmt.Printf("\nValidated %d files: %d passed, %d failed\n",
		batch.Summary.TotalFiles, batch.Summary.ValidFiles, batch.Summary.InvalidFiles)
}

func printBatchJSON(batch *validator.BatchResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(batch)
}

func writeFileReports(path string, batch *validator.BatchResult) error {
	data, err := json.MarshalIndent(validator.FileReports(batch.Results), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func newLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	if cfg.Output.Format == "json" {
		logCfg.Format = "json"
	}
	return logging.New(logCfg)
}
