package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/contentvet/contentvet/internal/config"
	"github.com/contentvet/contentvet/internal/scanner"
	"github.com/contentvet/contentvet/internal/validator"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-check content files as they change",
	Long: `Watch monitors a directory for markdown changes and runs the quick
security scan on each modified file: first critical/high finding only, no
line numbers, so feedback is immediate while editing. Run a full validate
before submitting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the tree, not just the root.
	if err := watchTree(watcher, dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger := newLogger(cfg)
	v := validator.New(logger)
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Watching %s (quick scan on change, Ctrl-C to stop)\n", dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// A created directory starts a new subtree that must be watched
			// too, or files added inside it are never seen.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						logger.Warn(ctx, err, "watching new directory", "dir", event.Name)
					}
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			quickCheck(ctx, v, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, err, "watch error")
		case <-stop:
			fmt.Println("\nStopped")
			return nil
		}
	}
}

// watchTree registers dir and every directory below it with the watcher.
func watchTree(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func quickCheck(ctx context.Context, v *validator.Validator, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("❌ %s: %v\n", path, err)
		return
	}
	issues, _ := v.Scanner().ScanOptimized(string(raw), scanner.QuickOptions())
	if len(issues) == 0 {
		fmt.Printf("✅ %s\n", path)
		return
	}
	fmt.Printf("❌ %s: [%s] %s\n", path, issues[0].Severity, issues[0].Details)
}
