// =============================================================================
// Manager.io Check Printer - Watch Command
// =============================================================================
//
// This file defines the 'watch' command, which keeps the tool running and
// prints every report dump that lands in the watched directory. Pair it
// with a Generic/Text-Only printer driver that writes into that directory
// and checks come off the printer without anyone touching a terminal.
//
// COMMAND USAGE:
//   checkprint watch [flags]
//
// FLAGS:
//   --dir     : Directory to watch (overrides watch.dir)
//   --pattern : File pattern to pick up (overrides watch.pattern)
//
// DEBOUNCING:
//   The print driver writes the dump in several bursts. A file is only
//   processed once it has sat unchanged for watch.debounce_ms, and the
//   tool's own outputs (previews, debug dumps, renamed inputs) are never
//   picked up.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pmantos/managerio-check-print/internal/pipeline"
	"github.com/pmantos/managerio-check-print/pkg/utils"
)

// watchDir and watchPattern override the configured watch settings.
var (
	watchDir     string
	watchPattern string
)

// =============================================================================
// WATCH COMMAND DEFINITION
// =============================================================================

// watchCmd represents the 'watch' command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and print new report dumps as they arrive",
	Long: `The watch command watches a directory and runs the full print pipeline on
every matching file that appears, after the file has stopped changing for
the configured debounce interval.

The tool's own outputs (previews, debug dumps, renamed inputs) are never
picked up, but consider enabling output.rename_on_print so processed dumps
move out of the watch pattern once they have printed.

The command runs until interrupted (Ctrl+C).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the watch command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(
		&watchDir,
		"dir",
		"",
		"Directory to watch (overrides watch.dir)",
	)

	watchCmd.Flags().StringVar(
		&watchPattern,
		"pattern",
		"",
		"File pattern to pick up (overrides watch.pattern)",
	)
}

// =============================================================================
// WATCH LOOP
// =============================================================================

// runWatch runs the watch loop until interrupted.
func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dir") {
		cfg.Watch.Dir = watchDir
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Watch.Pattern = watchPattern
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.Watch.Dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Watch.Dir, err)
	}

	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	fmt.Printf("Watching %s for %s (Ctrl+C to stop)\n", cfg.Watch.Dir, cfg.Watch.Pattern)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Simple debounce map of pending files. A file is processed once its
	// last event is older than the debounce interval; while it is being
	// processed, new events keep it pending for another round.
	pending := map[string]time.Time{}
	inFlight := map[string]bool{}
	results := make(chan pipeline.Result)

	// Startup sweep: dumps already sitting in the directory were written
	// before the watcher existed, so they are stable and can go straight
	// into the pending set.
	if existing, err := utils.DiscoverReports(cfg.Watch.Dir, cfg.Watch.Pattern); err == nil {
		for _, f := range existing {
			pending[f] = time.Now().Add(-debounce)
		}
	}

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			created := ev.Op&fsnotify.Create == fsnotify.Create
			written := ev.Op&fsnotify.Write == fsnotify.Write
			if !created && !written {
				continue
			}
			if !watchCandidate(ev.Name, cfg.Watch.Pattern) {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-ticker.C:
			now := time.Now()
			for path, last := range pending {
				if now.Sub(last) < debounce || inFlight[path] {
					continue
				}
				delete(pending, path)
				inFlight[path] = true

				go func(p string) {
					pl := pipeline.New(p, cfg, pipeline.Options{})
					results <- pl.Run()
				}(path)
			}

		case result := <-results:
			delete(inFlight, result.FilePath)
			if result.Success {
				fmt.Printf("  ✓ %s: %d check(s)\n",
					filepath.Base(result.FilePath), result.Stats.Pages)
			} else {
				fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
			}

		case <-sigCh:
			fmt.Println("\nStopping watch")
			return nil
		}
	}
}

// watchCandidate reports whether a file event is worth processing: it must
// match the pattern and must not be one of the tool's own outputs.
func watchCandidate(path, pattern string) bool {
	name := filepath.Base(path)
	if utils.IsGeneratedOutput(name) {
		return false
	}
	matched, err := filepath.Match(pattern, name)
	return err == nil && matched
}
