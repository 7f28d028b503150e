// =============================================================================
// Manager.io Check Printer - File Management Utilities
// =============================================================================
//
// Everything the tool writes lives next to the report it came from, so the
// input path is the root of all naming:
//
//   finance_checks.txt                          the report dump
//   finance_checks_print.txt                    preview (overwritten each run)
//   finance_checks_debug.txt                    raw-line dump on parse failure
//   finance_checks_printed_YYYYMMDD_HH_MM.txt   the input, renamed after a
//                                               successful print
//
// Generated names never come back in as fresh reports because discovery and
// the watch loop filter them out.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// printedTimestamp is the layout for the rename-on-success marker.
const printedTimestamp = "20060102_15_04"

// =============================================================================
// PATH DERIVATION
// =============================================================================

// DerivePaths produces the output paths for one input report.
//
// PARAMETERS:
//   - inputPath: the report dump path.
//
// RETURNS:
//   - previewPath: the human-readable preview, same directory.
//   - debugPath: the parse-failure dump, same directory.
//   - printedPath: the rename target, stamped with the current time.
func DerivePaths(inputPath string) (previewPath, debugPath, printedPath string) {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	previewPath = filepath.Join(dir, stem+"_print.txt")
	debugPath = filepath.Join(dir, stem+"_debug.txt")
	printedPath = filepath.Join(dir, fmt.Sprintf("%s_printed_%s.txt", stem, time.Now().Format(printedTimestamp)))
	return previewPath, debugPath, printedPath
}

// UniquePath returns path if nothing occupies it, otherwise the first free
// "_1", "_2", ... variant before the extension. Every variant derives from
// the original path, so two prints in the same minute produce
// name_printed_..._1.txt rather than compounding suffixes.
func UniquePath(path string) string {
	if !FileExists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if !FileExists(candidate) {
			return candidate
		}
	}
}

// ExpandName fills a file-name template. Supported placeholders:
//
//	{stem}      - the input file's stem
//	{uuid}      - a fresh UUID
//	{timestamp} - YYYYMMDD_HHMMSS
//	{date}      - YYYY-MM-DD
//	{time}      - HHMMSS
func ExpandName(template, stem string) string {
	now := time.Now()
	replacements := map[string]string{
		"{stem}":      stem,
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("2006-01-02"),
		"{time}":      now.Format("150405"),
	}

	out := template
	for placeholder, value := range replacements {
		out = strings.ReplaceAll(out, placeholder, value)
	}
	return out
}

// Stem returns the base file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// DISCOVERY
// =============================================================================

// generatedSuffixes mark stems this tool wrote itself.
var generatedSuffixes = []string{"_print", "_debug"}

// IsGeneratedOutput reports whether a path names one of this tool's own
// outputs (preview, debug dump, or a renamed printed input).
func IsGeneratedOutput(path string) bool {
	stem := Stem(path)
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}
	return strings.Contains(stem, "_printed_")
}

// DiscoverReports finds report dumps in a directory matching the pattern
// (default "*.txt"), excluding directories and this tool's own outputs.
func DiscoverReports(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.txt"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if IsGeneratedOutput(m) {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// =============================================================================
// MOVING
// =============================================================================

// MoveFile renames src to dst, falling back to copy-and-remove when the
// rename crosses filesystems.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("failed to move %s: %w", src, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("moved %s but could not remove the original: %w", src, err)
	}
	return nil
}

// copyFile copies src to dst, syncing before close so the following remove
// of src cannot outrun the data.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
