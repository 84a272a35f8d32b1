// Package summary handles display of flattening statistics
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bethropolis/dirliner/internal/utils"
	"github.com/bethropolis/dirliner/internal/walker"
	"github.com/fatih/color"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// DisplayResults prints the statistics block shown after every successful run
func DisplayResults(out io.Writer, stats walker.Stats, duration time.Duration) {
	blue := color.New(color.FgBlue).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	magenta := color.New(color.FgMagenta).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintln(out, bold("\n📊 Summary:"))
	fmt.Fprintln(out, blue("├─ Files Processed:"), stats.FilesProcessed)
	fmt.Fprintln(out, blue("├─ Directories Processed:"), stats.DirectoriesProcessed)
	fmt.Fprintln(out, yellow("├─ Files Ignored:"), stats.FilesIgnored)
	fmt.Fprintln(out, yellow("├─ Directories Ignored:"), stats.DirectoriesIgnored)
	if stats.Collisions > 0 {
		fmt.Fprintln(out, yellow("├─ Name Collisions:"), stats.Collisions)
	}
	fmt.Fprintln(out, green("├─ Total Size:"), utils.FormatSize(stats.TotalSize))
	fmt.Fprintln(out, magenta("└─ Execution Time:"), fmt.Sprintf("%.2fs", duration.Seconds()))
	fmt.Fprintln(out, green("\n✨ Processing completed successfully!\n"))
}

// DisplaySkippedItems formats and prints information about skipped items
func DisplaySkippedItems(
	logger Logger,
	skippedItems []walker.SkippedItem,
	output io.Writer,
	quiet bool,
) {
	infoLog := func(format string, args ...interface{}) {
		if !quiet {
			logger.Info(format, args...)
		}
	}

	infoLog("--- Skipped Items (%d) ---", len(skippedItems))
	if len(skippedItems) > 0 {
		// Sort for consistent output
		sort.Slice(skippedItems, func(i, j int) bool {
			return skippedItems[i].Path < skippedItems[j].Path
		})
		for _, item := range skippedItems {
			typeStr := "FILE"
			if item.IsDir {
				typeStr = "DIR " // Add space for alignment
			}
			fmt.Fprintf(output, "Skipped %s: %-.*s [%s]\n",
				typeStr,
				50, // Max width for path column
				item.Path,
				item.Reason,
			)
		}
	} else {
		infoLog("No items were skipped.")
	}
	infoLog("--- End Skipped Items ---")
}
