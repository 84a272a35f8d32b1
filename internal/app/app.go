// Package app wires configuration, ignore rules and the walker into a
// single flattening run and renders its outcome.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/dirliner/internal/config"
	"github.com/bethropolis/dirliner/internal/logger"
	"github.com/bethropolis/dirliner/internal/printer"
	"github.com/bethropolis/dirliner/internal/setup"
	"github.com/bethropolis/dirliner/internal/summary"
	"github.com/bethropolis/dirliner/internal/utils"
	"github.com/bethropolis/dirliner/internal/walker"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// Result is the outcome of one Execute call.
type Result struct {
	Success   bool                   `json:"success"`
	Processed []walker.ProcessedFile `json:"processed"`
	Error     *string                `json:"error"`
	Stats     walker.Stats           `json:"stats"`

	skipped []walker.SkippedItem
}

// Skipped returns the entries the walk ignored or could not copy.
func (r Result) Skipped() []walker.SkippedItem {
	return r.skipped
}

// App encapsulates the main application functionality
type App struct {
	cfg *config.Config
	log *logger.Logger

	Output  io.Writer // file listing / JSON result
	Console io.Writer // banner and summary

	progress walker.ProgressCallback
	closers  []io.Closer
}

// New creates a new App instance
func New(cfg *config.Config) (*App, error) {
	color.NoColor = !cfg.UseColors

	log := logger.New(os.Stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	}

	a := &App{
		cfg:     cfg,
		log:     log,
		Output:  os.Stdout,
		Console: os.Stdout,
	}

	if cfg.OutputFile != "" {
		file, err := os.Create(cfg.OutputFile)
		if err != nil {
			return nil, errors.Errorf("failed to create output file: %w", err)
		}
		a.Output = file
		a.closers = append(a.closers, file)
	}

	return a, nil
}

// Close releases the output file, if one was opened
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = errors.Errorf("closing output: %w", err)
		}
	}
	a.closers = nil
	return first
}

// coreLogger is what the ignore matcher and walker log to: the real logger
// in verbose mode, nothing otherwise.
func (a *App) coreLogger() utils.Logger {
	if a.log.VerboseMode {
		return a.log
	}
	return utils.NoopLogger{}
}

// Execute flattens the configured source tree once. Any error ends the run
// and is reported in the Result instead of being returned.
func (a *App) Execute(ctx context.Context) Result {
	report, err := a.flatten(ctx)

	res := Result{
		Success:   err == nil,
		Processed: report.Processed,
		Stats:     report.Stats,
		skipped:   report.Skipped,
	}
	if res.Processed == nil {
		res.Processed = []walker.ProcessedFile{}
	}
	if err != nil {
		msg := err.Error()
		res.Error = &msg
		a.coreLogger().Error("💥 Error: %s", msg)
	}
	return res
}

func (a *App) flatten(ctx context.Context) (walker.Report, error) {
	core := a.coreLogger()

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	// --- Directory validation ---
	absSource, err := filepath.Abs(a.cfg.Source)
	if err != nil {
		return walker.Report{}, errors.Errorf("invalid source directory path '%s': %w", a.cfg.Source, err)
	}
	info, err := os.Stat(absSource)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return walker.Report{}, errors.Errorf("source directory '%s' not found", absSource)
		}
		return walker.Report{}, errors.Errorf("could not access source directory '%s': %w", absSource, err)
	}
	if !info.IsDir() {
		return walker.Report{}, errors.Errorf("source '%s' is not a directory", absSource)
	}

	core.Info("🚀 Starting DirLiner")
	core.Info("├─ Source: %s", absSource)
	core.Info("├─ Target: %s", a.cfg.Target)
	core.Info("├─ Ignore file: %s", orNone(a.cfg.IgnoreFile))
	core.Info("└─ Verbose: %v", a.cfg.Verbose)

	matcher, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		SourceDir:   absSource,
		Patterns:    a.cfg.Ignore,
		IgnoreFile:  a.cfg.IgnoreFile,
		GitIgnore:   a.cfg.GitIgnore,
		Concurrent:  a.cfg.Concurrent,
		MaxWorkers:  a.cfg.MaxWorkers,
		OnCollision: a.cfg.OnCollision,
		Progress:    a.progress,
		Context:     ctx,
		Logger:      core,
	}, core.Info)
	if err != nil {
		return walker.Report{}, err
	}

	report, err := walker.Walk(absSource, a.cfg.Target, matcher, walkOptions...)
	if err != nil {
		return report, err
	}

	core.Success("✨ Processing completed successfully!")
	return report, nil
}

// Run executes the flattening and renders the result. The returned error
// carries the failure message; nothing else needs to be printed for it.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if !a.cfg.JSONOutput {
		a.printBanner()
	}

	spinner := a.startSpinner()
	res := a.Execute(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}

	p := printer.New().
		WithOutput(a.Output).
		WithColors(a.cfg.UseColors && a.cfg.OutputFile == "").
		WithJSON(a.cfg.JSONOutput).
		WithMarkdown(a.cfg.MarkdownOutput)

	if a.cfg.JSONOutput {
		if err := p.PrintResult(res, res.Processed); err != nil {
			return err
		}
	}

	if !res.Success {
		return errors.New(*res.Error)
	}

	if !a.cfg.JSONOutput && (a.cfg.ListFiles || a.cfg.MarkdownOutput) {
		if err := p.PrintFiles(res.Processed); err != nil {
			return err
		}
	}

	if !a.cfg.JSONOutput {
		summary.DisplayResults(a.Console, res.Stats, time.Since(startTime))
	}

	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, res.Skipped(), os.Stderr, false)
	}

	return nil
}

func (a *App) printBanner() {
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(a.Console, cyan(strings.Join([]string{
		"╔═══════════════════════════════════════╗",
		"║             " + bold("DirLiner") + "                  ║",
		"║  Transform directories into flat files ║",
		"╚═══════════════════════════════════════╝",
	}, "\n")))
}

// startSpinner shows a progress spinner on interactive terminals when
// nothing else is writing to them.
func (a *App) startSpinner() *pterm.SpinnerPrinter {
	if a.log.VerboseMode || a.cfg.JSONOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
		return nil
	}

	spinner, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start("🔄 Processing...")
	if err != nil {
		a.log.Debug("Could not start spinner: %v", err)
		return nil
	}

	a.progress = func(s walker.ProgressStats) {
		spinner.UpdateText(fmt.Sprintf("🔄 Processing... %d files (%s)", s.FilesProcessed, utils.FormatSize(s.TotalSize)))
	}
	return spinner
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
