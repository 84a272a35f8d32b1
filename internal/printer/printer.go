// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bethropolis/dirliner/internal/walker"
	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"
)

// Printer writes the list of flattened files to the configured output
type Printer struct {
	output         io.Writer
	useColors      bool
	jsonOutput     bool
	markdownOutput bool
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithMarkdown enables Markdown output mode
func (p *Printer) WithMarkdown(enabled bool) *Printer {
	p.markdownOutput = enabled
	return p
}

// PrintResult writes v as indented JSON in JSON mode and the file mapping otherwise.
func (p *Printer) PrintResult(v interface{}, files []walker.ProcessedFile) error {
	if p.jsonOutput {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Errorf("marshaling result: %w", err)
		}
		_, err = fmt.Fprintf(p.output, "%s\n", data)
		return err
	}
	return p.PrintFiles(files)
}

// PrintFiles outputs one line per copied file, or a table in Markdown mode
func (p *Printer) PrintFiles(files []walker.ProcessedFile) error {
	if p.markdownOutput {
		fmt.Fprintf(p.output, "| Source | Target |\n|---|---|\n")
		for _, f := range files {
			fmt.Fprintf(p.output, "| `%s` | `%s` |\n", f.Source, f.Target)
		}
		return nil
	}

	src := color.New(color.FgGreen)
	dst := color.New(color.FgCyan, color.Bold)
	if p.useColors {
		src.EnableColor()
		dst.EnableColor()
	} else {
		src.DisableColor()
		dst.DisableColor()
	}

	for _, f := range files {
		if _, err := fmt.Fprintf(p.output, "%s → %s\n", src.Sprint(f.Source), dst.Sprint(f.Target)); err != nil {
			return errors.Errorf("writing file list: %w", err)
		}
	}
	return nil
}
