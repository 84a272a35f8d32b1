// Package config holds the application settings and how they are loaded
// from flags and an optional YAML file.
package config

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/bethropolis/dirliner/internal/ignore"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	Source string `yaml:"source"`
	Target string `yaml:"target"`

	// Filtering settings
	Ignore      []string `yaml:"ignore"`
	IgnoreFile  string   `yaml:"ignore_file"`
	GitIgnore   bool     `yaml:"gitignore"`
	OnCollision string   `yaml:"on_collision"`

	// Logging settings
	Verbose     bool   `yaml:"verbose"`
	LogLevel    string `yaml:"log_level"`
	NoColor     bool   `yaml:"no_color"`
	UseColors   bool   `yaml:"-"`
	ShowSkipped bool   `yaml:"show_skipped"`

	// Processing settings
	Concurrent bool          `yaml:"concurrent"`
	MaxWorkers int           `yaml:"workers"`
	Timeout    time.Duration `yaml:"timeout"`

	// Output format
	ListFiles      bool   `yaml:"list"`
	JSONOutput     bool   `yaml:"json"`
	MarkdownOutput bool   `yaml:"markdown"`
	OutputFile     string `yaml:"output"`

	ConfigFile string `yaml:"-"`
	Version    string `yaml:"-"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Source:      "./",
		Target:      "./output",
		IgnoreFile:  ignore.DefaultIgnoreFile,
		OnCollision: "overwrite",
		MaxWorkers:  runtime.NumCPU(),
		Version:     "1.0.0",
	}
}

// BindFlags registers one flag per setting on fs.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Source, "source", "s", c.Source, "Source directory")
	fs.StringVarP(&c.Target, "target", "t", c.Target, "Target directory")
	fs.StringSliceVarP(&c.Ignore, "ignore", "i", c.Ignore, "Ignore patterns (comma-separated, repeatable)")
	fs.StringVar(&c.IgnoreFile, "ignore-file", c.IgnoreFile, "File containing ignore patterns")
	fs.BoolVar(&c.GitIgnore, "gitignore", c.GitIgnore, "Also honour .gitignore files in the source tree")
	fs.StringVar(&c.OnCollision, "on-collision", c.OnCollision, "What to do when two files flatten to the same name (overwrite, error)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Show verbose output")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Set the logging level (debug, info, warn, error, none)")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable color output")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", c.ShowSkipped, "Show a list of skipped files/directories and reasons at the end")
	fs.BoolVar(&c.Concurrent, "concurrent", c.Concurrent, "Copy files concurrently")
	fs.IntVar(&c.MaxWorkers, "workers", c.MaxWorkers, "Max number of concurrent copies (defaults to number of CPU cores)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum execution time (e.g., '30s', '5m')")
	fs.BoolVar(&c.ListFiles, "list", c.ListFiles, "Print every source → target mapping")
	fs.BoolVar(&c.JSONOutput, "json", c.JSONOutput, "Output the result in JSON format")
	fs.BoolVar(&c.MarkdownOutput, "markdown", c.MarkdownOutput, "Output the file mapping as a Markdown table")
	fs.StringVar(&c.OutputFile, "output", c.OutputFile, "Write the result listing to a file instead of stdout")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML file with default settings; flags take precedence")
}

// flagFields pairs each flag with the field it sets, so values given on the
// command line can win over the config file.
var flagFields = []struct {
	flag string
	copy func(dst, src *Config)
}{
	{"source", func(d, s *Config) { d.Source = s.Source }},
	{"target", func(d, s *Config) { d.Target = s.Target }},
	{"ignore", func(d, s *Config) { d.Ignore = s.Ignore }},
	{"ignore-file", func(d, s *Config) { d.IgnoreFile = s.IgnoreFile }},
	{"gitignore", func(d, s *Config) { d.GitIgnore = s.GitIgnore }},
	{"on-collision", func(d, s *Config) { d.OnCollision = s.OnCollision }},
	{"verbose", func(d, s *Config) { d.Verbose = s.Verbose }},
	{"log-level", func(d, s *Config) { d.LogLevel = s.LogLevel }},
	{"no-color", func(d, s *Config) { d.NoColor = s.NoColor }},
	{"show-skipped", func(d, s *Config) { d.ShowSkipped = s.ShowSkipped }},
	{"concurrent", func(d, s *Config) { d.Concurrent = s.Concurrent }},
	{"workers", func(d, s *Config) { d.MaxWorkers = s.MaxWorkers }},
	{"timeout", func(d, s *Config) { d.Timeout = s.Timeout }},
	{"list", func(d, s *Config) { d.ListFiles = s.ListFiles }},
	{"json", func(d, s *Config) { d.JSONOutput = s.JSONOutput }},
	{"markdown", func(d, s *Config) { d.MarkdownOutput = s.MarkdownOutput }},
	{"output", func(d, s *Config) { d.OutputFile = s.OutputFile }},
}

// ApplyFile loads the YAML file at path over c. Settings for which
// explicit(flagName) reports true keep their current value.
func (c *Config) ApplyFile(path string, explicit func(flag string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading config file %q: %w", path, err)
	}

	merged := *c
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&merged); err != nil && !errors.Is(err, io.EOF) {
		return errors.Errorf("parsing config file %q: %w", path, err)
	}

	for _, f := range flagFields {
		if explicit != nil && explicit(f.flag) {
			f.copy(&merged, c)
		}
	}

	*c = merged
	return nil
}

// Finalize derives settings that depend on the environment.
func (c *Config) Finalize() {
	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd()) && c.OutputFile == ""
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Source == "" {
		return errors.New("source directory must not be empty")
	}
	if c.Target == "" {
		return errors.New("target directory must not be empty")
	}
	if c.MaxWorkers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.JSONOutput && c.MarkdownOutput {
		return errors.New("--json and --markdown are mutually exclusive")
	}
	return nil
}
