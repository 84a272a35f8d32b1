package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dirliner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "./", cfg.Source)
	assert.Equal(t, "./output", cfg.Target)
	assert.Equal(t, ".dirlinerignore", cfg.IgnoreFile)
	assert.Equal(t, "overwrite", cfg.OnCollision)
	assert.GreaterOrEqual(t, cfg.MaxWorkers, 1)
	require.NoError(t, cfg.Validate())
}

func TestBindFlags(t *testing.T) {
	cfg := New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"-s", "src", "-t", "dist", "-i", "*.log,node_modules/", "-i", "tmp", "-v", "--timeout", "5s"}))

	assert.Equal(t, "src", cfg.Source)
	assert.Equal(t, "dist", cfg.Target)
	assert.Equal(t, []string{"*.log", "node_modules/", "tmp"}, cfg.Ignore)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestApplyFile(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		args        []string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "file values apply",
			config: `
source: ./project
target: ./flat
ignore:
  - "*.log"
  - dist/
gitignore: true
workers: 3
timeout: 1m
on_collision: error
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./project", cfg.Source)
				assert.Equal(t, "./flat", cfg.Target)
				assert.Equal(t, []string{"*.log", "dist/"}, cfg.Ignore)
				assert.True(t, cfg.GitIgnore)
				assert.Equal(t, 3, cfg.MaxWorkers)
				assert.Equal(t, time.Minute, cfg.Timeout)
				assert.Equal(t, "error", cfg.OnCollision)
				assert.Equal(t, ".dirlinerignore", cfg.IgnoreFile, "unset keys keep defaults")
			},
		},
		{
			name: "explicit flags win",
			config: `
source: ./project
target: ./flat
verbose: true
`,
			args: []string{"--target", "cli-target"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./project", cfg.Source)
				assert.Equal(t, "cli-target", cfg.Target)
				assert.True(t, cfg.Verbose)
			},
		},
		{
			name:   "empty file",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "./", cfg.Source)
			},
		},
		{
			name:        "unknown key",
			config:      "sauce: ./x\n",
			wantErr:     true,
			errContains: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			cfg.BindFlags(fs)
			require.NoError(t, fs.Parse(tt.args))

			err := cfg.ApplyFile(writeConfig(t, tt.config), func(name string) bool {
				return fs.Changed(name)
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestApplyFileMissing(t *testing.T) {
	err := New().ApplyFile(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.MaxWorkers = 0
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.JSONOutput, cfg.MarkdownOutput = true, true
	assert.Error(t, cfg.Validate())

	cfg = New()
	cfg.Target = ""
	assert.Error(t, cfg.Validate())
}

func TestFinalizeDisablesColorForFileOutput(t *testing.T) {
	cfg := New()
	cfg.OutputFile = "result.json"
	cfg.Finalize()
	assert.False(t, cfg.UseColors)

	cfg = New()
	cfg.NoColor = true
	cfg.Finalize()
	assert.False(t, cfg.UseColors)
}
