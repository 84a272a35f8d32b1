package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := runCommand(t, "-V")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0\n", out)
}

func TestRejectsArguments(t *testing.T) {
	_, err := runCommand(t, "extra")
	require.Error(t, err)
}

func TestUnknownFlag(t *testing.T) {
	_, err := runCommand(t, "--bogus")
	require.Error(t, err)
}

func TestFlattensWithConfigFile(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "flat")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "x"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "x", "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "x", "b.log"), []byte("b"), 0o644))

	cfgFile := filepath.Join(t.TempDir(), "dirliner.yaml")
	body := "source: " + src + "\ntarget: /nonexistent-should-be-overridden\nignore:\n  - \"*.log\"\nignore_file: \"\"\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(body), 0o644))

	_, err := runCommand(t, "--config", cfgFile, "--target", dst, "--json", "--no-color", "--output", filepath.Join(t.TempDir(), "r.json"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x-a.txt", entries[0].Name())
}

func TestMissingSourceFails(t *testing.T) {
	_, err := runCommand(t, "-s", filepath.Join(t.TempDir(), "missing"), "-t", t.TempDir(), "--json", "--output", filepath.Join(t.TempDir(), "r.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
