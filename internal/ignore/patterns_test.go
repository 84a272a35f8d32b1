package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "plain glob", pattern: "*.log", want: "*.log"},
		{name: "surrounding whitespace", pattern: "  build \t", want: "build"},
		{name: "blank", pattern: "", want: ""},
		{name: "only whitespace", pattern: "   ", want: ""},
		{name: "comment", pattern: "# node_modules/", want: ""},
		{name: "indented comment", pattern: "   #tmp", want: ""},
		{name: "directory", pattern: "node_modules/", want: "node_modules/**"},
		{name: "nested directory", pattern: "a/b/", want: "a/b/**"},
		{name: "negation dropped", pattern: "!keep.txt", want: ""},
		{name: "hash inside pattern", pattern: "a#b", want: "a#b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.pattern))
		})
	}
}

func TestPatternSet(t *testing.T) {
	s := NewPatternSet()

	assert.True(t, s.Add("a"))
	assert.True(t, s.Add("b"))
	assert.False(t, s.Add("a"), "duplicate should collapse")
	assert.False(t, s.Add(""), "empty pattern should be rejected")

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("b"))
	assert.False(t, s.Contains("c"))

	got := s.Patterns()
	assert.Equal(t, []string{"a", "b"}, got)
	got[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.Patterns(), "Patterns must return a copy")
}

func TestBuildPatternSet(t *testing.T) {
	dir := t.TempDir()
	ignoreFile := filepath.Join(dir, ".dirlinerignore")
	content := "# generated output\n" +
		"dist/\n" +
		"\n" +
		"*.log\r\n" +
		"!important.log\n" +
		"  coverage  \n"
	require.NoError(t, os.WriteFile(ignoreFile, []byte(content), 0o644))

	set, err := BuildPatternSet([]string{"*.tmp", "*.log", " ", "node_modules/"}, ignoreFile)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dist/**",
		"*.log",
		"coverage",
		"*.tmp",
		"node_modules/**",
	}, set.Patterns())
}

func TestBuildPatternSetMissingFile(t *testing.T) {
	set, err := BuildPatternSet([]string{"*.tmp"}, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmp"}, set.Patterns())
}

func TestBuildPatternSetNoFile(t *testing.T) {
	set, err := BuildPatternSet(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestBuildPatternSetUnreadableFile(t *testing.T) {
	// a directory exists but cannot be read as a file
	dir := filepath.Join(t.TempDir(), "ignore-dir")
	require.NoError(t, os.Mkdir(dir, 0o755))

	_, err := BuildPatternSet(nil, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading ignore file")
}
