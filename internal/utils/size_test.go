package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
		{1288490189, "1.2 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes), "FormatSize(%d)", tt.bytes)
	}
}

func TestNoopLoggerSatisfiesLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Debug("x %d", 1)
	l.Success("y")
}
