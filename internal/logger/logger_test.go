package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name     string
		verbose  bool
		level    string
		wantSeen []string
		wantMiss []string
	}{
		{
			name:     "default info",
			wantSeen: []string{"INFO] info", "OK] done", "WARN] warn", "ERROR] error"},
			wantMiss: []string{"DEBUG]"},
		},
		{
			name:     "verbose",
			verbose:  true,
			wantSeen: []string{"DEBUG] debug", "INFO] info", "OK] done"},
		},
		{
			name:     "warn level",
			level:    "warn",
			wantSeen: []string{"WARN] warn", "ERROR] error"},
			wantMiss: []string{"DEBUG]", "INFO]", "OK]"},
		},
		{
			name:     "off",
			level:    "off",
			wantMiss: []string{"DEBUG]", "INFO]", "OK]", "WARN]", "ERROR]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, false)
			if tt.level != "" {
				l.SetLevel(tt.level)
			}

			l.Debug("debug")
			l.Info("info")
			l.Success("done")
			l.Warn("warn")
			l.Error("error")

			out := buf.String()
			for _, s := range tt.wantSeen {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.wantMiss {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestLoggerFormatsArguments(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false, false)

	l.Info("copied %s (%d bytes)", "a.txt", 12)

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "["), "line should start with timestamp: %q", line)
	assert.True(t, strings.HasSuffix(line, "INFO] copied a.txt (12 bytes)"), "got %q", line)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelNone, ParseLevel("none"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}
