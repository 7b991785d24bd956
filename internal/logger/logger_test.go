package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")

	log, err := NewWithFileConfig("debug", FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest size lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
	}, nil)
	require.NoError(t, err)

	longMessage := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		log.Info("log entry", zap.Int("i", i), zap.String("payload", longMessage))
	}
	_ = log.Sync()

	require.FileExists(t, logFile)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	rotated := 0
	for _, e := range entries {
		if e.Name() != "test.log" && strings.HasPrefix(e.Name(), "test-20") {
			rotated++
		}
	}
	assert.Positive(t, rotated)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(t.TempDir(), tt.level+".log")
			log, err := NewWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, nil)
			require.NoError(t, err)

			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")
			_ = log.Sync()

			content, err := os.ReadFile(logFile)
			require.NoError(t, err)
			for _, exp := range tt.expected {
				assert.Contains(t, string(content), exp)
			}
			for _, exc := range tt.excluded {
				assert.NotContains(t, string(content), exc)
			}
		})
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithFileConfig("info", FileConfig{}, &buf)
	require.NoError(t, err)

	log.Info("surface configured", zap.String("format", "BGRA8Unorm"))
	log.Debug("hidden")
	_ = log.Sync()

	assert.Contains(t, buf.String(), "surface configured")
	assert.Contains(t, buf.String(), "BGRA8Unorm")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNoOutputsIsNop(t *testing.T) {
	log, err := NewWithFileConfig("debug", FileConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, lvl)

	_, err = ParseLevel("loud")
	assert.ErrorContains(t, err, `unknown log level "loud"`)

	_, err = New("loud", "")
	assert.Error(t, err)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/test.log",
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}, cfg)
}
