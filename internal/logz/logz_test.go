package logz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestInit_WritesToFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	file := filepath.Join(t.TempDir(), "logs", "flashiz.log")
	require.NoError(t, Init("info", "flashiz", file))

	NewLogger().Debug("hidden")
	NewLogger().Info("hello", zap.String("deck", "Go"))
	Drop()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"app":"flashiz"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestInit_NoFileDisablesLogging(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, Init("info", "flashiz", ""))
	assert.False(t, zap.L().Core().Enabled(zapcore.ErrorLevel))
}

func TestNewConsole(t *testing.T) {
	l, err := NewConsole("warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = NewConsole("chatty")
	assert.Error(t, err)
}
