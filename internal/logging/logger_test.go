package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	require.NoError(t, Initialize(""))
	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel))
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "debug")
	defer SetLogger(nil)

	require.NoError(t, InitializeFromEnv())
	assert.True(t, GetLogger().Core().Enabled(zapcore.DebugLevel))
}

func TestInitialize_UnknownLevel(t *testing.T) {
	err := Initialize("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestLogGenerationFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogGenerationFailure("gemini", "gemini-3-flash-preview", "cats", "auth", errors.New("API key not valid"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, "Error generating tags", entry.Message)
	assert.Equal(t, "auth", entry.ContextMap()["kind"])
	assert.Equal(t, "API key not valid", entry.ContextMap()["error"])
}

func TestLogGeneration(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogGeneration("openai", "gpt-4o-mini", "dogs", 42, time.Second)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(42), logs.All()[0].ContextMap()["count"])
}
