package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	require.NoError(t, Initialize(false, false))
	assert.False(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, Initialize(true, false))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(true, true))
	assert.True(t, Logger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestUse(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	core, logs := observer.New(zap.InfoLevel)
	Use(zap.New(core))

	Logger.Infow("生成文件", "path", "a_common.go")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "生成文件", entry.Message)
	assert.Equal(t, "a_common.go", entry.ContextMap()["path"])
}
