package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWithLevel(t *testing.T) {
	log, err := NewWithLevel("crc-test", "debug")
	require.NoError(t, err)
	require.NotNil(t, log)

	assert.True(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithLevelRejectsUnknown(t *testing.T) {
	_, err := NewWithLevel("crc-test", "loud")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	log := New("crc-test")
	require.NotNil(t, log)

	assert.False(t, log.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, log.Desugar().Core().Enabled(zapcore.InfoLevel))
}
