package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/TFMV/AddressKey/pkg/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{"defaults to info", config.LogConfig{}, zapcore.InfoLevel},
		{"json debug", config.LogConfig{Level: "debug", Format: "json"}, zapcore.DebugLevel},
		{"console warn", config.LogConfig{Level: "warn", Format: "console"}, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.cfg)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
