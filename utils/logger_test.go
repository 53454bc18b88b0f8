package utils

import (
	"testing"

	"salonflow/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelFromConfig(t *testing.T) {
	restore := config.AppConfig
	defer func() { config.AppConfig = restore }()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for in, want := range cases {
		config.AppConfig.LogLevel = in
		assert.Equal(t, want, logLevel(), "LOG_LEVEL=%s", in)
	}
}

func TestLogLevelDefaultsPerEnvironment(t *testing.T) {
	restore := config.AppConfig
	defer func() { config.AppConfig = restore }()

	config.AppConfig.LogLevel = ""
	config.AppConfig.Env = "production"
	assert.Equal(t, zapcore.InfoLevel, logLevel())

	config.AppConfig.Env = "development"
	assert.Equal(t, zapcore.DebugLevel, logLevel())

	config.AppConfig.LogLevel = "verbose"
	assert.Equal(t, zapcore.DebugLevel, logLevel(), "unrecognized value falls back")
}

func TestGetLoggerHonorsConfiguredLevel(t *testing.T) {
	restore := config.AppConfig
	defer func() {
		config.AppConfig = restore
		Logger = nil
	}()

	config.AppConfig.LogLevel = "error"
	Logger = nil
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
