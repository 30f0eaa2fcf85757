package logging

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// LevelEnvVar is the environment variable NewLogger consults to override
// the default log level.
const LevelEnvVar = "ICONFORGE_LOG_LEVEL"

// ParseLogLevel parses a log level from an environment variable, returning
// defaultLevel when the variable is unset or invalid. Parsing is
// case-insensitive; valid values: debug, info, warn, warning, error, fatal.
func ParseLogLevel(envVarName string, defaultLevel zapcore.Level) zapcore.Level {
	value := os.Getenv(envVarName)
	if value == "" {
		return defaultLevel
	}
	return ParseLogLevelString(value, defaultLevel)
}

// ParseLogLevelString parses a log level string directly.
// This is a pure function with no side effects.
func ParseLogLevelString(levelStr string, defaultLevel zapcore.Level) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return defaultLevel
	}
}
