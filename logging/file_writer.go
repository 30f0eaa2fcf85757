package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation settings for the log file.
const (
	// DefaultMaxSizeMB is the maximum size in megabytes before rotation.
	DefaultMaxSizeMB = 100

	// DefaultMaxBackups is the number of rotated files to retain.
	DefaultMaxBackups = 5

	// DefaultMaxAgeDays is the maximum age of rotated files in days.
	DefaultMaxAgeDays = 30
)

// FileWriterConfig holds rotation settings for the log file writer.
// Zero values fall back to the defaults above.
type FileWriterConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileWriterConfig returns the standard rotation configuration.
func DefaultFileWriterConfig() FileWriterConfig {
	return FileWriterConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   true,
	}
}

// NewFileWriter creates a zapcore.WriteSyncer that writes to filePath with
// automatic size- and age-based rotation via lumberjack.
func NewFileWriter(filePath string) zapcore.WriteSyncer {
	return NewFileWriterWithConfig(filePath, DefaultFileWriterConfig())
}

// NewFileWriterWithConfig creates a rotating file writer with explicit
// rotation settings.
func NewFileWriterWithConfig(filePath string, config FileWriterConfig) zapcore.WriteSyncer {
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = DefaultMaxSizeMB
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = DefaultMaxBackups
	}
	if config.MaxAgeDays <= 0 {
		config.MaxAgeDays = DefaultMaxAgeDays
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
		Compress:   config.Compress,
	})
}
