// Package logging provides structured logging for the icon pipeline.
//
// It wraps zap with a small Logger type so the rest of the codebase never
// imports zap configuration details. Output is teed to the console and a
// rotating log file (see multi_core.go and file_writer.go).
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with the pipeline's standard configuration.
//
// Example:
//
//	logger, err := NewLogger(true, "iconforge.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("removal complete", zap.String("output", path))
type Logger struct {
	zap *zap.Logger
}

// NewLogger creates a Logger for the given environment.
//
// In development mode the console output is human-readable at debug level;
// in production both outputs are JSON at info level. ICONFORGE_LOG_LEVEL
// overrides the level either way. The file output rotates automatically
// (100MB max, 5 backups, 30 days).
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	defaultLevel := zapcore.InfoLevel
	if isDevelopment {
		defaultLevel = zapcore.DebugLevel
	}
	level := ParseLogLevel(LevelEnvVar, defaultLevel)

	core, err := NewMultiCore(level, logFilePath, isDevelopment)
	if err != nil {
		return nil, fmt.Errorf("logging: failed to create log core: %w", err)
	}

	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	)

	return &Logger{zap: zapLogger}, nil
}

// NewLoggerWithZap wraps an existing zap.Logger. Used in tests to attach
// an observer core and assert on emitted entries.
func NewLoggerWithZap(z *zap.Logger) *Logger {
	return &Logger{zap: z}
}

// NewNop returns a Logger that discards all output.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Sync flushes any buffered log entries. Call before process exit.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	return l.zap.Sync()
}

// Debug logs a message at DebugLevel with optional structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}

// Info logs a message at InfoLevel with optional structured fields.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Warn logs a message at WarnLevel with optional structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, fields...)
}

// Error logs a message at ErrorLevel with optional structured fields.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, fields...)
}

// Fatal logs a message at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, fields...)
}

// With creates a child logger with additional fields included in every
// entry. Useful for per-request context such as run IDs.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...)}
}

// Named adds a sub-logger name that appears in log output, identifying
// the component that produced an entry.
//
// Example:
//
//	removalLog := logger.Named("removal")
func (l *Logger) Named(name string) *Logger {
	return &Logger{zap: l.zap.Named(name)}
}

// Zap returns the underlying zap.Logger for methods not exposed here.
func (l *Logger) Zap() *zap.Logger {
	return l.zap
}
