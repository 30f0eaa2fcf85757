package logging

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLoggerWritesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := NewLogger(true, logPath)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	logger.Info("hello", zap.String("key", "value"))
	logger.Sync()
}

func TestNewLoggerLevelFromEnv(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")
	t.Setenv(LevelEnvVar, "error")

	logger, err := NewLogger(true, logPath)
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}

	core := logger.Zap().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info enabled despite ICONFORGE_LOG_LEVEL=error")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Error("error level should be enabled")
	}
}

func TestNewLoggerDefaultLevels(t *testing.T) {
	t.Setenv(LevelEnvVar, "")

	dev, err := NewLogger(true, filepath.Join(t.TempDir(), "dev.log"))
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if !dev.Zap().Core().Enabled(zapcore.DebugLevel) {
		t.Error("development logger should enable debug by default")
	}

	prod, err := NewLogger(false, filepath.Join(t.TempDir(), "prod.log"))
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if prod.Zap().Core().Enabled(zapcore.DebugLevel) {
		t.Error("production logger should not enable debug by default")
	}
}

func TestLoggerNamedAndWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewLoggerWithZap(zap.New(core))

	child := logger.Named("removal").With(zap.String("run_id", "abc"))
	child.Warn("fallback engaged")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "removal" {
		t.Errorf("logger name = %q, want %q", entries[0].LoggerName, "removal")
	}
	if entries[0].ContextMap()["run_id"] != "abc" {
		t.Errorf("missing run_id field in %v", entries[0].ContextMap())
	}
}

func TestNopLoggerIsSafe(t *testing.T) {
	logger := NewNop()
	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Error("ignored")
	if err := logger.Sync(); err != nil {
		t.Errorf("Sync on nop logger returned %v", err)
	}
}

func TestNilLoggerSync(t *testing.T) {
	var logger *Logger
	if err := logger.Sync(); err != nil {
		t.Errorf("Sync on nil logger returned %v", err)
	}
}
