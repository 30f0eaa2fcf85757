package core

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ICONFORGE_TEST_VAR", "set")
	if got := GetEnvOrDefault("ICONFORGE_TEST_VAR", "fallback"); got != "set" {
		t.Errorf("got %q, want %q", got, "set")
	}
	if got := GetEnvOrDefault("ICONFORGE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("got %q, want %q", got, "fallback")
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      int
		expected int
	}{
		{"valid integer", "42", 7, 42},
		{"negative integer", "-3", 7, -3},
		{"invalid falls back", "abc", 7, 7},
		{"empty falls back", "", 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ICONFORGE_TEST_INT", tt.value)
			if got := ParseIntEnv("ICONFORGE_TEST_INT", tt.def); got != tt.expected {
				t.Errorf("ParseIntEnv(%q) = %d, want %d", tt.value, got, tt.expected)
			}
		})
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{"true", "true", false, true},
		{"one", "1", false, true},
		{"yes", "yes", false, true},
		{"on uppercase", "ON", false, true},
		{"false", "false", true, false},
		{"zero", "0", true, false},
		{"off", "off", true, false},
		{"garbage falls back", "maybe", true, true},
		{"empty falls back", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ICONFORGE_TEST_BOOL", tt.value)
			if got := ParseBoolEnv("ICONFORGE_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("ParseBoolEnv(%q) = %v, want %v", tt.value, got, tt.expected)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("ICONFORGE_TEST_DUR", "90")
	if got := ParseDurationEnv("ICONFORGE_TEST_DUR", 10); got != 90*time.Second {
		t.Errorf("got %v, want 90s", got)
	}

	t.Setenv("ICONFORGE_TEST_DUR", "")
	if got := ParseDurationEnv("ICONFORGE_TEST_DUR", 10); got != 10*time.Second {
		t.Errorf("got %v, want default 10s", got)
	}
}
