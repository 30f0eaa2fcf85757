package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDerivedPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		suffix   string
		expected string
	}{
		{
			name:     "jpg input becomes png",
			input:    filepath.Join("tmp", "cat.jpg"),
			suffix:   "_nobg",
			expected: filepath.Join("tmp", "cat_nobg.png"),
		},
		{
			name:     "png input keeps png",
			input:    filepath.Join("tmp", "cat.png"),
			suffix:   "_32x32",
			expected: filepath.Join("tmp", "cat_32x32.png"),
		},
		{
			name:     "no extension",
			input:    filepath.Join("tmp", "cat"),
			suffix:   "_bg",
			expected: filepath.Join("tmp", "cat_bg.png"),
		},
		{
			name:     "dotted stem keeps inner dots",
			input:    filepath.Join("tmp", "cat.v2.jpeg"),
			suffix:   "_nobg",
			expected: filepath.Join("tmp", "cat.v2_nobg.png"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DerivedPath(tt.input, tt.suffix)
			if result != tt.expected {
				t.Errorf("DerivedPath(%q, %q) = %q, want %q", tt.input, tt.suffix, result, tt.expected)
			}
		})
	}
}

func TestSizeSuffix(t *testing.T) {
	if got := SizeSuffix(512); got != "_512x512" {
		t.Errorf("SizeSuffix(512) = %q, want %q", got, "_512x512")
	}
}

func TestUniquePathNoCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	if got := UniquePath(path); got != path {
		t.Errorf("UniquePath with no collision = %q, want %q", got, path)
	}
}

func TestUniquePathCollisions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")

	// First collision gets _1, second gets _2.
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want1 := filepath.Join(dir, "icon_1.png")
	if got := UniquePath(path); got != want1 {
		t.Errorf("first collision = %q, want %q", got, want1)
	}

	if err := os.WriteFile(want1, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	want2 := filepath.Join(dir, "icon_2.png")
	if got := UniquePath(path); got != want2 {
		t.Errorf("second collision = %q, want %q", got, want2)
	}
}

func TestFindInputFileAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, _, err := FindInputFile(path)
	if err != nil {
		t.Fatalf("FindInputFile returned error: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
}

func TestFindInputFileMissing(t *testing.T) {
	_, searched, err := FindInputFile("definitely-does-not-exist-873421.png")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(searched) == 0 {
		t.Error("expected searched directories to be reported")
	}
}
