package icons

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPresetsResolve(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		sizes    []int
		want     []int
		wantErr  bool
	}{
		{"ios preset", "ios", nil, []int{20, 29, 40, 60, 76, 83, 1024}, false},
		{"android preset", "android", nil, []int{48, 72, 96, 144, 192, 512}, false},
		{"web preset", "web", nil, []int{16, 32, 180, 192, 512}, false},
		{"macos preset", "macos", nil, []int{16, 32, 64, 128, 256, 512, 1024}, false},
		{"platform wins over sizes", "ios", []int{100}, []int{20, 29, 40, 60, 76, 83, 1024}, false},
		{"explicit sizes", "", []int{16, 512}, []int{16, 512}, false},
		{"case insensitive platform", "iOS", nil, []int{20, 29, 40, 60, 76, 83, 1024}, false},
		{"unknown platform", "symbian", nil, nil, true},
		{"nothing requested", "", nil, nil, true},
	}
	p := NewPresets()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Resolve(tt.platform, tt.sizes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresetsAllCoversEveryPlatform(t *testing.T) {
	all := make(map[int]bool)
	for _, size := range PlatformSizes["all"] {
		all[size] = true
	}
	for name, sizes := range PlatformSizes {
		if name == "all" {
			continue
		}
		for _, size := range sizes {
			if !all[size] {
				t.Errorf("size %d from %q missing from the all preset", size, name)
			}
		}
	}
}

func TestLoadPresetsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	content := "favicon: [16, 32, 48]\nios: [1024]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPresetsFile(path)
	if err != nil {
		t.Fatalf("LoadPresetsFile() error = %v", err)
	}

	got, err := p.Resolve("favicon", nil)
	if err != nil {
		t.Fatalf("Resolve(favicon) error = %v", err)
	}
	if want := []int{16, 32, 48}; !reflect.DeepEqual(got, want) {
		t.Errorf("favicon sizes = %v, want %v", got, want)
	}

	// User entry overrides the built-in.
	got, err = p.Resolve("ios", nil)
	if err != nil {
		t.Fatalf("Resolve(ios) error = %v", err)
	}
	if want := []int{1024}; !reflect.DeepEqual(got, want) {
		t.Errorf("overridden ios sizes = %v, want %v", got, want)
	}

	// Built-ins survive a user file that does not mention them.
	if _, err := p.Resolve("android", nil); err != nil {
		t.Errorf("Resolve(android) error = %v", err)
	}
}

func TestLoadPresetsFileRejectsBadSizes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty list", "bad: []\n"},
		{"negative size", "bad: [16, -1]\n"},
		{"zero size", "bad: [0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPresetsFile(path); err == nil {
				t.Error("LoadPresetsFile() succeeded, want error")
			}
		})
	}
}

func TestLoadPresetsFileMissing(t *testing.T) {
	if _, err := LoadPresetsFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadPresetsFile() on missing file succeeded, want error")
	}
}
