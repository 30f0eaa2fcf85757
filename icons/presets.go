package icons

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlatformSizes maps platform preset names to their canonical icon
// point sizes.
var PlatformSizes = map[string][]int{
	"ios":     {20, 29, 40, 60, 76, 83, 1024},
	"android": {48, 72, 96, 144, 192, 512},
	"web":     {16, 32, 180, 192, 512},
	"macos":   {16, 32, 64, 128, 256, 512, 1024},
	"all":     {16, 20, 29, 32, 40, 48, 60, 64, 72, 76, 83, 96, 128, 144, 180, 192, 256, 512, 1024},
}

// Presets resolves size lists, combining the built-in platform table
// with optional user-defined presets loaded from a YAML file.
type Presets struct {
	platforms map[string][]int
}

// NewPresets returns the built-in platform presets.
func NewPresets() *Presets {
	platforms := make(map[string][]int, len(PlatformSizes))
	for name, sizes := range PlatformSizes {
		platforms[name] = append([]int(nil), sizes...)
	}
	return &Presets{platforms: platforms}
}

// LoadPresetsFile merges user presets from a YAML file into the
// built-ins. The file maps preset names to size lists; a name matching
// a built-in platform overrides it.
func LoadPresetsFile(path string) (*Presets, error) {
	p := NewPresets()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}

	var custom map[string][]int
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("parse presets file %s: %w", path, err)
	}
	for name, sizes := range custom {
		if len(sizes) == 0 {
			return nil, fmt.Errorf("preset %q in %s has no sizes", name, path)
		}
		for _, size := range sizes {
			if size <= 0 {
				return nil, fmt.Errorf("preset %q in %s has invalid size %d", name, path, size)
			}
		}
		p.platforms[strings.ToLower(name)] = sizes
	}
	return p, nil
}

// Resolve returns the size list for platform, or sizes verbatim when no
// platform is named. An unknown platform or an empty result is an error.
func (p *Presets) Resolve(platform string, sizes []int) ([]int, error) {
	if platform != "" {
		preset, ok := p.platforms[strings.ToLower(platform)]
		if !ok {
			return nil, fmt.Errorf("unknown platform %q (known: %s)",
				platform, strings.Join(p.Names(), ", "))
		}
		return append([]int(nil), preset...), nil
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes requested")
	}
	return sizes, nil
}

// Names lists the known preset names in sorted order.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.platforms))
	for name := range p.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
