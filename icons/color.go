package icons

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.NRGBA{
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"black":       {A: 255},
	"red":         {R: 255, A: 255},
	"green":       {G: 255, A: 255},
	"blue":        {B: 255, A: 255},
	"transparent": {},
}

// ParseBackgroundColor resolves a background color spec to an NRGBA
// value. It accepts the named colors white, black, red, green, blue and
// transparent, plus #RRGGBB (opaque) and #RRGGBBAA hex forms. Anything
// else, including the empty string, resolves to fully transparent; the
// parser never fails.
func ParseBackgroundColor(spec string) color.NRGBA {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" {
		return color.NRGBA{}
	}

	if c, ok := namedColors[spec]; ok {
		return c
	}

	if strings.HasPrefix(spec, "#") {
		hex := spec[1:]
		switch len(hex) {
		case 6:
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return color.NRGBA{
					R: uint8(v >> 16),
					G: uint8(v >> 8),
					B: uint8(v),
					A: 255,
				}
			}
		case 8:
			if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
				return color.NRGBA{
					R: uint8(v >> 24),
					G: uint8(v >> 16),
					B: uint8(v >> 8),
					A: uint8(v),
				}
			}
		}
	}

	return color.NRGBA{}
}
