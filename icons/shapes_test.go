package icons

import (
	"image"
	"testing"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Shape
		ok    bool
	}{
		{"square", "square", ShapeSquare, true},
		{"circle", "circle", ShapeCircle, true},
		{"rounded", "rounded", ShapeRounded, true},
		{"squircle", "squircle", ShapeSquircle, true},
		{"empty defaults to square", "", ShapeSquare, true},
		{"unknown", "hexagon", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseShape(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseShape(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBuildMaskDimensions(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeCircle, ShapeRounded, ShapeSquircle} {
		for _, size := range []int{16, 64, 512} {
			mask := BuildMask(size, shape)
			if b := mask.Bounds(); b.Dx() != size || b.Dy() != size {
				t.Errorf("BuildMask(%d, %q) size = %dx%d, want %dx%d",
					size, shape, b.Dx(), b.Dy(), size, size)
			}
		}
	}
}

func TestBuildMaskSquareIsFullyOpaque(t *testing.T) {
	mask := BuildMask(32, ShapeSquare)
	for i, a := range mask.Pix {
		if a != 255 {
			t.Fatalf("square mask pixel %d = %d, want 255", i, a)
		}
	}
}

func TestBuildMaskCircleGeometry(t *testing.T) {
	const size = 512
	mask := BuildMask(size, ShapeCircle)

	corners := [][2]int{{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1}}
	for _, c := range corners {
		if a := mask.AlphaAt(c[0], c[1]).A; a != 0 {
			t.Errorf("corner (%d,%d) alpha = %d, want 0", c[0], c[1], a)
		}
	}
	if a := mask.AlphaAt(size/2, size/2).A; a != 255 {
		t.Errorf("center alpha = %d, want 255", a)
	}
	// Edge midpoints sit on the circle boundary.
	if a := mask.AlphaAt(size/2, 1).A; a != 255 {
		t.Errorf("top midpoint alpha = %d, want 255", a)
	}
}

func TestBuildMaskRoundedCorners(t *testing.T) {
	const size = 120
	tests := []struct {
		name  string
		shape Shape
	}{
		{"rounded has corner radius size/6", ShapeRounded},
		{"squircle has corner radius size/4", ShapeSquircle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := BuildMask(size, tt.shape)
			if a := mask.AlphaAt(0, 0).A; a != 0 {
				t.Errorf("corner alpha = %d, want 0", a)
			}
			if a := mask.AlphaAt(size/2, size/2).A; a != 255 {
				t.Errorf("center alpha = %d, want 255", a)
			}
			// Edge midpoints lie on the straight sides.
			if a := mask.AlphaAt(size/2, 1).A; a != 255 {
				t.Errorf("edge midpoint alpha = %d, want 255", a)
			}
		})
	}
}

func TestSquircleRoundsMoreThanRounded(t *testing.T) {
	const size = 240
	rounded := BuildMask(size, ShapeRounded)
	squircle := BuildMask(size, ShapeSquircle)

	// A point inside the rounded shape's corner but outside the
	// squircle's larger cut.
	x, y := 12, 12
	if rounded.AlphaAt(x, y).A <= squircle.AlphaAt(x, y).A {
		t.Errorf("at (%d,%d): rounded alpha %d should exceed squircle alpha %d",
			x, y, rounded.AlphaAt(x, y).A, squircle.AlphaAt(x, y).A)
	}
}

func TestApplyMaskMultipliesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Pix[3] = 255 // (0,0) fully opaque
	img.Pix[7] = 128 // (1,0) half opaque

	mask := image.NewAlpha(image.Rect(0, 0, 2, 1))
	mask.Pix[0] = 0
	mask.Pix[1] = 255

	ApplyMask(img, mask)
	if img.Pix[3] != 0 {
		t.Errorf("masked-out alpha = %d, want 0", img.Pix[3])
	}
	if img.Pix[7] != 128 {
		t.Errorf("passthrough alpha = %d, want 128", img.Pix[7])
	}
}
