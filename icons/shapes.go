package icons

import (
	"image"
	"math"
)

// Shape selects the alpha mask applied to a generated icon.
type Shape string

const (
	ShapeSquare   Shape = "square"
	ShapeCircle   Shape = "circle"
	ShapeRounded  Shape = "rounded"
	ShapeSquircle Shape = "squircle"
)

// ParseShape maps a user-supplied shape name to a Shape. Empty selects
// square (no mask).
func ParseShape(s string) (Shape, bool) {
	switch Shape(s) {
	case ShapeSquare, ShapeCircle, ShapeRounded, ShapeSquircle:
		return Shape(s), true
	case "":
		return ShapeSquare, true
	default:
		return "", false
	}
}

// cornerRadius returns the corner radius for shape at the given size.
// The squircle is a rounded rectangle with a larger radius, an
// approximation of the iOS superellipse rather than a true curve.
func cornerRadius(size int, shape Shape) float64 {
	switch shape {
	case ShapeCircle:
		return float64(size) / 2
	case ShapeRounded:
		return float64(size / 6)
	case ShapeSquircle:
		return float64(size / 4)
	default:
		return 0
	}
}

// BuildMask produces a size x size alpha mask for shape. Square is the
// identity mask (fully opaque). The mask edge is anti-aliased with
// single-pixel coverage from the signed distance to the shape boundary.
func BuildMask(size int, shape Shape) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	if shape == ShapeSquare || shape == "" {
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}

	radius := cornerRadius(size, shape)
	half := float64(size) / 2
	inner := half - radius

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Signed distance from the pixel center to a rounded box
			// centered in the mask; negative inside.
			qx := math.Abs(float64(x)+0.5-half) - inner
			qy := math.Abs(float64(y)+0.5-half) - inner
			d := math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) +
				math.Min(math.Max(qx, qy), 0) - radius

			coverage := 0.5 - d
			if coverage < 0 {
				coverage = 0
			} else if coverage > 1 {
				coverage = 1
			}
			mask.Pix[y*mask.Stride+x] = uint8(coverage*255 + 0.5)
		}
	}
	return mask
}

// ApplyMask multiplies the alpha channel of img by mask. The mask must
// have the same dimensions as img.
func ApplyMask(img *image.NRGBA, mask *image.Alpha) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m := uint16(mask.Pix[y*mask.Stride+x])
			i := y*img.Stride + x*4 + 3
			img.Pix[i] = uint8(uint16(img.Pix[i]) * m / 255)
		}
	}
}
