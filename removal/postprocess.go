package removal

import (
	"image"

	"github.com/disintegration/imaging"
)

// Alpha cleanup parameters. Values below the floor are clamped to fully
// transparent and values above the ceiling to fully opaque, suppressing
// compression and matting noise; a small blur then softens jagged edges.
const (
	alphaFloor      = 20
	alphaCeil       = 235
	alphaBlurradius = 0.5
)

// PostProcessAlpha cleans up the alpha channel of a matted image without
// altering the color channels. Near-zero alpha becomes fully transparent,
// near-full alpha becomes fully opaque, and the alpha channel alone is
// blurred with a small radius.
func PostProcessAlpha(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	bounds := out.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Extract and clamp the alpha channel.
	alpha := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := out.Pix[y*out.Stride+x*4+3]
			switch {
			case a < alphaFloor:
				a = 0
			case a > alphaCeil:
				a = 255
			}
			alpha.Pix[y*alpha.Stride+x] = a
		}
	}

	// Blur only the alpha channel, then merge it back.
	blurred := imaging.Blur(alpha, alphaBlurradius)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Pix[y*out.Stride+x*4+3] = blurred.Pix[y*blurred.Stride+x*4]
		}
	}
	return out
}
