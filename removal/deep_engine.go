package removal

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// deepInferenceSize is the fixed square resolution the segmentation
// network is run at.
const deepInferenceSize = 1024

// ImageNet channel statistics used to normalize network input.
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// DeepEngine is the deep segmentation engine. It predicts a per-pixel
// foreground probability mask at a fixed inference resolution and applies
// it as the alpha channel of the untouched full-resolution image: the RGB
// channels are never altered.
type DeepEngine struct {
	net    *segmentationNet
	device string

	// predict runs the forward pass. Overridable so the surrounding
	// geometry is testable without the native backend.
	predict func(ctx context.Context, input []float32, width, height int) ([]float32, error)
}

// newDeepEngine loads the segmentation network and records the selected
// execution device.
func newDeepEngine() (*DeepEngine, error) {
	net, err := newSegmentationNet()
	if err != nil {
		return nil, err
	}

	e := &DeepEngine{net: net, device: net.device}
	e.predict = func(ctx context.Context, input []float32, width, height int) ([]float32, error) {
		return e.net.predict(input, width, height)
	}
	return e, nil
}

// Kind reports the engine family.
func (e *DeepEngine) Kind() Kind { return KindDeep }

// Device returns the execution device the network was loaded on.
func (e *DeepEngine) Device() string { return e.device }

// Remove segments the foreground of img. The input is converted to RGB,
// scaled to the fixed inference resolution and normalized; the predicted
// probability mask is scaled back to the original size and written into
// the alpha channel of a copy of the original image.
func (e *DeepEngine) Remove(ctx context.Context, img image.Image, _ Options) (image.Image, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		return nil, fmt.Errorf("%w: empty input image", ErrDecodeFailed)
	}

	square := scaleNRGBA(img, deepInferenceSize, deepInferenceSize)
	input := normalizeImageNet(square)

	probs, err := e.predict(ctx, input, deepInferenceSize, deepInferenceSize)
	if err != nil {
		return nil, err
	}
	if len(probs) != deepInferenceSize*deepInferenceSize {
		return nil, fmt.Errorf("%w: mask has %d values, want %d",
			ErrInferenceFailed, len(probs), deepInferenceSize*deepInferenceSize)
	}

	mask := probsToGray(probs, deepInferenceSize, deepInferenceSize)
	fullMask := scaleGray(mask, origW, origH)

	// Clone preserves the 8-bit RGB values exactly; only alpha changes.
	out := imaging.Clone(img)
	for y := 0; y < origH; y++ {
		for x := 0; x < origW; x++ {
			out.Pix[y*out.Stride+x*4+3] = fullMask.GrayAt(x, y).Y
		}
	}
	return out, nil
}

// normalizeImageNet converts an NRGBA image to an interleaved RGB float32
// tensor normalized with ImageNet mean and standard deviation.
func normalizeImageNet(img *image.NRGBA) []float32 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	output := make([]float32, width*height*3)
	idx := 0
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width; x++ {
			r := float32(row[x*4]) / 255.0
			g := float32(row[x*4+1]) / 255.0
			b := float32(row[x*4+2]) / 255.0
			output[idx] = (r - imagenetMean[0]) / imagenetStd[0]
			output[idx+1] = (g - imagenetMean[1]) / imagenetStd[1]
			output[idx+2] = (b - imagenetMean[2]) / imagenetStd[2]
			idx += 3
		}
	}
	return output
}

// probsToGray converts probabilities in [0,1] to an 8-bit grayscale mask.
func probsToGray(probs []float32, width, height int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for i, p := range probs {
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		mask.Pix[i] = uint8(p*255 + 0.5)
	}
	return mask
}

// scaleNRGBA resizes src to exactly width x height using high-quality
// CatmullRom resampling.
func scaleNRGBA(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// scaleGray resizes a grayscale mask to exactly width x height.
func scaleGray(src *image.Gray, width, height int) *image.Gray {
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
