package removal

import (
	"context"
	"image"
)

// Options carries per-request matting parameters. The deep engine
// ignores them; the session engine forwards them to the native session.
type Options struct {
	// AlphaMatting enables fractional-opacity edge estimation.
	AlphaMatting bool

	// ForegroundThreshold is the alpha-matting foreground cutoff (0-255).
	ForegroundThreshold int

	// BackgroundThreshold is the alpha-matting background cutoff (0-255).
	BackgroundThreshold int
}

// Default alpha-matting thresholds.
const (
	DefaultForegroundThreshold = 240
	DefaultBackgroundThreshold = 10
)

// DefaultOptions returns the standard matting parameters.
func DefaultOptions() Options {
	return Options{
		AlphaMatting:        false,
		ForegroundThreshold: DefaultForegroundThreshold,
		BackgroundThreshold: DefaultBackgroundThreshold,
	}
}

// Engine is the uniform background removal contract. Implementations
// return a new image with per-pixel opacity in the alpha channel; the
// output dimensions always equal the input dimensions.
//
// Engines are safe for concurrent use once constructed; the underlying
// model handle is read-only after load.
type Engine interface {
	// Remove extracts the foreground of img, returning an RGBA image
	// whose alpha channel encodes the estimated opacity.
	Remove(ctx context.Context, img image.Image, opts Options) (image.Image, error)

	// Kind reports which engine family this is.
	Kind() Kind
}
