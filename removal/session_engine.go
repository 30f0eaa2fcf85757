package removal

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// maxSessionSide is the longest side fed to the matting session. Larger
// inputs are downsampled before inference to bound latency and upsampled
// back afterwards.
const maxSessionSide = 1024

// SessionEngine is the session-based matting engine. It wraps a cached
// native session and guarantees that output dimensions equal input
// dimensions regardless of the internal downsample.
type SessionEngine struct {
	model   string
	session *mattingSession

	// infer performs the actual matting pass. Overridable so geometry
	// invariants are testable without the native backend.
	infer func(ctx context.Context, img *image.NRGBA, opts Options) (*image.NRGBA, error)
}

// newSessionEngine loads the native matting session for model.
func newSessionEngine(model string) (*SessionEngine, error) {
	session, err := newMattingSession(model)
	if err != nil {
		return nil, err
	}

	e := &SessionEngine{model: model, session: session}
	e.infer = func(ctx context.Context, img *image.NRGBA, opts Options) (*image.NRGBA, error) {
		return e.session.run(img, opts)
	}
	return e, nil
}

// Kind reports the engine family.
func (e *SessionEngine) Kind() Kind { return KindSession }

// Model returns the session model identifier this engine was loaded with.
func (e *SessionEngine) Model() string { return e.model }

// Remove runs matting over img. Inputs larger than 1024px on the longest
// side are downsampled (aspect-preserving, Lanczos) before inference and
// the result is upsampled back to the exact original dimensions.
func (e *SessionEngine) Remove(ctx context.Context, img image.Image, opts Options) (image.Image, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()
	if origW <= 0 || origH <= 0 {
		return nil, fmt.Errorf("%w: empty input image", ErrDecodeFailed)
	}

	work := img
	downsampled := false
	if longest := maxInt(origW, origH); longest > maxSessionSide {
		ratio := float64(maxSessionSide) / float64(longest)
		newW := int(float64(origW) * ratio)
		newH := int(float64(origH) * ratio)
		work = imaging.Resize(img, newW, newH, imaging.Lanczos)
		downsampled = true
	}

	// Clone also converts to NRGBA, the format the session expects.
	rgba := imaging.Clone(work)

	out, err := e.infer(ctx, rgba, opts)
	if err != nil {
		return nil, err
	}

	if downsampled {
		out = imaging.Resize(out, origW, origH, imaging.Lanczos)
	}
	return out, nil
}

// maxInt returns the maximum of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
