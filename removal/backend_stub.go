//go:build !ort || stub

// Stub implementation of the native backend bindings for when ONNX Runtime
// is not available. Build with: go build (no tags), or go build -tags stub.

package removal

import (
	"fmt"
	"image"
	"sync/atomic"
)

// stubHandleCounter generates unique IDs for stub handles
var stubHandleCounter uint64

func sessionBackendAvailableImpl() bool {
	return false
}

func deepBackendAvailableImpl() bool {
	return false
}

// newMattingSessionImpl is the stub implementation of newMattingSession.
// The stub cannot load models; it reports the backend as unavailable so
// callers can fall back or surface a typed failure.
func newMattingSessionImpl(model string) (*mattingSession, error) {
	return nil, fmt.Errorf("%w: onnxruntime not linked (stub build); "+
		"build with CGO and the 'ort' tag to enable matting (model %s)",
		ErrEngineUnavailable, model)
}

// runMattingSessionImpl is the stub implementation of session inference.
func runMattingSessionImpl(s *mattingSession, img *image.NRGBA, opts Options) (*image.NRGBA, error) {
	if s == nil || !s.valid {
		return nil, fmt.Errorf("%w: session handle is nil or invalid", ErrInferenceFailed)
	}
	return nil, fmt.Errorf("%w: onnxruntime not linked (stub build)", ErrInferenceFailed)
}

// newSegmentationNetImpl is the stub implementation of newSegmentationNet.
func newSegmentationNetImpl() (*segmentationNet, error) {
	return nil, fmt.Errorf("%w: onnxruntime not linked (stub build); "+
		"build with CGO and the 'ort' tag to enable deep segmentation",
		ErrEngineUnavailable)
}

// predictSegmentationImpl is the stub implementation of the forward pass.
func predictSegmentationImpl(n *segmentationNet, input []float32, width, height int) ([]float32, error) {
	if n == nil || !n.valid {
		return nil, fmt.Errorf("%w: network handle is nil or invalid", ErrInferenceFailed)
	}
	return nil, fmt.Errorf("%w: onnxruntime not linked (stub build)", ErrInferenceFailed)
}

// newStubHandleID returns a unique ID for stub handles. Kept for parity
// with the real backend, which tracks native handles by ID.
func newStubHandleID() uint64 {
	return atomic.AddUint64(&stubHandleCounter, 1)
}
