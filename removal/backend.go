// Native inference backend bindings.
//
// The matting session and segmentation network run on ONNX Runtime through
// CGo. When the runtime is not installed, the default build uses stub
// implementations that report the backend as unavailable.
//
// Build with the real backend:
//
//	CGO_ENABLED=1 go build -tags ort
//
// Build without it (stub mode, the default):
//
//	go build
package removal

import "image"

// mattingSession is an opaque handle to a loaded native matting session.
// At most one instance exists per model identifier (enforced by Registry).
type mattingSession struct {
	// id is used for stub implementation tracking
	id uint64
	// model is the session model identifier this handle was loaded for
	model string
	// valid indicates if this handle is usable
	valid bool
}

// segmentationNet is an opaque handle to the loaded deep segmentation
// network.
type segmentationNet struct {
	// id is used for stub implementation tracking
	id uint64
	// device is the execution device selected at load time ("cpu" or an
	// accelerator name)
	device string
	// valid indicates if this handle is usable
	valid bool
}

// sessionBackendAvailable reports whether the native matting backend is
// linked into this build.
func sessionBackendAvailable() bool {
	return sessionBackendAvailableImpl()
}

// deepBackendAvailable reports whether the native segmentation backend is
// linked into this build.
func deepBackendAvailable() bool {
	return deepBackendAvailableImpl()
}

// newMattingSession loads a matting session for the named model.
// Fails with ErrEngineUnavailable in stub builds.
func newMattingSession(model string) (*mattingSession, error) {
	return newMattingSessionImpl(model)
}

// run performs matting inference on an RGBA image, returning a new RGBA
// image with the estimated foreground alpha.
func (s *mattingSession) run(img *image.NRGBA, opts Options) (*image.NRGBA, error) {
	return runMattingSessionImpl(s, img, opts)
}

// newSegmentationNet loads the deep segmentation network and selects an
// execution device. Fails with ErrEngineUnavailable in stub builds.
func newSegmentationNet() (*segmentationNet, error) {
	return newSegmentationNetImpl()
}

// predict runs the segmentation forward pass over a normalized RGB tensor
// (HWC interleaved, width*height*3 values) and returns a probability mask
// of width*height values in [0,1].
func (n *segmentationNet) predict(input []float32, width, height int) ([]float32, error) {
	return predictSegmentationImpl(n, input, width, height)
}
