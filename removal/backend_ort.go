//go:build ort && cgo && !stub

// Real CGo implementation of the ONNX Runtime backend.
// Build with: CGO_ENABLED=1 go build -tags ort
//
// Prerequisites:
//  1. ONNX Runtime installed as a shared library (libonnxruntime.so/dylib/dll)
//  2. Set CGO_CFLAGS to include the header path: -I/path/to/onnxruntime/include
//  3. Set CGO_LDFLAGS to link the library: -L/path/to/onnxruntime/lib -lonnxruntime
//
// Example:
//
//	CGO_CFLAGS="-I${ORT_PATH}/include" \
//	CGO_LDFLAGS="-L${ORT_PATH}/lib -lonnxruntime -Wl,-rpath,${ORT_PATH}/lib" \
//	go build -tags ort

package removal

/*
#cgo LDFLAGS: -lonnxruntime

// NOTE: The actual header include is commented out until the runtime is
// integrated. When ONNX Runtime is linked, uncomment:
//
// #include <onnxruntime_c_api.h>
//
// Placeholder declarations keep the file parseable in the meantime:
//
// extern void* ort_create_session(const char* model_path, const char** device_out);
// extern int   ort_run_matting(void* session, const unsigned char* rgba, int w, int h,
//                              int alpha_matting, int fg_threshold, int bg_threshold,
//                              unsigned char* out_rgba);
// extern int   ort_run_segmentation(void* session, const float* input, int w, int h,
//                                   float* out_probs);
// extern void  ort_free_session(void* session);

#include <stdlib.h>
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"image"
	"sync/atomic"
)

// ortHandleCounter assigns IDs to native handles for logging/tracking.
var ortHandleCounter uint64

func sessionBackendAvailableImpl() bool {
	return true
}

func deepBackendAvailableImpl() bool {
	return true
}

// newMattingSessionImpl loads an ONNX matting session for the named model.
// Model files are resolved by the runtime's model cache; a missing or
// corrupt model surfaces as ErrModelLoadFailed from the Registry.
func newMattingSessionImpl(model string) (*mattingSession, error) {
	// TODO(ort): call ort_create_session once the runtime header is wired.
	// Until then this build tag exists to validate the CGo plumbing.
	return nil, fmt.Errorf("%w: ONNX session creation not wired for model %s", ErrModelLoadFailed, model)
}

func runMattingSessionImpl(s *mattingSession, img *image.NRGBA, opts Options) (*image.NRGBA, error) {
	if s == nil || !s.valid {
		return nil, fmt.Errorf("%w: session handle is nil or invalid", ErrInferenceFailed)
	}
	return nil, fmt.Errorf("%w: ONNX matting inference not wired", ErrInferenceFailed)
}

func newSegmentationNetImpl() (*segmentationNet, error) {
	return nil, fmt.Errorf("%w: ONNX segmentation network creation not wired", ErrModelLoadFailed)
}

func predictSegmentationImpl(n *segmentationNet, input []float32, width, height int) ([]float32, error) {
	if n == nil || !n.valid {
		return nil, fmt.Errorf("%w: network handle is nil or invalid", ErrInferenceFailed)
	}
	return nil, fmt.Errorf("%w: ONNX segmentation inference not wired", ErrInferenceFailed)
}

// newOrtHandleID returns a unique ID for native handles.
func newOrtHandleID() uint64 {
	return atomic.AddUint64(&ortHandleCounter, 1)
}
