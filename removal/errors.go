// Package removal provides background removal for raster images.
//
// Two engines are supported behind a uniform interface: a session-based
// matting engine ("rembg", fast) and a deep segmentation engine ("rmbg2",
// high quality). Loaded models are cached in a Registry and inference is
// executed on a small fixed worker Pool to bound memory pressure.
package removal

import "errors"

// Sentinel errors for background removal operations.
// These are domain-specific errors that provide clear failure modes.
var (
	// ErrEngineUnavailable means the native inference backend is not
	// linked into this build. Permanent; not retried.
	ErrEngineUnavailable = errors.New("removal: inference backend not available")

	// ErrModelLoadFailed means model weights failed to load after any
	// fallback. Cached for the process lifetime.
	ErrModelLoadFailed = errors.New("removal: failed to load model")

	// ErrUnknownEngine means the requested engine kind is not recognized.
	ErrUnknownEngine = errors.New("removal: unknown engine kind")

	// Per-request errors, not retried automatically.
	ErrDecodeFailed    = errors.New("removal: failed to decode input image")
	ErrInferenceFailed = errors.New("removal: inference failed")
	ErrEncodeFailed    = errors.New("removal: failed to write output image")

	// ErrTimeout means the per-call deadline elapsed. The in-flight work
	// is abandoned to the pool, not forcibly killed.
	ErrTimeout = errors.New("removal: background removal timed out")

	// ErrPoolClosed means the worker pool has been shut down.
	ErrPoolClosed = errors.New("removal: worker pool is closed")
)
