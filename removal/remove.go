package removal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	_ "image/gif"
	_ "image/jpeg"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"iconforge/core"
	"iconforge/logging"
)

// Request describes a single background removal job. Immutable once
// submitted to the Pool.
type Request struct {
	// SourcePath is the input image file (any decodable raster format).
	SourcePath string

	// OutputPath is where the matted PNG is written. Empty derives a
	// sibling path with a _nobg suffix, disambiguated on collision.
	OutputPath string

	// Engine selects the engine family; empty selects the session engine.
	Engine Kind

	// Model is the session model name; empty selects the default.
	Model string

	// Matting carries the alpha-matting parameters.
	Matting Options

	// PostProcess applies the alpha cleanup step to the engine output.
	PostProcess bool

	// Timeout is the wall-clock limit for the whole call, enforced at
	// the submission site. Zero selects DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout bounds a standalone removal call.
const DefaultTimeout = 120 * time.Second

// NewRequest returns a Request for sourcePath with the standard engine,
// matting and post-processing defaults.
func NewRequest(sourcePath string) Request {
	return Request{
		SourcePath:  sourcePath,
		Engine:      KindSession,
		Matting:     DefaultOptions(),
		PostProcess: true,
		Timeout:     DefaultTimeout,
	}
}

// Result describes a completed background removal.
type Result struct {
	// OutputPath is the newly written PNG with background removed.
	OutputPath string

	// Engine is the engine family that actually ran (after fallback).
	Engine Kind

	// Duration is the wall-clock time of decode, inference and encode.
	Duration time.Duration
}

// Remover executes removal requests synchronously against a Registry.
// It is the unit of work the Pool runs on its workers; callers normally
// go through Pool.Submit rather than calling Remove directly.
type Remover struct {
	registry *Registry
	logger   *logging.Logger
}

// NewRemover creates a Remover backed by registry.
func NewRemover(registry *Registry, logger *logging.Logger) *Remover {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Remover{
		registry: registry,
		logger:   logger.Named("removal"),
	}
}

// Remove decodes the source image, runs the selected engine, optionally
// post-processes the alpha channel and writes the result as a PNG.
//
// When the deep engine is requested but its backend is not linked, the
// call degrades to the session engine with a warning (the session backend
// being absent as well is reported as ErrEngineUnavailable).
func (r *Remover) Remove(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	kind := req.Engine
	if kind == "" {
		kind = KindSession
	}
	if kind == KindDeep && !r.registry.Available(KindDeep) {
		r.logger.Warn("deep segmentation backend not available, falling back to session engine")
		kind = KindSession
	}

	engine, err := r.registry.Engine(kind, req.Model)
	if err != nil {
		return Result{}, err
	}

	img, err := decodeImageFile(req.SourcePath)
	if err != nil {
		return Result{}, err
	}

	out, err := engine.Remove(ctx, img, req.Matting)
	if err != nil {
		if errors.Is(err, ErrInferenceFailed) || errors.Is(err, ErrDecodeFailed) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	if req.PostProcess {
		out = PostProcessAlpha(out)
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = core.UniquePath(core.DerivedPath(req.SourcePath, "_nobg"))
	}
	if err := writePNG(outputPath, out); err != nil {
		return Result{}, err
	}

	duration := time.Since(start)
	r.logger.Info("background removed",
		zap.String("source", req.SourcePath),
		zap.String("output", outputPath),
		zap.String("engine", string(kind)),
		zap.Duration("duration", duration))

	return Result{
		OutputPath: outputPath,
		Engine:     kind,
		Duration:   duration,
	}, nil
}

// decodeImageFile reads and decodes a raster image from disk.
func decodeImageFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	return img, nil
}

// writePNG writes img to path as a lossless PNG, creating parent
// directories as needed.
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodeFailed, path, err)
	}
	return nil
}
