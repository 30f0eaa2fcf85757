package icons

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"iconforge/core"
	"iconforge/logging"
	"iconforge/removal"
)

// Remover offloads background removal work. Satisfied by *removal.Pool.
type Remover interface {
	Submit(ctx context.Context, req removal.Request) (removal.Result, error)
}

// Options controls a single icon generation batch.
type Options struct {
	// Sizes is the explicit size list; ignored when Platform is set.
	Sizes []int

	// Platform names a size preset (ios, android, web, macos, all, or
	// a user-defined preset).
	Platform string

	// Shape is the mask applied to every icon; square applies none.
	Shape Shape

	// BackgroundColor is composited under the icon when it resolves to
	// a non-transparent color.
	BackgroundColor string

	// RemoveBackground runs background removal on the source first.
	RemoveBackground bool

	// Engine and Model select the removal backend when
	// RemoveBackground is set.
	Engine removal.Kind
	Model  string

	// OutputDir receives the generated files; empty uses the source
	// image's directory.
	OutputDir string

	// Timeout bounds the background removal step only.
	Timeout time.Duration
}

// SizeResult is the outcome for one requested size. Err is set when that
// size failed; the other sizes are unaffected.
type SizeResult struct {
	Size int
	Path string
	Err  error
}

// Paths returns the output paths of the successful results, in request
// order.
func Paths(results []SizeResult) []string {
	paths := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// Generator derives multi-size icon sets from a source image.
type Generator struct {
	presets *Presets
	remover Remover
	logger  *logging.Logger
}

// NewGenerator creates a Generator. remover may be nil, in which case
// RemoveBackground requests are skipped with a warning.
func NewGenerator(presets *Presets, remover Remover, logger *logging.Logger) *Generator {
	if presets == nil {
		presets = NewPresets()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		presets: presets,
		remover: remover,
		logger:  logger.Named("icons"),
	}
}

// Generate produces one PNG per resolved size from the image at
// sourcePath. Results come back in size-list order, one entry per size;
// a failed size carries its error and does not abort the others.
//
// A failed background removal degrades to the original image with a
// warning rather than failing the batch.
func (g *Generator) Generate(ctx context.Context, sourcePath string, opts Options) ([]SizeResult, error) {
	sizes, err := g.presets.Resolve(opts.Platform, opts.Sizes)
	if err != nil {
		return nil, err
	}

	workingPath := sourcePath
	if opts.RemoveBackground {
		workingPath = g.removeBackground(ctx, sourcePath, opts)
	}

	src, err := decodeImage(workingPath)
	if err != nil {
		return nil, err
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(sourcePath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	background := ParseBackgroundColor(opts.BackgroundColor)

	// Output names are claimed up front; concurrent renders of duplicate
	// sizes would otherwise resolve the same path and overwrite each other.
	taken := make(map[string]struct{}, len(sizes))
	paths := make([]string, len(sizes))
	for i, size := range sizes {
		if size > 0 {
			paths[i] = reserveOutputPath(filepath.Join(outputDir, stem+core.SizeSuffix(size)+".png"), taken)
		}
	}

	results := make([]SizeResult, len(sizes))
	var grp errgroup.Group
	grp.SetLimit(runtime.NumCPU())
	for i, size := range sizes {
		i, size := i, size
		grp.Go(func() error {
			path, err := g.renderSize(src, size, opts.Shape, background, paths[i])
			if err != nil {
				g.logger.Warn("icon size failed",
					zap.Int("size", size),
					zap.Error(err))
			}
			results[i] = SizeResult{Size: size, Path: path, Err: err}
			return nil
		})
	}
	grp.Wait()

	g.logger.Info("icon batch complete",
		zap.String("source", sourcePath),
		zap.Int("sizes", len(sizes)),
		zap.Int("succeeded", len(Paths(results))))
	return results, nil
}

// removeBackground runs the matting step and returns the path to use as
// the working image, falling back to sourcePath on any failure.
func (g *Generator) removeBackground(ctx context.Context, sourcePath string, opts Options) string {
	if g.remover == nil {
		g.logger.Warn("no removal pool configured, skipping background removal")
		return sourcePath
	}

	req := removal.NewRequest(sourcePath)
	req.Engine = opts.Engine
	req.Model = opts.Model
	if opts.Timeout > 0 {
		req.Timeout = opts.Timeout
	}

	res, err := g.remover.Submit(ctx, req)
	if err != nil {
		g.logger.Warn("background removal failed, using original image",
			zap.String("source", sourcePath),
			zap.Error(err))
		return sourcePath
	}
	g.logger.Info("background removed",
		zap.String("source", sourcePath),
		zap.String("matted", res.OutputPath))
	return res.OutputPath
}

// renderSize produces the icon for one size at its reserved output path:
// exact-square resize, shape mask, optional solid background underneath,
// PNG write.
func (g *Generator) renderSize(src image.Image, size int, shape Shape, background color.NRGBA, path string) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("invalid icon size %d", size)
	}

	icon := imaging.Resize(src, size, size, imaging.Lanczos)
	if shape != "" && shape != ShapeSquare {
		ApplyMask(icon, BuildMask(size, shape))
	}

	var out image.Image = icon
	if background.A > 0 {
		out = compositeOnColor(icon, background)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}

// reserveOutputPath picks a collision-free output path for one icon in a
// batch. Names already claimed by the batch count as taken even though
// their files do not exist yet.
func reserveOutputPath(path string, taken map[string]struct{}) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	candidate := path
	for counter := 1; ; counter++ {
		if _, claimed := taken[candidate]; !claimed {
			if _, err := os.Stat(candidate); os.IsNotExist(err) {
				taken[candidate] = struct{}{}
				return candidate
			}
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}
}

// compositeOnColor draws img over a solid background using straight
// alpha compositing.
func compositeOnColor(img *image.NRGBA, c color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// decodeImage reads and decodes a raster image from disk.
func decodeImage(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
