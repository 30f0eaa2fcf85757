package removal

import (
	"context"
	"image"
	"image/color"
	"testing"
)

func TestSessionEngineDownsamplesLargeInputs(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		wantInferW int
		wantInferH int
	}{
		{"small passes through", 640, 480, 640, 480},
		{"exactly at limit", 1024, 1024, 1024, 1024},
		{"wide landscape", 3000, 1500, 1024, 512},
		{"tall portrait", 1500, 3000, 512, 1024},
		{"huge square", 4096, 4096, 1024, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inferW, inferH int
			e := &SessionEngine{
				model: DefaultSessionModel,
				infer: func(_ context.Context, img *image.NRGBA, _ Options) (*image.NRGBA, error) {
					b := img.Bounds()
					inferW, inferH = b.Dx(), b.Dy()
					return img, nil
				},
			}

			src := image.NewNRGBA(image.Rect(0, 0, tt.width, tt.height))
			out, err := e.Remove(context.Background(), src, DefaultOptions())
			if err != nil {
				t.Fatalf("Remove() error = %v", err)
			}

			if inferW != tt.wantInferW || inferH != tt.wantInferH {
				t.Errorf("inference size = %dx%d, want %dx%d",
					inferW, inferH, tt.wantInferW, tt.wantInferH)
			}
			if b := out.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("output size = %dx%d, want %dx%d",
					b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}

func TestSessionEngineRejectsEmptyImage(t *testing.T) {
	e := &SessionEngine{
		infer: func(_ context.Context, img *image.NRGBA, _ Options) (*image.NRGBA, error) {
			t.Fatal("infer should not run on an empty image")
			return img, nil
		},
	}
	if _, err := e.Remove(context.Background(), image.NewNRGBA(image.Rect(0, 0, 0, 0)), DefaultOptions()); err == nil {
		t.Error("Remove() on empty image succeeded, want error")
	}
}

func TestSessionEnginePropagatesInferError(t *testing.T) {
	e := &SessionEngine{
		infer: func(_ context.Context, _ *image.NRGBA, _ Options) (*image.NRGBA, error) {
			return nil, ErrInferenceFailed
		},
	}
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if _, err := e.Remove(context.Background(), src, DefaultOptions()); err == nil {
		t.Error("Remove() succeeded, want inference error")
	}
}

func TestSessionEngineConvertsInputToNRGBA(t *testing.T) {
	var gotAt color.NRGBA
	e := &SessionEngine{
		infer: func(_ context.Context, img *image.NRGBA, _ Options) (*image.NRGBA, error) {
			gotAt = img.NRGBAAt(0, 0)
			return img, nil
		},
	}

	// A paletted source forces the NRGBA conversion path.
	src := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{
		color.NRGBA{R: 200, G: 100, B: 50, A: 255},
	})
	if _, err := e.Remove(context.Background(), src, DefaultOptions()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	want := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	if gotAt != want {
		t.Errorf("infer saw pixel %v, want %v", gotAt, want)
	}
}
