package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromPixelsFlips(t *testing.T) {
	dir := t.TempDir()
	sc := NewCapture(dir)

	// 2x2 raw framebuffer readback, bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	path, err := sc.FromPixels("cube", pixels, 2, 2)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("expected screenshot in %s, got %s", dir, path)
	}
	if !strings.HasPrefix(filepath.Base(path), "cube_") {
		t.Errorf("expected cube_ prefix, got %s", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}

	// The GL bottom row must end up at the bottom of the saved image.
	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Errorf("expected blue top-left pixel, got r=%d b=%d", r>>8, b>>8)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Errorf("expected red bottom-left pixel, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	sc := NewCapture(t.TempDir())
	if _, err := sc.FromPixels("cube", make([]byte, 7), 2, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func TestFromImage(t *testing.T) {
	sc := NewCapture(t.TempDir())

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	path, err := sc.FromImage("", img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "model_") {
		t.Errorf("expected model_ fallback prefix, got %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot file not written: %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		maxDim int
		wantW  int
		wantH  int
	}{
		{"landscape", 200, 100, 96, 96, 48},
		{"portrait", 100, 200, 96, 48, 96},
		{"square", 512, 512, 96, 96, 96},
		{"no upscale", 50, 30, 96, 50, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			thumb := Thumbnail(src, tt.maxDim)
			if thumb.Bounds().Dx() != tt.wantW || thumb.Bounds().Dy() != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d",
					tt.wantW, tt.wantH, thumb.Bounds().Dx(), thumb.Bounds().Dy())
			}
		})
	}
}

func TestThumbnailPreservesColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	thumb := Thumbnail(src, 16)
	r, g, b, _ := thumb.At(8, 8).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("expected uniform color to survive downscale, got r=%d g=%d b=%d",
			r>>8, g>>8, b>>8)
	}
}
