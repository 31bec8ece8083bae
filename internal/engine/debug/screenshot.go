// Package debug provides screenshot capture and thumbnail generation
// for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// Capture writes viewer framebuffer snapshots to disk as PNG.
type Capture struct {
	dir string
}

// NewCapture returns a capture handler writing into dir. An empty dir
// writes into the working directory.
func NewCapture(dir string) *Capture {
	return &Capture{dir: dir}
}

// FromPixels saves raw RGBA pixel data as read back from the
// framebuffer. pixels must hold width*height*4 bytes. Rows are flipped
// vertically since OpenGL has origin at bottom-left.
func (c *Capture) FromPixels(name string, pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel buffer is %d bytes, want %d", len(pixels), width*height*4)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		dst := y * img.Stride
		copy(img.Pix[dst:dst+row], pixels[src:src+row])
	}

	return c.save(name, img)
}

// FromImage saves an image that is already top-left oriented.
func (c *Capture) FromImage(name string, img image.Image) (string, error) {
	return c.save(name, img)
}

func (c *Capture) save(name string, img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0o755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	path := c.targetPath(name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, nil
}

// targetPath builds a timestamped filename so repeated captures of the
// same model never overwrite each other.
func (c *Capture) targetPath(name string) string {
	if name == "" {
		name = "model"
	}
	stamp := time.Now().Format("2006-01-02_15-04-05")
	path := fmt.Sprintf("%s_%s.png", name, stamp)
	if c.dir != "" {
		path = filepath.Join(c.dir, path)
	}
	return path
}

// Thumbnail downscales a capture so the longest side fits maxDim pixels,
// preserving aspect ratio. Images already within the limit are returned
// as RGBA copies at their original size.
func Thumbnail(src image.Image, maxDim int) *image.RGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || maxDim <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	if scale > 1 {
		scale = 1
	}

	dw := int(float64(w)*scale + 0.5)
	dh := int(float64(h)*scale + 0.5)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
	return dst
}
