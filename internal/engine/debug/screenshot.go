// Package debug provides developer tooling for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/scenegraph/internal/engine/texture"
)

// Screenshotter writes frame captures as PNG files.
type Screenshotter struct {
	dir    string
	prefix string
	now    func() time.Time
	seq    int
}

// NewScreenshotter creates a capturer writing prefix_<timestamp>_<n>.png files into dir.
func NewScreenshotter(dir, prefix string) *Screenshotter {
	if prefix == "" {
		prefix = "screenshot"
	}
	return &Screenshotter{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (s *Screenshotter) Filename() string {
	name := fmt.Sprintf("%s_%s_%03d.png", s.prefix, s.now().Format("2006-01-02_15-04-05"), s.seq)
	if s.dir != "" {
		name = filepath.Join(s.dir, name)
	}
	return name
}

// SavePixels writes bottom-up RGBA pixels, as read back from OpenGL, to a new PNG.
func (s *Screenshotter) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return s.SaveImage(texture.FlipVertical(img))
}

// SaveImage writes img to a new PNG and returns its path.
func (s *Screenshotter) SaveImage(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	s.seq++
	return filename, nil
}
