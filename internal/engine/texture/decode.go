package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Decode decodes image data, choosing the decoder from name's extension.
// PNG, JPEG, BMP and TGA are supported.
func Decode(name string, data []byte) (*image.RGBA, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".tga":
		return DecodeTGA(data)
	case ".bmp":
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding BMP %s: %w", name, err)
		}
		return ToRGBA(img), nil
	case ".png", ".jpg", ".jpeg":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		return ToRGBA(img), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ToRGBA returns img as a zero-origin *image.RGBA, converting when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// FlipVertical returns a copy of img mirrored top to bottom.
// OpenGL expects the first row of texture data at the bottom.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rowSize := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Max.Y-1-y)
		dst := y * out.Stride
		copy(out.Pix[dst:dst+rowSize], img.Pix[src:src+rowSize])
	}
	return out
}

// Fit scales img down so neither side exceeds maxSize, keeping the aspect ratio.
// Images that already fit are returned unchanged.
func Fit(img *image.RGBA, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
