// Package texture decodes, converts and generates images for GPU upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// ErrTruncatedTGA is returned when pixel data ends early.
var ErrTruncatedTGA = errors.New("truncated TGA data")

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bytesPerPx  int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("%w: header", ErrTruncatedTGA)
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bytesPerPx:  int(data[16]) / 8,
		topToBottom: data[17]&0x20 != 0,
	}
	if h.colorMap != 0 {
		return h, fmt.Errorf("color-mapped TGA not supported")
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("unsupported TGA type %d", h.imageType)
	}
	if h.bytesPerPx != 3 && h.bytesPerPx != 4 {
		return h, fmt.Errorf("unsupported TGA bit depth %d", data[16])
	}
	if h.width == 0 || h.height == 0 {
		return h, fmt.Errorf("invalid TGA dimensions %dx%d", h.width, h.height)
	}
	return h, nil
}

// DecodeTGA decodes an uncompressed or RLE-compressed true-color TGA image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: image id", ErrTruncatedTGA)
	}

	d := tgaDecoder{
		h:   h,
		src: data[offset:],
		img: image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
	}
	if h.imageType == TGATypeRLE {
		err = d.rle()
	} else {
		err = d.raw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	h   tgaHeader
	src []byte
	pos int
	px  int
	img *image.RGBA
}

func (d *tgaDecoder) total() int {
	return d.h.width * d.h.height
}

// pixel reads one BGR(A) pixel.
func (d *tgaDecoder) pixel() (color.RGBA, error) {
	n := d.h.bytesPerPx
	if d.pos+n > len(d.src) {
		return color.RGBA{}, fmt.Errorf("%w: pixel %d", ErrTruncatedTGA, d.px)
	}
	p := d.src[d.pos : d.pos+n]
	d.pos += n
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if n == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put stores c at the next pixel, honoring the origin bit.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.px % d.h.width
	y := d.px / d.h.width
	if !d.h.topToBottom {
		y = d.h.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.px++
}

func (d *tgaDecoder) raw() error {
	for d.px < d.total() {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	for d.px < d.total() {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: packet at pixel %d", ErrTruncatedTGA, d.px)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.px < d.total(); i++ {
				d.put(c)
			}
			continue
		}
		for i := 0; i < count && d.px < d.total(); i++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
