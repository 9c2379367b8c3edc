package texture

import (
	"image"
	"image/color"
	"strings"
)

// BuiltinPrefix marks texture names that are generated rather than loaded.
const BuiltinPrefix = "builtin:"

// Builtin returns the generated image for a builtin name such as "builtin:checker".
func Builtin(name string) (*image.RGBA, bool) {
	switch strings.TrimPrefix(name, BuiltinPrefix) {
	case "checker":
		return Checker(256, 8, color.RGBA{R: 230, G: 230, B: 230, A: 255}, color.RGBA{R: 60, G: 90, B: 160, A: 255}), true
	case "sky":
		return SkyCross(128), true
	}
	return nil, false
}

// IsBuiltin reports whether name refers to a generated image.
func IsBuiltin(name string) bool {
	return strings.HasPrefix(name, BuiltinPrefix)
}

// Checker draws a size x size checkerboard with cells squares per side.
func Checker(size, cells int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(1, size/max(1, cells))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SkyCross draws a sky box image in the 4x3 cross layout: the horizon row holds
// the four side faces, with the zenith above and the ground below the second
// column. Unused cells stay transparent.
func SkyCross(face int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, face*4, face*3))

	zenith := color.RGBA{R: 40, G: 80, B: 170, A: 255}
	horizon := color.RGBA{R: 170, G: 200, B: 235, A: 255}
	ground := color.RGBA{R: 70, G: 60, B: 50, A: 255}

	fill := func(col, row int, shade func(t float64) color.RGBA) {
		for y := 0; y < face; y++ {
			t := 0.0
			if face > 1 {
				t = float64(y) / float64(face-1)
			}
			c := shade(t)
			for x := 0; x < face; x++ {
				img.SetRGBA(col*face+x, row*face+y, c)
			}
		}
	}

	for col := 0; col < 4; col++ {
		fill(col, 1, func(t float64) color.RGBA {
			if t < 0.5 {
				return lerp(zenith, horizon, t*2)
			}
			return lerp(horizon, ground, (t-0.5)*2)
		})
	}
	fill(1, 0, func(float64) color.RGBA { return zenith })
	fill(1, 2, func(float64) color.RGBA { return ground })
	return img
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
