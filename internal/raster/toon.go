package raster

import (
	"image/color"
	"math"

	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/texture"
)

const (
	srgbGamma = 2.2
	invGamma  = 1.0 / srgbGamma
)

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, srgbGamma)
	}
}

// LinearColor decodes an sRGB color into linear RGB.
func LinearColor(c color.NRGBA) mathutil.Vec3 {
	return mathutil.Vec3{srgbToLinear[c.R], srgbToLinear[c.G], srgbToLinear[c.B]}
}

// Irradiance maps the light angle to a gradient-map coordinate in [0, 1]:
// 0 faces away from the light, 1 faces it.
func Irradiance(normal, lightDir mathutil.Vec3) float64 {
	return normal.Dot(lightDir)*0.5 + 0.5
}

// Palette holds the final sRGB output color of each gradient band.
type Palette [][4]uint8

// ToonPalette precomputes one color per ramp band: base · light · band, encoded to sRGB.
// light is linear RGB already scaled by intensity.
func ToonPalette(base color.NRGBA, light mathutil.Vec3, ramp texture.Ramp) Palette {
	lin := LinearColor(base).Mul(light)
	p := make(Palette, len(ramp))
	for i, level := range ramp {
		c := lin.Scale(level)
		p[i] = [4]uint8{
			clamp255(math.Pow(mathutil.Clamp(c[0], 0, 1), invGamma) * 255),
			clamp255(math.Pow(mathutil.Clamp(c[1], 0, 1), invGamma) * 255),
			clamp255(math.Pow(mathutil.Clamp(c[2], 0, 1), invGamma) * 255),
			255,
		}
	}
	return p
}

// At returns the band color for an irradiance value (nearest filtering).
func (p Palette) At(irradiance float64) [4]uint8 {
	return p[texture.Nearest(irradiance, len(p))]
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
