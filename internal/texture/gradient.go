package texture

import "image"

// DefaultGradient returns a 3-texel ramp (dark, mid, full) for toon shading
// when no gradient map file is available.
func DefaultGradient() *image.NRGBA {
	levels := []uint8{72, 160, 255}
	img := image.NewNRGBA(image.Rect(0, 0, len(levels), 1))
	for i, l := range levels {
		o := i * 4
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = l, l, l, 255
	}
	return img
}

// Ramp is a 1D lookup built from the first row of a gradient map,
// sampled with nearest filtering.
type Ramp []float64

// NewRamp reads the red channel of row 0 as a 0..1 ramp.
func NewRamp(tex *image.NRGBA) Ramp {
	if tex == nil {
		tex = DefaultGradient()
	}
	b := tex.Bounds()
	r := make(Ramp, b.Dx())
	for x := 0; x < b.Dx(); x++ {
		r[x] = float64(tex.Pix[tex.PixOffset(b.Min.X+x, b.Min.Y)]) / 255
	}
	return r
}

// Nearest returns the band index for u in [0, 1] across n bands, the way a
// nearest-filtered gradient texture is sampled. Out-of-range u is clamped.
func Nearest(u float64, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(int(u*float64(n)), 0), n-1)
}
