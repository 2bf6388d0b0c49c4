package raster

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/scene"
	"scroll-scene-renderer/internal/texture"
)

func TestClampPixelRatio(t *testing.T) {
	assert.Equal(t, 1.0, ClampPixelRatio(1))
	assert.Equal(t, 1.5, ClampPixelRatio(1.5))
	assert.Equal(t, 2.0, ClampPixelRatio(2))
	assert.Equal(t, 2.0, ClampPixelRatio(3))
	assert.Equal(t, 1.0, ClampPixelRatio(0))
}

func TestBufferSize(t *testing.T) {
	r := NewRenderer(400, 300)
	r.SetPixelRatio(3)
	w, h := r.BufferSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	r.Supersample = 2
	w, h = r.BufferSize()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)
}

func TestPaletteBands(t *testing.T) {
	ramp := texture.NewRamp(texture.DefaultGradient())
	pal := ToonPalette(color.NRGBA{255, 255, 255, 255}, mathutil.Vec3{1, 1, 1}, ramp)
	require.Len(t, pal, 3)

	assert.Equal(t, pal[0], pal.At(0))
	assert.Equal(t, pal[1], pal.At(0.5))
	assert.Equal(t, pal[2], pal.At(1))
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, pal[2], "white under full light stays white")
	assert.Less(t, pal[0][0], pal[1][0])
}

func TestIrradiance(t *testing.T) {
	l := mathutil.Vec3{1, 1, 0}.Normalize()
	assert.InDelta(t, 1, Irradiance(l, l), 1e-12)
	assert.InDelta(t, 0, Irradiance(l.Scale(-1), l), 1e-12)
	assert.InDelta(t, 0.5, Irradiance(mathutil.Vec3{0, 0, 1}, l), 1e-12)
}

func TestRasterizeToonDepth(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	far := Palette{{10, 0, 0, 255}}
	near := Palette{{0, 20, 0, 255}}
	tri := func(z float64) [3]ScreenVert {
		return [3]ScreenVert{{0, 0, z}, {8, 0, z}, {0, 8, z}}
	}
	RasterizeToon(fb, tri(-0.5), [3]float64{}, near)
	RasterizeToon(fb, tri(-0.9), [3]float64{}, far)

	i := (1*8 + 1) * 4
	assert.Equal(t, []uint8{0, 20, 0, 255}, fb.Color[i:i+4], "closer triangle wins")

	j := (7*8 + 7) * 4
	assert.Equal(t, uint8(0), fb.Color[j+3], "outside the triangle stays transparent")
}

func TestRasterizePointClips(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	RasterizePoint(fb, ScreenVert{X: 0, Y: 0, Z: 0}, 3, [4]uint8{1, 2, 3, 255})
	assert.Equal(t, uint8(255), fb.Color[3])
	assert.Equal(t, uint8(0), fb.Color[(3*4+3)*4+3])
}

func TestRenderScene(t *testing.T) {
	s := scene.Build(scene.Options{
		ObjectsDistance: 5,
		MaterialColor:   color.NRGBA{0xE9, 0x45, 0x60, 0xFF},
		ParticleColor:   color.NRGBA{0x0F, 0x34, 0x60, 0xFF},
		Aspect:          160.0 / 120.0,
	}, rand.New(rand.NewPCG(1, 1)))

	r := NewRenderer(160, 120)
	img := r.Render(s)
	require.Equal(t, 160, img.Bounds().Dx())
	require.Equal(t, 120, img.Bounds().Dy())

	// Top of the torus ring, right of center.
	top := img.NRGBAAt(143, 28)
	assert.Equal(t, uint8(255), top.A)
	assert.Greater(t, top.R, top.G)

	// Hole of the torus and the empty left half are transparent.
	assert.Equal(t, uint8(0), img.NRGBAAt(143, 60).A)
	assert.Equal(t, uint8(0), img.NRGBAAt(20, 60).A)

	// A second render reuses the buffer and starts clean.
	s.Camera.SetY(-50)
	img = r.Render(s)
	assert.Equal(t, uint8(0), img.NRGBAAt(143, 28).A)
}
