package raster

import (
	"image"
	"math"

	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/scene"
	"scroll-scene-renderer/internal/texture"
)

// MaxPixelRatio caps the device pixel ratio used for the drawing buffer.
const MaxPixelRatio = 2.0

// ClampPixelRatio returns min(ratio, MaxPixelRatio). Non-positive ratios become 1.
func ClampPixelRatio(ratio float64) float64 {
	if ratio <= 0 {
		return 1
	}
	return math.Min(ratio, MaxPixelRatio)
}

// Renderer draws a scene into an RGBA buffer with a transparent background.
// Width and Height are in logical (CSS) pixels; the drawing buffer is
// scaled by PixelRatio and Supersample.
type Renderer struct {
	Width       int
	Height      int
	PixelRatio  float64
	Supersample int

	fb *FrameBuffer

	// per-mesh scratch, grown as needed
	verts  []ScreenVert
	irr    []float64
	behind []bool
}

// NewRenderer returns a renderer for a w×h surface at pixel ratio 1.
func NewRenderer(w, h int) *Renderer {
	return &Renderer{Width: w, Height: h, PixelRatio: 1, Supersample: 1}
}

// SetSize resizes the logical surface.
func (r *Renderer) SetSize(w, h int) {
	r.Width = w
	r.Height = h
}

// SetPixelRatio sets the device pixel ratio, clamped to MaxPixelRatio.
func (r *Renderer) SetPixelRatio(ratio float64) {
	r.PixelRatio = ClampPixelRatio(ratio)
}

// BufferSize returns the drawing buffer dimensions in device pixels.
func (r *Renderer) BufferSize() (int, int) {
	ss := r.Supersample
	if ss < 1 {
		ss = 1
	}
	ratio := ClampPixelRatio(r.PixelRatio)
	w := int(math.Round(float64(r.Width)*ratio)) * ss
	h := int(math.Round(float64(r.Height)*ratio)) * ss
	return max(w, 1), max(h, 1)
}

// Render draws the section meshes then the particle field from the scene
// camera and returns a copy of the buffer.
func (r *Renderer) Render(s *scene.Scene) *image.NRGBA {
	bw, bh := r.BufferSize()
	if r.fb == nil || r.fb.Width != bw || r.fb.Height != bh {
		r.fb = NewFrameBuffer(bw, bh)
	} else {
		r.fb.Clear()
	}

	cam := s.Camera
	view := cam.View()
	proj := cam.Projection()

	lightDir := s.Light.Direction()
	lightCol := LinearColor(s.Light.Color).Scale(s.Light.Intensity)

	for _, m := range s.SectionMeshes() {
		pal := ToonPalette(m.Material.Color, lightCol, texture.NewRamp(m.Material.GradientMap))
		model := m.Matrix()
		modelView := mathutil.Mat4Mul(view, model)
		normalMat := model.Upper3().NormalMatrix()

		g := m.Geometry
		r.grow(len(g.Verts))
		for i, v := range g.Verts {
			p := modelView.MulPoint(v)
			if p[2] > -cam.Near {
				r.behind[i] = true
				continue
			}
			r.behind[i] = false
			r.verts[i] = toScreen(proj, p, bw, bh)
			r.irr[i] = Irradiance(normalMat.MulVec3(g.Normals[i]).Normalize(), lightDir)
		}

		for _, tri := range g.Tris {
			a, b, c := tri[0], tri[1], tri[2]
			if r.behind[a] || r.behind[b] || r.behind[c] {
				continue
			}
			RasterizeToon(r.fb,
				[3]ScreenVert{r.verts[a], r.verts[b], r.verts[c]},
				[3]float64{r.irr[a], r.irr[b], r.irr[c]},
				pal)
		}
	}

	if pts := s.Particles; pts != nil && pts.Material != nil {
		mat := pts.Material
		col := [4]uint8{mat.Color.R, mat.Color.G, mat.Color.B, 255}
		for _, wp := range pts.Positions {
			p := view.MulPoint(wp)
			if p[2] > -cam.Near {
				continue
			}
			size := mat.Size
			if mat.SizeAttenuation {
				size *= float64(bh) / 2 / -p[2]
			} else {
				size *= float64(bh) / math.Max(float64(r.Height), 1)
			}
			RasterizePoint(r.fb, toScreen(proj, p, bw, bh), size, col)
		}
	}

	return r.fb.Image()
}

func (r *Renderer) grow(n int) {
	if cap(r.verts) < n {
		r.verts = make([]ScreenVert, n)
		r.irr = make([]float64, n)
		r.behind = make([]bool, n)
	}
	r.verts = r.verts[:n]
	r.irr = r.irr[:n]
	r.behind = r.behind[:n]
}

// toScreen projects a view-space point to pixel coordinates (y down).
func toScreen(proj mathutil.Mat4, p mathutil.Vec3, w, h int) ScreenVert {
	clip, cw := proj.Project(p)
	ndc := clip.Scale(1 / cw)
	return ScreenVert{
		X: (ndc[0]*0.5 + 0.5) * float64(w),
		Y: (0.5 - ndc[1]*0.5) * float64(h),
		Z: -ndc[2],
	}
}
