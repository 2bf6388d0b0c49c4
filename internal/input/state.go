// Package input records the latest pointer, scroll and viewport values.
// Every field is last-write-wins: a frame reads whatever was written most
// recently, no matter how many events arrived in between.
package input

import "scroll-scene-renderer/internal/raster"

// Viewport is the visible surface size in logical pixels.
type Viewport struct {
	Width  int
	Height int
	// PlatformRatio is the raw device pixel ratio reported by the platform.
	PlatformRatio float64
}

// Cursor is the pointer position normalized to [-0.5, 0.5] on both axes,
// (0, 0) at the viewport center, y growing downward.
type Cursor struct {
	X, Y float64
}

// State is the shared input snapshot read by the render loop each frame.
type State struct {
	Viewport Viewport
	ScrollY  float64
	Cursor   Cursor
}

// NewState returns a state for a w×h viewport at pixel ratio 1.
func NewState(w, h int) *State {
	return &State{Viewport: Viewport{Width: w, Height: h, PlatformRatio: 1}}
}

// OnScroll records the page scroll offset in pixels.
func (s *State) OnScroll(y float64) {
	s.ScrollY = y
}

// OnMouseMove records the pointer from client coordinates.
func (s *State) OnMouseMove(clientX, clientY float64) {
	s.Cursor = Normalize(clientX, clientY, s.Viewport)
}

// OnResize records new viewport dimensions and the platform pixel ratio.
func (s *State) OnResize(w, h int, platformRatio float64) {
	s.Viewport = Viewport{Width: w, Height: h, PlatformRatio: platformRatio}
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (s *State) Aspect() float64 {
	if s.Viewport.Height <= 0 || s.Viewport.Width <= 0 {
		return 1
	}
	return float64(s.Viewport.Width) / float64(s.Viewport.Height)
}

// PixelRatio returns the clamped ratio used for the drawing buffer.
func (s *State) PixelRatio() float64 {
	return raster.ClampPixelRatio(s.Viewport.PlatformRatio)
}

// Normalize maps client coordinates into [-0.5, 0.5]. A zero-sized axis maps to 0.
func Normalize(clientX, clientY float64, vp Viewport) Cursor {
	var c Cursor
	if vp.Width > 0 {
		c.X = clientX/float64(vp.Width) - 0.5
	}
	if vp.Height > 0 {
		c.Y = clientY/float64(vp.Height) - 0.5
	}
	return c
}

// ClampScroll limits a scroll offset to a page of the given number of
// viewport-high sections.
func ClampScroll(y float64, height, sections int) float64 {
	limit := float64(max(sections-1, 0) * max(height, 0))
	return min(max(y, 0), limit)
}
