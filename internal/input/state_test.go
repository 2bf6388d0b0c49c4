package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEdges(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 720}
	assert.Equal(t, -0.5, Normalize(0, 0, vp).X)
	assert.Equal(t, 0.5, Normalize(1280, 0, vp).X)
	assert.Equal(t, -0.5, Normalize(0, 0, vp).Y)
	assert.Equal(t, 0.5, Normalize(0, 720, vp).Y)
	assert.Equal(t, Cursor{}, Normalize(640, 360, vp))
	assert.Equal(t, Cursor{}, Normalize(10, 10, Viewport{}))
}

func TestLastWriteWins(t *testing.T) {
	s := NewState(800, 600)
	s.OnScroll(100)
	s.OnScroll(250)
	s.OnScroll(180)
	assert.Equal(t, 180.0, s.ScrollY)

	s.OnMouseMove(0, 0)
	s.OnMouseMove(400, 300)
	assert.Equal(t, Cursor{}, s.Cursor)
}

func TestResize(t *testing.T) {
	s := NewState(800, 600)
	s.OnResize(1920, 1080, 3)
	assert.InDelta(t, 1920.0/1080.0, s.Aspect(), 1e-12)
	assert.Equal(t, 2.0, s.PixelRatio())

	s.OnResize(1000, 500, 1.25)
	assert.Equal(t, 2.0, s.Aspect())
	assert.Equal(t, 1.25, s.PixelRatio())

	// Cursor normalization uses the new size.
	s.OnMouseMove(1000, 500)
	assert.Equal(t, Cursor{0.5, 0.5}, s.Cursor)

	s.OnResize(0, 0, 1)
	assert.Equal(t, 1.0, s.Aspect())
}

func TestClampScroll(t *testing.T) {
	assert.Equal(t, 0.0, ClampScroll(-40, 600, 3))
	assert.Equal(t, 450.0, ClampScroll(450, 600, 3))
	assert.Equal(t, 1200.0, ClampScroll(5000, 600, 3))
	assert.Equal(t, 0.0, ClampScroll(100, 600, 1))
	assert.Equal(t, 0.0, ClampScroll(100, 0, 3))
}
