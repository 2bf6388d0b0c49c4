package scene

import (
	"image/color"

	"scroll-scene-renderer/internal/mathutil"
)

// DirectionalLight shines from Position toward the origin.
type DirectionalLight struct {
	Color     color.NRGBA
	Intensity float64
	Position  mathutil.Vec3
}

// Direction returns the unit vector pointing from the surface toward the light.
func (l DirectionalLight) Direction() mathutil.Vec3 {
	return l.Position.Normalize()
}
