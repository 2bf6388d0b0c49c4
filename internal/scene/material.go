package scene

import (
	"image"
	"image/color"
)

// ToonMaterial shades with a stepped gradient ramp instead of smooth falloff.
type ToonMaterial struct {
	Color       color.NRGBA
	GradientMap *image.NRGBA
}

// SetColor replaces the base color. Takes effect on the next draw.
func (m *ToonMaterial) SetColor(c color.Color) {
	if c == nil {
		return
	}
	m.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	m.Color.A = 255
}

// PointsMaterial draws each point as a flat square.
type PointsMaterial struct {
	Color color.NRGBA
	// Size is in world units when SizeAttenuation is set, pixels otherwise.
	Size            float64
	SizeAttenuation bool
}

// SetColor replaces the point color.
func (m *PointsMaterial) SetColor(c color.Color) {
	if c == nil {
		return
	}
	m.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	m.Color.A = 255
}
