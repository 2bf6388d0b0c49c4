package geometry

import (
	"math"

	"scroll-scene-renderer/internal/mathutil"
)

// Torus builds a ring around the Z axis. radius is the distance from the center
// to the middle of the tube.
func Torus(radius, tube float64, radialSegments, tubularSegments int) Mesh {
	m := Mesh{Name: "torus"}
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi

			p := mathutil.Vec3{
				(radius + tube*math.Cos(v)) * math.Cos(u),
				(radius + tube*math.Cos(v)) * math.Sin(u),
				tube * math.Sin(v),
			}
			center := mathutil.Vec3{radius * math.Cos(u), radius * math.Sin(u), 0}

			m.Verts = append(m.Verts, p)
			m.Normals = append(m.Normals, p.Sub(center).Normalize())
		}
	}
	m.addQuadGrid(0, radialSegments, tubularSegments)
	return m
}
