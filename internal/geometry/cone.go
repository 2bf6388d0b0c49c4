package geometry

import (
	"math"

	"scroll-scene-renderer/internal/mathutil"
)

// Cone builds a closed cone with its apex on +Y, centered on the origin.
func Cone(radius, height float64, radialSegments int) Mesh {
	m := Mesh{Name: "cone"}
	half := height / 2
	slope := radius / height

	// Side: two rings (apex ring of radius 0, base ring).
	for y := 0; y <= 1; y++ {
		r := float64(y) * radius
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			sin, cos := math.Sin(theta), math.Cos(theta)
			m.Verts = append(m.Verts, mathutil.Vec3{r * sin, -float64(y)*height + half, r * cos})
			m.Normals = append(m.Normals, mathutil.Vec3{sin, slope, cos}.Normalize())
		}
	}
	stride := radialSegments + 1
	for x := 0; x < radialSegments; x++ {
		// The apex ring collapses to a point, so the (a, b, d) half of each
		// quad is degenerate and skipped.
		b := stride + x
		c := stride + x + 1
		d := x + 1
		m.Tris = append(m.Tris, [3]int{b, c, d})
	}

	// Base cap.
	down := mathutil.Vec3{0, -1, 0}
	center := len(m.Verts)
	m.Verts = append(m.Verts, mathutil.Vec3{0, -half, 0})
	m.Normals = append(m.Normals, down)
	ring := len(m.Verts)
	for x := 0; x <= radialSegments; x++ {
		theta := float64(x) / float64(radialSegments) * 2 * math.Pi
		m.Verts = append(m.Verts, mathutil.Vec3{radius * math.Sin(theta), -half, radius * math.Cos(theta)})
		m.Normals = append(m.Normals, down)
	}
	for x := 0; x < radialSegments; x++ {
		m.Tris = append(m.Tris, [3]int{ring + x + 1, ring + x, center})
	}
	return m
}
