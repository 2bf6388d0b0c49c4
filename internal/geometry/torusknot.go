package geometry

import (
	"math"

	"scroll-scene-renderer/internal/mathutil"
)

// TorusKnot builds a (p, q) torus knot tube. p winds around the axis of
// rotational symmetry, q around the interior of the torus.
func TorusKnot(radius, tube float64, tubularSegments, radialSegments, p, q int) Mesh {
	m := Mesh{Name: "torusknot"}
	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * float64(p) * 2 * math.Pi
		p1 := knotPoint(u, p, q, radius)
		p2 := knotPoint(u+0.01, p, q, radius)

		// Frenet-like frame along the curve.
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n)
		n = b.Cross(t)
		b = b.Normalize()
		n = n.Normalize()

		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			cx := -tube * math.Cos(v)
			cy := tube * math.Sin(v)

			vert := p1.Add(n.Scale(cx)).Add(b.Scale(cy))
			m.Verts = append(m.Verts, vert)
			m.Normals = append(m.Normals, vert.Sub(p1).Normalize())
		}
	}

	stride := radialSegments + 1
	for j := 1; j <= tubularSegments; j++ {
		for i := 1; i <= radialSegments; i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
	return m
}

func knotPoint(u float64, p, q int, radius float64) mathutil.Vec3 {
	cu, su := math.Cos(u), math.Sin(u)
	quOverP := float64(q) / float64(p) * u
	cs := math.Cos(quOverP)
	return mathutil.Vec3{
		radius * (2 + cs) * 0.5 * cu,
		radius * (2 + cs) * su * 0.5,
		radius * math.Sin(quOverP) * 0.5,
	}
}
