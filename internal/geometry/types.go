package geometry

import (
	"math"

	"scroll-scene-renderer/internal/mathutil"
)

// Mesh holds indexed triangle geometry in object space.
// Normals are per-vertex and parallel to Verts.
type Mesh struct {
	Name    string
	Verts   []mathutil.Vec3
	Normals []mathutil.Vec3
	Tris    [][3]int
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}

// addQuadGrid appends two triangles per cell of a (rows+1)×(cols+1) vertex grid
// starting at vertex offset base.
func (m *Mesh) addQuadGrid(base, rows, cols int) {
	stride := cols + 1
	for j := 1; j <= rows; j++ {
		for i := 1; i <= cols; i++ {
			a := base + stride*j + i - 1
			b := base + stride*(j-1) + i - 1
			c := base + stride*(j-1) + i
			d := base + stride*j + i
			m.Tris = append(m.Tris, [3]int{a, b, d}, [3]int{b, c, d})
		}
	}
}
