package scene

import (
	"scroll-scene-renderer/internal/geometry"
	"scroll-scene-renderer/internal/mathutil"
)

// Mesh is a geometry instance placed in the scene. Its transform is
// unexported: position is fixed at setup and rotation only changes through
// Rotate, so every writer goes through one accessor.
type Mesh struct {
	Name     string
	Geometry *geometry.Mesh
	Material *ToonMaterial

	xf Transform
}

// NewMesh places geometry at position.
func NewMesh(name string, g *geometry.Mesh, mat *ToonMaterial, position mathutil.Vec3) *Mesh {
	xf := NewTransform()
	xf.Position = position
	return &Mesh{Name: name, Geometry: g, Material: mat, xf: xf}
}

// Position returns the mesh position.
func (m *Mesh) Position() mathutil.Vec3 { return m.xf.Position }

// Rotation returns the current Euler XYZ rotation in radians.
func (m *Mesh) Rotation() mathutil.Vec3 { return m.xf.Rotation }

// Rotate adds delta (radians per axis) to the rotation.
func (m *Mesh) Rotate(delta mathutil.Vec3) {
	m.xf.Rotation = m.xf.Rotation.Add(delta)
}

// Matrix returns the model matrix.
func (m *Mesh) Matrix() mathutil.Mat4 { return m.xf.Matrix() }

// Points is a cloud of world-space positions sharing one material.
type Points struct {
	Positions []mathutil.Vec3
	Material  *PointsMaterial
}
