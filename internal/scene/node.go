package scene

import "scroll-scene-renderer/internal/mathutil"

// Transform is a node's local position, Euler XYZ rotation (radians) and scale.
type Transform struct {
	Position mathutil.Vec3
	Rotation mathutil.Vec3
	Scale    mathutil.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Scale: mathutil.Vec3{1, 1, 1}}
}

// Matrix returns the local-to-parent matrix.
func (t Transform) Matrix() mathutil.Mat4 {
	return mathutil.Compose(t.Position, t.Rotation, t.Scale)
}

// Group is a transform-only node. The camera rig is a Group whose offset is
// eased toward the cursor parallax target every frame.
type Group struct {
	xf Transform
}

// NewGroup returns a group at the origin.
func NewGroup() *Group {
	return &Group{xf: NewTransform()}
}

// Offset returns the group position.
func (g *Group) Offset() mathutil.Vec3 { return g.xf.Position }

// EaseToward moves the group's X/Y a fraction of the way to target.
// factor is clamped to [0, 1].
func (g *Group) EaseToward(target mathutil.Vec3, factor float64) {
	p := g.xf.Position
	target[2] = p[2]
	g.xf.Position = p.Lerp(target, mathutil.Clamp(factor, 0, 1))
}

// Matrix returns the group's local matrix.
func (g *Group) Matrix() mathutil.Mat4 { return g.xf.Matrix() }
