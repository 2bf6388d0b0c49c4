package scene

import "scroll-scene-renderer/internal/mathutil"

// PerspectiveCamera looks down its local -Z axis. It is parented to a rig
// group, so its world transform is rig · local.
type PerspectiveCamera struct {
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	xf  Transform
	rig *Group
}

// NewPerspectiveCamera creates a camera attached to rig at local position.
func NewPerspectiveCamera(fov, aspect, near, far float64, rig *Group, position mathutil.Vec3) *PerspectiveCamera {
	xf := NewTransform()
	xf.Position = position
	return &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far, xf: xf, rig: rig}
}

// Position returns the local position within the rig.
func (c *PerspectiveCamera) Position() mathutil.Vec3 { return c.xf.Position }

// SetY sets the local vertical position (scroll-driven).
func (c *PerspectiveCamera) SetY(y float64) { c.xf.Position[1] = y }

// SetAspect updates the projection aspect ratio.
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// World returns the camera-to-world matrix.
func (c *PerspectiveCamera) World() mathutil.Mat4 {
	local := c.xf.Matrix()
	if c.rig == nil {
		return local
	}
	return mathutil.Mat4Mul(c.rig.Matrix(), local)
}

// View returns the world-to-camera matrix.
func (c *PerspectiveCamera) View() mathutil.Mat4 {
	return c.World().AffineInverse()
}

// Projection returns the perspective projection matrix.
func (c *PerspectiveCamera) Projection() mathutil.Mat4 {
	return mathutil.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
