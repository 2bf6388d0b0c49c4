package scene

import (
	"image"
	"image/color"
	"math/rand/v2"

	"scroll-scene-renderer/internal/geometry"
	"scroll-scene-renderer/internal/mathutil"
)

// Camera defaults.
const (
	CameraFOV  = 35.0
	CameraNear = 0.1
	CameraFar  = 100.0
	CameraZ    = 6.0
)

// Options controls scene construction.
type Options struct {
	ObjectsDistance float64
	ParticleCount   int
	MaterialColor   color.Color
	ParticleColor   color.Color
	GradientMap     *image.NRGBA
	Aspect          float64
}

// Scene owns every node for the lifetime of the program.
type Scene struct {
	Light     DirectionalLight
	Material  *ToonMaterial
	Particles *Points
	Rig       *Group
	Camera    *PerspectiveCamera

	ObjectsDistance float64

	meshes []*Mesh
}

// SectionMeshes returns the ordered section mesh list; index = section number.
// The slice must not be modified.
func (s *Scene) SectionMeshes() []*Mesh { return s.meshes }

// Sections returns the number of scroll sections.
func (s *Scene) Sections() int { return len(s.meshes) }

// Build constructs the light, the three section meshes, the particle field and
// the camera rig. rng drives particle placement.
func Build(opts Options, rng *rand.Rand) *Scene {
	if opts.Aspect <= 0 {
		opts.Aspect = 1
	}

	mat := &ToonMaterial{GradientMap: opts.GradientMap}
	mat.SetColor(opts.MaterialColor)

	torus := geometry.Torus(1, 0.4, 16, 60)
	cone := geometry.Cone(1, 2, 32)
	knot := geometry.TorusKnot(0.8, 0.35, 100, 16, 2, 3)

	d := opts.ObjectsDistance
	meshes := []*Mesh{
		NewMesh("torus", &torus, mat, mathutil.Vec3{2, -d * 0, 0}),
		NewMesh("cone", &cone, mat, mathutil.Vec3{-2, -d * 1, 0}),
		NewMesh("torusknot", &knot, mat, mathutil.Vec3{2, -d * 2, 0}),
	}

	pmat := &PointsMaterial{Size: 0.1, SizeAttenuation: true}
	pmat.SetColor(opts.ParticleColor)
	particles := &Points{
		Positions: scatter(rng, opts.ParticleCount, d*float64(len(meshes))),
		Material:  pmat,
	}

	rig := NewGroup()
	cam := NewPerspectiveCamera(CameraFOV, opts.Aspect, CameraNear, CameraFar, rig, mathutil.Vec3{0, 0, CameraZ})

	return &Scene{
		Light: DirectionalLight{
			Color:     color.NRGBA{255, 255, 255, 255},
			Intensity: 1,
			Position:  mathutil.Vec3{1, 1, 0},
		},
		Material:        mat,
		Particles:       particles,
		Rig:             rig,
		Camera:          cam,
		ObjectsDistance: d,
		meshes:          meshes,
	}
}

// scatter places n points with x, z in [-5, 5) and y in (-depth, 0].
func scatter(rng *rand.Rand, n int, depth float64) []mathutil.Vec3 {
	pts := make([]mathutil.Vec3, n)
	for i := range pts {
		pts[i] = mathutil.Vec3{
			(rng.Float64() - 0.5) * 10,
			-rng.Float64() * depth,
			(rng.Float64() - 0.5) * 10,
		}
	}
	return pts
}
