package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"scroll-scene-renderer/internal/config"
	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .toml)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{})

	matColor, err := panel.ParseColor(cfg.MaterialColor)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	ptsColor, err := panel.ParseColor(cfg.ParticleColor)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	sc := scene.Build(scene.Options{
		ObjectsDistance: cfg.ObjectsDistance,
		ParticleCount:   cfg.ParticleCount,
		MaterialColor:   matColor,
		ParticleColor:   ptsColor,
		Aspect:          float64(cfg.Width) / float64(cfg.Height),
	}, rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)))

	fmt.Printf("Sections: %d, objects distance %.2f\n", sc.Sections(), sc.ObjectsDistance)
	for i, m := range sc.SectionMeshes() {
		g := m.Geometry
		lo, hi := g.Bounds()
		pos := m.Position()
		fmt.Printf("  Mesh[%d] %s: verts=%d, tris=%d\n", i, m.Name, len(g.Verts), len(g.Tris))
		fmt.Printf("    Position: (%.2f, %.2f, %.2f)\n", pos[0], pos[1], pos[2])
		fmt.Printf("    BBox: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
		fmt.Printf("    Size: %.2f x %.2f x %.2f\n", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
	}

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range sc.Particles.Positions {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	fmt.Printf("Particles: %d, size %.2f\n", len(sc.Particles.Positions), sc.Particles.Material.Size)
	if len(sc.Particles.Positions) > 0 {
		fmt.Printf("  Extent: X[%.2f, %.2f] Y[%.2f, %.2f] Z[%.2f, %.2f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	}

	cam := sc.Camera
	fmt.Printf("Camera: fov %.0f, aspect %.3f, near %.2f, far %.0f, z %.1f\n",
		cam.FOV, cam.Aspect, cam.Near, cam.Far, cam.Position()[2])
	fmt.Printf("Light: direction %v\n", sc.Light.Direction())
}
