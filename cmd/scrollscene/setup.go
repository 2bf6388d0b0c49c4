package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"os"

	"scroll-scene-renderer/internal/config"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/scene"
	"scroll-scene-renderer/internal/texture"
)

// gradientMap returns the named ramp texture from the textures directory,
// or the built-in three-step ramp and the reason the file was not used.
func gradientMap(cfg config.Config) (*image.NRGBA, error) {
	idx := texture.BuildIndex(cfg.TexturesDir)
	img, err := texture.NewCache(idx).Load(cfg.GradientMap)
	if err != nil {
		return texture.DefaultGradient(), err
	}
	return img, nil
}

// buildScene constructs the scene and a panel wired to its two materials.
func buildScene(cfg config.Config, log *slog.Logger) (*scene.Scene, *panel.Panel, error) {
	matColor, err := panel.ParseColor(cfg.MaterialColor)
	if err != nil {
		return nil, nil, fmt.Errorf("material color: %w", err)
	}
	ptsColor, err := panel.ParseColor(cfg.ParticleColor)
	if err != nil {
		return nil, nil, fmt.Errorf("particle color: %w", err)
	}

	grad, err := gradientMap(cfg)
	if errors.Is(err, texture.ErrNotFound) {
		fmt.Printf("Gradient map %q not found in %s, using built-in ramp\n", cfg.GradientMap, cfg.TexturesDir)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: gradient map %q: %v, using built-in ramp\n", cfg.GradientMap, err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	sc := scene.Build(scene.Options{
		ObjectsDistance: cfg.ObjectsDistance,
		ParticleCount:   cfg.ParticleCount,
		MaterialColor:   matColor,
		ParticleColor:   ptsColor,
		GradientMap:     grad,
		Aspect:          float64(cfg.Width) / float64(cfg.Height),
	}, rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)))

	pn := panel.New(log)
	if err := pn.AddColor(panel.MaterialColor, cfg.MaterialColor, sc.Material.SetColor); err != nil {
		return nil, nil, err
	}
	if err := pn.AddColor(panel.ParticleMaterialColor, cfg.ParticleColor, sc.Particles.Material.SetColor); err != nil {
		return nil, nil, err
	}
	return sc, pn, nil
}
