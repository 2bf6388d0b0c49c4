// Package loop drives the per-frame animation: tweens, idle rotation,
// scroll-driven camera travel, cursor parallax, and one draw per tick.
package loop

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"scroll-scene-renderer/internal/input"
	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/raster"
	"scroll-scene-renderer/internal/scene"
	"scroll-scene-renderer/internal/section"
	"scroll-scene-renderer/internal/tween"
)

// Animation constants.
const (
	// ParallaxAmount scales the normalized cursor into rig offset units.
	ParallaxAmount = 0.5
	// Damping is the rate (1/sec) at which the rig approaches its target.
	Damping = 5.0
)

// IdleSpin is the per-second rotation added to every section mesh.
var IdleSpin = mathutil.Vec3{0.1, 0.12, 0}

// CameraY returns the camera height for a scroll offset: one viewport of
// scroll moves the camera down by objectsDistance.
func CameraY(scroll, height, objectsDistance float64) float64 {
	if height <= 0 {
		return 0
	}
	return -scroll / height * objectsDistance
}

// ParallaxTarget returns the rig offset the camera eases toward.
func ParallaxTarget(c input.Cursor) mathutil.Vec3 {
	return mathutil.Vec3{-c.X * ParallaxAmount, c.Y * ParallaxAmount, 0}
}

// Frame is the result of one tick.
type Frame struct {
	Index     int
	Time      float64
	Delta     float64
	Image     *image.NRGBA
	Section   int
	ScrollY   float64
	CameraY   float64
	RigOffset mathutil.Vec3
}

// Loop owns the shared state of the visualization. All methods except Stop
// must be called from one goroutine.
type Loop struct {
	Scene    *scene.Scene
	Input    *input.State
	Panel    *panel.Panel
	Renderer *raster.Renderer
	Tweens   *tween.Engine
	Trigger  *section.Trigger

	clock   Clock
	prev    float64
	frame   int
	stopped atomic.Bool
}

// New wires a loop. pn may be nil. A nil clock uses the system clock.
func New(sc *scene.Scene, in *input.State, pn *panel.Panel, r *raster.Renderer, clock Clock, log *slog.Logger) *Loop {
	if clock == nil {
		clock = NewSystemClock()
	}
	tw := tween.NewEngine()
	l := &Loop{
		Scene:    sc,
		Input:    in,
		Panel:    pn,
		Renderer: r,
		Tweens:   tw,
		Trigger:  section.NewTrigger(sc.SectionMeshes(), tw, log),
		clock:    clock,
		prev:     clock.Elapsed(),
	}
	l.Resize(in.Viewport.Width, in.Viewport.Height, in.Viewport.PlatformRatio)
	return l
}

// Scroll records the scroll offset and fires the section trigger.
func (l *Loop) Scroll(y float64) {
	l.Input.OnScroll(y)
	l.Trigger.Update(y, float64(l.Input.Viewport.Height))
}

// MouseMove records the pointer in client coordinates.
func (l *Loop) MouseMove(x, y float64) {
	l.Input.OnMouseMove(x, y)
}

// Resize updates the viewport, camera aspect, and drawing surface.
func (l *Loop) Resize(w, h int, platformRatio float64) {
	l.Input.OnResize(w, h, platformRatio)
	l.Scene.Camera.SetAspect(l.Input.Aspect())
	l.Renderer.SetSize(w, h)
	l.Renderer.SetPixelRatio(l.Input.PixelRatio())
}

// Tick advances the animation to the clock's current time and draws once.
func (l *Loop) Tick() Frame {
	elapsed := l.clock.Elapsed()
	dt := elapsed - l.prev
	if dt < 0 {
		dt = 0
	}
	l.prev = elapsed

	if l.Panel != nil {
		l.Panel.Drain()
	}
	l.Tweens.Update(dt)

	spin := IdleSpin.Scale(dt)
	for _, m := range l.Scene.SectionMeshes() {
		m.Rotate(spin)
	}

	camY := CameraY(l.Input.ScrollY, float64(l.Input.Viewport.Height), l.Scene.ObjectsDistance)
	l.Scene.Camera.SetY(camY)
	l.Scene.Rig.EaseToward(ParallaxTarget(l.Input.Cursor), Damping*dt)

	f := Frame{
		Index:     l.frame,
		Time:      elapsed,
		Delta:     dt,
		Image:     l.Renderer.Render(l.Scene),
		Section:   l.Trigger.Current(),
		ScrollY:   l.Input.ScrollY,
		CameraY:   camY,
		RigOffset: l.Scene.Rig.Offset(),
	}
	l.frame++
	return f
}

// Stop makes Run return after the current tick. Safe from any goroutine.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Run ticks, hands each frame to present, then waits for the next frame
// signal. It returns when Stop is called, frames is closed, ctx is done,
// or present fails. Cancellation is reported even when frames closes at
// the same time.
func (l *Loop) Run(ctx context.Context, frames <-chan time.Time, present func(Frame) error) error {
	for !l.stopped.Load() {
		f := l.Tick()
		if present != nil {
			if err := present(f); err != nil {
				return err
			}
		}
		if l.stopped.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-frames:
			if !ok {
				// A producer may close frames because ctx was cancelled.
				return ctx.Err()
			}
		}
	}
	return nil
}
