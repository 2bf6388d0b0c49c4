package loop

import (
	"context"
	"errors"
	"image/color"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scroll-scene-renderer/internal/input"
	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/raster"
	"scroll-scene-renderer/internal/scene"
)

const (
	testW = 64
	testH = 48
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newLoop(t *testing.T) (*Loop, *ManualClock) {
	t.Helper()
	sc := scene.Build(scene.Options{
		ObjectsDistance: 5,
		ParticleCount:   20,
		MaterialColor:   color.NRGBA{0xE9, 0x45, 0x60, 0xFF},
		ParticleColor:   color.NRGBA{0x0F, 0x34, 0x60, 0xFF},
	}, rand.New(rand.NewPCG(1, 1)))

	pn := panel.New(quiet())
	require.NoError(t, pn.AddColor(panel.MaterialColor, "#E94560", sc.Material.SetColor))
	require.NoError(t, pn.AddColor(panel.ParticleMaterialColor, "#0F3460", sc.Particles.Material.SetColor))

	clock := &ManualClock{}
	l := New(sc, input.NewState(testW, testH), pn, raster.NewRenderer(testW, testH), clock, quiet())
	return l, clock
}

func TestCameraYFormula(t *testing.T) {
	assert.Equal(t, 0.0, CameraY(0, 600, 5))
	assert.Equal(t, -5.0, CameraY(600, 600, 5))
	assert.InDelta(t, -6.0, CameraY(720, 600, 5), 1e-12)
	assert.Equal(t, 0.0, CameraY(720, 0, 5))
}

func TestParallaxTarget(t *testing.T) {
	assert.Equal(t, mathutil.Vec3{}, ParallaxTarget(input.Cursor{}))
	assert.Equal(t, mathutil.Vec3{-0.25, 0.25, 0}, ParallaxTarget(input.Cursor{X: 0.5, Y: 0.5}))
}

func TestTickMovesCameraWithScroll(t *testing.T) {
	l, clock := newLoop(t)
	l.Scroll(testH * 1.5)
	clock.Advance(1.0 / 60)
	f := l.Tick()

	assert.InDelta(t, -7.5, f.CameraY, 1e-12)
	assert.InDelta(t, -7.5, l.Scene.Camera.Position()[1], 1e-12)
	assert.Equal(t, 2, f.Section, "1.5 rounds up")
	assert.Equal(t, testW, f.Image.Bounds().Dx())
}

func TestCenterCursorKeepsRigCentered(t *testing.T) {
	l, clock := newLoop(t)
	l.MouseMove(testW/2, testH/2)
	for i := 0; i < 10; i++ {
		clock.Advance(1.0 / 60)
		l.Tick()
	}
	assert.Equal(t, input.Cursor{}, l.Input.Cursor)
	assert.InDelta(t, 0, l.Scene.Rig.Offset()[0], 1e-12)
	assert.InDelta(t, 0, l.Scene.Rig.Offset()[1], 1e-12)
}

func TestParallaxEasesTowardTarget(t *testing.T) {
	l, clock := newLoop(t)
	l.MouseMove(testW, testH) // cursor (0.5, 0.5) → target (-0.25, 0.25)

	clock.Advance(0.1)
	f := l.Tick()
	// factor = 5 * 0.1 = 0.5 of the remaining distance
	assert.InDelta(t, -0.125, f.RigOffset[0], 1e-12)
	assert.InDelta(t, 0.125, f.RigOffset[1], 1e-12)

	for i := 0; i < 120; i++ {
		clock.Advance(1.0 / 60)
		l.Tick()
	}
	assert.InDelta(t, -0.25, l.Scene.Rig.Offset()[0], 1e-4)
	assert.InDelta(t, 0.25, l.Scene.Rig.Offset()[1], 1e-4)

	// A long stall lands on the target instead of overshooting.
	l.MouseMove(0, 0)
	clock.Advance(2)
	f = l.Tick()
	assert.InDelta(t, 0.25, f.RigOffset[0], 1e-12)
	assert.InDelta(t, -0.25, f.RigOffset[1], 1e-12)
}

func TestScrollIntoSectionOneSpinsMeshOne(t *testing.T) {
	l, clock := newLoop(t)
	meshes := l.Scene.SectionMeshes()

	for s := 0.0; s <= testH*1.2; s += 4 {
		l.Scroll(s)
	}
	assert.Equal(t, 1, l.Trigger.Current())
	assert.Equal(t, 1, l.Tweens.Active(), "exactly one tween started")

	total := 0.0
	for l.Tweens.Active() > 0 {
		clock.Advance(1.0 / 60)
		total += l.Tick().Delta
	}

	idle := IdleSpin.Scale(total)
	rot := meshes[1].Rotation()
	assert.InDelta(t, 6+idle[0], rot[0], 1e-4)
	assert.InDelta(t, 3+idle[1], rot[1], 1e-4)
	assert.InDelta(t, 1.5, rot[2], 1e-4)

	// Other meshes only idle-spin.
	assert.InDelta(t, idle[0], meshes[0].Rotation()[0], 1e-9)
	assert.InDelta(t, idle[0], meshes[2].Rotation()[0], 1e-9)
}

func TestResizeUpdatesProjectionAndSurface(t *testing.T) {
	l, clock := newLoop(t)
	l.Resize(120, 40, 3)

	assert.Equal(t, 3.0, l.Scene.Camera.Aspect)
	assert.Equal(t, 2.0, l.Renderer.PixelRatio)
	w, h := l.Renderer.BufferSize()
	assert.Equal(t, 240, w)
	assert.Equal(t, 80, h)

	clock.Advance(1.0 / 60)
	f := l.Tick()
	assert.Equal(t, 240, f.Image.Bounds().Dx())
	assert.Equal(t, 80, f.Image.Bounds().Dy())
}

func TestPanelEditsApplyOnTick(t *testing.T) {
	l, clock := newLoop(t)
	l.Panel.Submit(panel.MaterialColor, "#00ff00")
	assert.Equal(t, color.NRGBA{0xE9, 0x45, 0x60, 0xFF}, l.Scene.Material.Color)

	clock.Advance(1.0 / 60)
	l.Tick()
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, l.Scene.Material.Color)
}

func TestClockGoingBackwardsIsZeroDelta(t *testing.T) {
	l, clock := newLoop(t)
	clock.Advance(1)
	l.Tick()
	clock.T = 0.5
	f := l.Tick()
	assert.Equal(t, 0.0, f.Delta)
}

func TestRunStopsWhenFramesClose(t *testing.T) {
	l, clock := newLoop(t)
	frames := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		frames <- time.Time{}
	}
	close(frames)

	var got []int
	err := l.Run(context.Background(), frames, func(f Frame) error {
		got = append(got, f.Index)
		clock.Advance(1.0 / 60)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestRunStopAndCancel(t *testing.T) {
	l, _ := newLoop(t)
	frames := make(chan time.Time)
	close(frames)

	n := 0
	err := l.Run(context.Background(), nil, func(Frame) error {
		n++
		l.Stop()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	l2, _ := newLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = l2.Run(ctx, make(chan time.Time), nil)
	assert.ErrorIs(t, err, context.Canceled)

	l3, _ := newLoop(t)
	boom := errors.New("present failed")
	err = l3.Run(context.Background(), frames, func(Frame) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestMinimizedViewportKeepsSection(t *testing.T) {
	l, clock := newLoop(t)
	l.Scroll(testH * 2)
	require.Equal(t, 2, l.Trigger.Current())
	tweens := l.Tweens.Active()

	l.Resize(testW, 0, 1)
	l.Scroll(input.ClampScroll(0, 0, l.Scene.Sections()))
	assert.Equal(t, 2, l.Trigger.Current())
	assert.Equal(t, tweens, l.Tweens.Active(), "no tween starts on mesh 0")

	clock.Advance(1.0 / 60)
	f := l.Tick()
	assert.Equal(t, 2, f.Section)

	l.Resize(testW, testH, 1)
	l.Scroll(testH * 2)
	assert.Equal(t, 2, l.Trigger.Current())
	assert.Equal(t, tweens, l.Tweens.Active())
}

func TestRunReportsCancelWhenFramesAlsoClosed(t *testing.T) {
	for i := 0; i < 50; i++ {
		l, _ := newLoop(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		frames := make(chan time.Time)
		close(frames)

		err := l.Run(ctx, frames, nil)
		require.ErrorIs(t, err, context.Canceled, "run %d", i)
	}
}
