// Package tween runs timed, eased rotation tweens on scene transforms.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"scroll-scene-renderer/internal/mathutil"
)

// Rotator is anything whose rotation can be nudged by a delta.
type Rotator interface {
	Rotate(delta mathutil.Vec3)
}

// Easing used for section rotations (power2.inOut).
var Easing ease.TweenFunc = ease.InOutQuad

type rotation struct {
	target   Rotator
	delta    mathutil.Vec3
	progress *gween.Tween
	applied  float64 // eased progress already applied
}

// Engine owns the in-flight tweens. It is not safe for concurrent use;
// the render loop is its only caller.
//
// Tweens are relative: each update applies the eased increment since the
// previous update, so overlapping tweens on one target add up.
type Engine struct {
	active []*rotation
}

// NewEngine returns an idle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Rotate starts a tween adding delta to target's rotation over duration seconds.
// A non-positive duration applies the delta on the next Update.
func (e *Engine) Rotate(target Rotator, delta mathutil.Vec3, duration float64) {
	if duration <= 0 {
		duration = 1e-6
	}
	e.active = append(e.active, &rotation{
		target:   target,
		delta:    delta,
		progress: gween.New(0, 1, float32(duration), Easing),
	})
}

// Update advances every tween by dt seconds and drops finished ones.
func (e *Engine) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	kept := e.active[:0]
	for _, r := range e.active {
		p, done := r.progress.Update(float32(dt))
		eased := float64(p)
		if done {
			eased = 1
		}
		r.target.Rotate(r.delta.Scale(eased - r.applied))
		r.applied = eased
		if !done {
			kept = append(kept, r)
		}
	}
	clear(e.active[len(kept):])
	e.active = kept
}

// Active returns the number of unfinished tweens.
func (e *Engine) Active() int {
	return len(e.active)
}
