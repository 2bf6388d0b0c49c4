// Package section maps the scroll offset to a discrete section and starts a
// rotation tween on the section's mesh when the section changes.
package section

import (
	"log/slog"
	"math"

	"scroll-scene-renderer/internal/mathutil"
	"scroll-scene-renderer/internal/tween"
)

// Rotation tween parameters applied on every section change.
const (
	TweenDuration = 1.5
)

// TweenDelta is the rotation added around X, Y and Z, in radians.
var TweenDelta = mathutil.Vec3{6, 3, 1.5}

// Animator starts timed, eased rotation tweens. *tween.Engine implements it.
type Animator interface {
	Rotate(target tween.Rotator, delta mathutil.Vec3, duration float64)
}

// Index returns round(scroll/height) clamped to [0, count-1].
// A non-positive height or empty section list resolves to 0.
func Index(scroll, height float64, count int) int {
	if height <= 0 || count <= 0 {
		return 0
	}
	i := math.Round(scroll / height)
	if i < 0 {
		return 0
	}
	if i > float64(count-1) {
		return count - 1
	}
	return int(i)
}

// Trigger remembers the current section. It starts at section 0.
type Trigger struct {
	targets []tween.Rotator
	anim    Animator
	log     *slog.Logger
	current int
}

// NewTrigger creates a trigger over the ordered section targets.
// A nil logger uses slog.Default().
func NewTrigger[T tween.Rotator](targets []T, anim Animator, log *slog.Logger) *Trigger {
	if log == nil {
		log = slog.Default()
	}
	rs := make([]tween.Rotator, len(targets))
	for i, t := range targets {
		rs[i] = t
	}
	return &Trigger{targets: rs, anim: anim, log: log}
}

// Current returns the recorded section.
func (t *Trigger) Current() int { return t.current }

// Update derives the section from the scroll offset. When it differs from the
// recorded one, it records it and starts one rotation tween on that section's
// target. Out-of-range scroll clamps to the first or last section. A
// degenerate viewport (height <= 0, e.g. a minimized window) keeps the
// current section.
func (t *Trigger) Update(scroll, height float64) (section int, changed bool) {
	if len(t.targets) == 0 || height <= 0 {
		return t.current, false
	}
	next := Index(scroll, height, len(t.targets))
	if next == t.current {
		return t.current, false
	}
	t.current = next
	t.log.Info("section changed", "section", next)
	if t.anim != nil {
		t.anim.Rotate(t.targets[next], TweenDelta, TweenDuration)
	}
	return next, true
}
