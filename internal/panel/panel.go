// Package panel exposes named color parameters whose edits recolor materials live.
package panel

import (
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Parameter names registered by the demo.
const (
	MaterialColor         = "materialColor"
	ParticleMaterialColor = "particleMaterialColor"
)

// Preset palettes offered by the window's keyboard shortcuts.
var (
	MaterialPresets = []string{"#e94560", "#ffeded", "#f5a623", "#7ed321"}
	ParticlePresets = []string{"#0f3460", "#ffeded", "#16213e", "#e94560"}
)

// Param is a snapshot of one parameter.
type Param struct {
	Name string
	Hex  string
}

type colorParam struct {
	name     string
	value    colorful.Color
	onChange func(color.Color)
}

type edit struct {
	name, hex string
}

// Panel holds color parameters. Set and Drain must be called from the render
// loop; Submit may be called from any goroutine.
type Panel struct {
	params []*colorParam
	byName map[string]*colorParam
	log    *slog.Logger

	mu      sync.Mutex
	pending []edit
}

// New returns an empty panel. A nil logger uses slog.Default().
func New(log *slog.Logger) *Panel {
	if log == nil {
		log = slog.Default()
	}
	return &Panel{byName: make(map[string]*colorParam), log: log}
}

// ParseColor parses "#rrggbb" or "#rgb".
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("panel: color %q: %w", hex, err)
	}
	return c, nil
}

// AddColor registers a color parameter with its initial value. onChange runs
// on every later edit with the new color.
func (p *Panel) AddColor(name, hex string, onChange func(color.Color)) error {
	if _, exists := p.byName[name]; exists {
		return fmt.Errorf("panel: duplicate parameter %q", name)
	}
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	cp := &colorParam{name: name, value: c, onChange: onChange}
	p.params = append(p.params, cp)
	p.byName[name] = cp
	return nil
}

// Set parses hex and, if valid, stores it and invokes the parameter's callback.
// An invalid value leaves the previous color in place.
func (p *Panel) Set(name, hex string) error {
	cp, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("panel: unknown parameter %q", name)
	}
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	if c == cp.value {
		return nil
	}
	cp.value = c
	if cp.onChange != nil {
		cp.onChange(c)
	}
	return nil
}

// Submit queues an edit to be applied by the next Drain.
func (p *Panel) Submit(name, hex string) {
	p.mu.Lock()
	p.pending = append(p.pending, edit{name, hex})
	p.mu.Unlock()
}

// Drain applies queued edits in submission order and returns how many
// succeeded. Failed edits are logged and dropped.
func (p *Panel) Drain() int {
	p.mu.Lock()
	edits := p.pending
	p.pending = nil
	p.mu.Unlock()

	applied := 0
	for _, e := range edits {
		if err := p.Set(e.name, e.hex); err != nil {
			p.log.Warn("parameter edit rejected", "param", e.name, "err", err)
			continue
		}
		applied++
	}
	return applied
}

// Params returns the parameters in registration order.
func (p *Panel) Params() []Param {
	out := make([]Param, len(p.params))
	for i, cp := range p.params {
		out[i] = Param{Name: cp.name, Hex: cp.value.Hex()}
	}
	return out
}

// Value returns the current color of a parameter.
func (p *Panel) Value(name string) (colorful.Color, bool) {
	cp, ok := p.byName[name]
	if !ok {
		return colorful.Color{}, false
	}
	return cp.value, true
}

// Cycle sets a parameter to the preset following its current value,
// wrapping around. A value not in presets moves to the first preset.
func (p *Panel) Cycle(name string, presets []string) error {
	if len(presets) == 0 {
		return nil
	}
	cur, ok := p.Value(name)
	if !ok {
		return fmt.Errorf("panel: unknown parameter %q", name)
	}
	next := 0
	for i, hex := range presets {
		if c, err := ParseColor(hex); err == nil && c == cur {
			next = (i + 1) % len(presets)
			break
		}
	}
	return p.Set(name, presets[next])
}
