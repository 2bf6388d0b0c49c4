// Package script replays a timed sequence of scroll, pointer and resize
// events, standing in for a user when rendering offline.
package script

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Event types.
const (
	Scroll = "scroll"
	Mouse  = "mouse"
	Resize = "resize"
)

// Event is one input at a point in time (seconds from start).
type Event struct {
	At     float64 `json:"at" toml:"at"`
	Type   string  `json:"type" toml:"type"`
	X      float64 `json:"x,omitempty" toml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" toml:"y,omitempty"`
	Width  int     `json:"width,omitempty" toml:"width,omitempty"`
	Height int     `json:"height,omitempty" toml:"height,omitempty"`
	Ratio  float64 `json:"ratio,omitempty" toml:"ratio,omitempty"`
}

// Timeline is an ordered list of events.
type Timeline struct {
	Events []Event `json:"events" toml:"events"`
}

// Load reads a timeline from JSON, or TOML when the extension is .toml.
func Load(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Timeline{}, fmt.Errorf("script: read %s: %w", path, err)
	}

	var tl Timeline
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &tl)
	} else {
		err = json.Unmarshal(data, &tl)
	}
	if err != nil {
		return Timeline{}, fmt.Errorf("script: parse %s: %w", path, err)
	}
	if err := tl.Validate(); err != nil {
		return Timeline{}, fmt.Errorf("script: %s: %w", path, err)
	}
	return tl, nil
}

// Validate checks event types and resize sizes, then sorts events by time.
// Events with equal times keep their file order.
func (tl *Timeline) Validate() error {
	for i, e := range tl.Events {
		switch e.Type {
		case Scroll, Mouse:
		case Resize:
			if e.Width <= 0 || e.Height <= 0 {
				return fmt.Errorf("event %d: resize to %dx%d", i, e.Width, e.Height)
			}
		default:
			return fmt.Errorf("event %d: unknown type %q", i, e.Type)
		}
		if e.At < 0 || math.IsNaN(e.At) {
			return fmt.Errorf("event %d: bad time %v", i, e.At)
		}
	}
	sort.SliceStable(tl.Events, func(a, b int) bool { return tl.Events[a].At < tl.Events[b].At })
	return nil
}

// Duration returns the time of the last event.
func (tl Timeline) Duration() float64 {
	if len(tl.Events) == 0 {
		return 0
	}
	return tl.Events[len(tl.Events)-1].At
}

// Default builds a tour of every section: the page scrolls one viewport at a
// time with a pause on each section, while the pointer circles the center.
func Default(w, h, sections int, duration float64) Timeline {
	const rate = 30.0
	var tl Timeline
	if sections < 1 || duration <= 0 {
		return tl
	}

	steps := int(duration * rate)
	span := float64(sections - 1)
	for k := 0; k <= steps; k++ {
		t := float64(k) / rate
		p := math.Min(t/duration, 1) * span
		seg := math.Floor(p)
		frac := p - seg
		eased := frac * frac * (3 - 2*frac)

		angle := 2 * math.Pi * t / 4
		tl.Events = append(tl.Events,
			Event{At: t, Type: Scroll, Y: (seg + eased) * float64(h)},
			Event{
				At:   t,
				Type: Mouse,
				X:    float64(w)/2 + math.Cos(angle)*0.35*float64(w),
				Y:    float64(h)/2 + math.Sin(angle)*0.35*float64(h),
			},
		)
	}
	return tl
}
