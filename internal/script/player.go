package script

// Sink receives replayed events. *loop.Loop satisfies it.
type Sink interface {
	Scroll(y float64)
	MouseMove(x, y float64)
	Resize(w, h int, platformRatio float64)
}

// Player dispatches timeline events as time advances.
type Player struct {
	events []Event
	next   int
}

// NewPlayer returns a player positioned before the first event.
func NewPlayer(tl Timeline) *Player {
	return &Player{events: tl.Events}
}

// Advance dispatches every not-yet-played event with At <= t, in order, and
// returns how many were dispatched.
func (p *Player) Advance(t float64, sink Sink) int {
	n := 0
	for p.next < len(p.events) && p.events[p.next].At <= t {
		e := p.events[p.next]
		p.next++
		n++
		switch e.Type {
		case Scroll:
			sink.Scroll(e.Y)
		case Mouse:
			sink.MouseMove(e.X, e.Y)
		case Resize:
			ratio := e.Ratio
			if ratio <= 0 {
				ratio = 1
			}
			sink.Resize(e.Width, e.Height, ratio)
		}
	}
	return n
}

// Done reports whether every event has been dispatched.
func (p *Player) Done() bool {
	return p.next >= len(p.events)
}
