// Package input drains the SDL event queue into a small stream of
// viewer events so the render loop never touches sdl.PollEvent directly.
package input

import "github.com/veandco/go-sdl2/sdl"

// Kind identifies what an Event describes.
type Kind int

const (
	KindNone Kind = iota
	KindQuit
	KindResize
	KindKeyDown
	KindMouseDown
	KindMouseUp
	KindMouseMove
	KindWheel
)

// Event is one decoded SDL event. Only the fields relevant to its
// Kind are populated.
type Event struct {
	Kind   Kind
	Key    sdl.Scancode
	Button uint8
	X, Y   int
	WheelY int
}

// Pump collects the events of a single frame.
type Pump struct {
	queue []Event
}

// NewPump returns an empty event pump.
func NewPump() *Pump {
	return &Pump{queue: make([]Event, 0, 16)}
}

// Poll empties the SDL event queue into the pump, replacing the events
// of the previous frame. It reports whether a quit was requested.
func (p *Pump) Poll() bool {
	p.queue = p.queue[:0]
	quit := false

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			p.queue = append(p.queue, Event{Kind: KindQuit})
			quit = true

		case *sdl.WindowEvent:
			// Size is not forwarded; the viewer asks the window for
			// its drawable size, which differs on HiDPI displays.
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				p.queue = append(p.queue, Event{Kind: KindResize})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				p.queue = append(p.queue, Event{Kind: KindKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseButtonEvent:
			kind := KindMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				kind = KindMouseUp
			}
			p.queue = append(p.queue, Event{Kind: kind, Button: e.Button, X: int(e.X), Y: int(e.Y)})

		case *sdl.MouseMotionEvent:
			p.queue = append(p.queue, Event{Kind: KindMouseMove, X: int(e.X), Y: int(e.Y)})

		case *sdl.MouseWheelEvent:
			p.queue = append(p.queue, Event{Kind: KindWheel, WheelY: int(e.Y)})
		}
	}

	return quit
}

// Events returns the events decoded by the last Poll. The backing
// slice is reused across frames.
func (p *Pump) Events() []Event {
	return p.queue
}
