// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventDrag
	EventClick
	EventWheel
	EventSensor
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8

	// Drag deltas in pixels, wheel steps in WheelY.
	DeltaX int
	DeltaY int
	WheelY float32

	// Sensor readings
	Sensor    int32
	Data      [3]float32
	Timestamp uint32
}

// Input handles all input processing.
type Input struct {
	events []Event
	left   ClickTracker
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseMotionEvent:
			x, y := int(e.X), int(e.Y)
			i.events = append(i.events, Event{Type: EventMouseMove, MouseX: x, MouseY: y})
			if dx, dy, ok := i.left.Move(x, y); ok {
				i.events = append(i.events, Event{
					Type:   EventDrag,
					MouseX: x,
					MouseY: y,
					DeltaX: dx,
					DeltaY: dy,
				})
			}

		case *sdl.MouseButtonEvent:
			x, y := int(e.X), int(e.Y)
			if e.Type == sdl.MOUSEBUTTONDOWN {
				i.events = append(i.events, Event{Type: EventMouseDown, MouseX: x, MouseY: y, Button: e.Button})
				if e.Button == sdl.BUTTON_LEFT {
					i.left.Press(x, y)
				}
			} else if e.Type == sdl.MOUSEBUTTONUP {
				i.events = append(i.events, Event{Type: EventMouseUp, MouseX: x, MouseY: y, Button: e.Button})
				if e.Button == sdl.BUTTON_LEFT && i.left.Release(x, y) {
					i.events = append(i.events, Event{Type: EventClick, MouseX: x, MouseY: y, Button: e.Button})
				}
			}

		case *sdl.MouseWheelEvent:
			dy := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			i.events = append(i.events, Event{Type: EventWheel, WheelY: dy})

		case *sdl.SensorEvent:
			i.events = append(i.events, Event{
				Type:      EventSensor,
				Sensor:    e.Which,
				Data:      [3]float32{e.Data[0], e.Data[1], e.Data[2]},
				Timestamp: e.Timestamp,
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
