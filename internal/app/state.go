package app

import (
	"time"

	"github.com/Faultbox/showroom/internal/engine/input"
)

// State is a phase of the viewer (loading, viewing).
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt time.Duration) error

	// Render is called every frame to draw the state.
	Render() error

	// HandleEvent processes one input event.
	HandleEvent(ev input.Event) error
}

// Manager manages state transitions. A change requested during a frame
// takes effect at the start of the next Update.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes a pending state change and updates the current state.
func (m *Manager) Update(dt time.Duration) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// HandleEvent forwards ev to the current state.
func (m *Manager) HandleEvent(ev input.Event) error {
	if m.current != nil {
		return m.current.HandleEvent(ev)
	}
	return nil
}

// Close exits the current state. A pending change is dropped.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
