package showroom

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/schedule"
	"github.com/Faultbox/showroom/internal/engine/tween"
	"github.com/Faultbox/showroom/internal/logger"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// Options tunes the interaction behavior.
type Options struct {
	DoorOpenDeg  float32
	DoorDuration time.Duration

	// BlinkPeriod is the time between hazard phase flips.
	BlinkPeriod     time.Duration
	HazardColor     uint32
	HazardIntensity float32

	// Spotlights sit HeadlightBackOffset behind each headlight and aim
	// HeadlightReach ahead of it.
	HeadlightBackOffset float32
	HeadlightReach      float32
}

// DefaultOptions returns the stock interaction tuning.
func DefaultOptions() Options {
	return Options{
		DoorOpenDeg:         50,
		DoorDuration:        time.Second,
		BlinkPeriod:         500 * time.Millisecond,
		HazardColor:         0xFC8C03,
		HazardIntensity:     0.2,
		HeadlightBackOffset: 0.3,
		HeadlightReach:      25,
	}
}

// State is the toggle state of a session. All fields start false.
type State struct {
	DoorOpen         bool
	HeadlightsOn     bool
	HazardActive     bool
	HazardBlinkPhase bool
}

// headlight pairs a bound headlight with its spotlight.
type headlight struct {
	role     Role
	node     *scene.Node
	original *material.Material
	spot     *lighting.SpotLight
	lit      *material.Material
}

// Session is one viewer's interaction state over a bound scene.
// It is not safe for concurrent use; drive it from the frame loop.
type Session struct {
	id    uuid.UUID
	table *Table
	opts  Options
	state State

	headlights []*headlight
	animator   *tween.Animator
	blinker    *schedule.Periodic

	log    *zap.Logger
	closed bool
}

// NewSession creates a session over table. A nil table behaves like
// EmptyTable.
func NewSession(table *Table, opts Options) *Session {
	if table == nil {
		table = EmptyTable()
	}
	id := uuid.New()
	s := &Session{
		id:       id,
		table:    table,
		opts:     opts,
		animator: tween.New(),
		blinker:  schedule.NewPeriodic(opts.BlinkPeriod),
		log:      logger.Named("session").With(zap.String("session", id.String())),
	}

	for _, role := range []Role{RoleDriverHeadlight, RolePassengerHeadlight} {
		b, ok := table.Get(role)
		if !ok {
			continue
		}
		s.headlights = append(s.headlights, &headlight{
			role:     role,
			node:     b.Nodes[0],
			original: b.Originals[0],
			spot:     lighting.NewSoftSpotLight(role.String() + "-spot"),
		})
	}

	s.log.Info("session started",
		zap.Int("interactive", len(table.Interactive())),
		zap.Int("headlights", len(s.headlights)))
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Table returns the bindings the session operates on.
func (s *Session) Table() *Table {
	return s.table
}

// State returns a copy of the toggle state.
func (s *Session) State() State {
	return s.state
}

// Spots returns the auxiliary spotlights, one per bound headlight.
func (s *Session) Spots() []*lighting.SpotLight {
	spots := make([]*lighting.SpotLight, len(s.headlights))
	for i, h := range s.headlights {
		spots[i] = h.spot
	}
	return spots
}

// ToggleDoor opens or closes the driver door. The rotation target comes
// from the new state alone, so a toggle mid-swing reverses it.
func (s *Session) ToggleDoor() {
	door := s.table.First(RoleDriverDoor)
	if s.closed || door == nil {
		return
	}

	s.state.DoorOpen = !s.state.DoorOpen
	target := float32(0)
	if s.state.DoorOpen {
		target = smath.DegToRad(s.opts.DoorOpenDeg)
	}
	s.animator.To(&door.Rotation[2], target, s.opts.DoorDuration, nil)

	s.log.Debug("door toggled", zap.Bool("open", s.state.DoorOpen))
}

// DoorTarget returns the angle in degrees the door is swinging to.
func (s *Session) DoorTarget() (float32, bool) {
	door := s.table.First(RoleDriverDoor)
	if door == nil {
		return 0, false
	}
	rad, ok := s.animator.Target(&door.Rotation[2])
	if !ok {
		return 0, false
	}
	return smath.RadToDeg(rad), true
}

// ToggleHeadlights switches both headlights and their spotlights.
func (s *Session) ToggleHeadlights() {
	if s.closed || len(s.headlights) == 0 {
		return
	}

	s.state.HeadlightsOn = !s.state.HeadlightsOn
	for _, h := range s.headlights {
		if s.state.HeadlightsOn {
			s.lightOn(h)
		} else {
			s.lightOff(h)
		}
	}

	s.log.Debug("headlights toggled", zap.Bool("on", s.state.HeadlightsOn))
}

func (s *Session) lightOn(h *headlight) {
	if h.lit != nil {
		h.lit.Dispose()
	}
	h.lit = material.Lit()
	h.node.SetMaterial(h.lit)
	h.node.Layers.Enable(scene.LayerBloom)
	h.spot.Visible = true
}

func (s *Session) lightOff(h *headlight) {
	if h.lit != nil {
		h.lit.Dispose()
		h.lit = nil
	}
	h.node.SetMaterial(h.original)
	h.node.Layers.Disable(scene.LayerBloom)
	h.spot.Visible = false
}

// ToggleHazard starts or stops the hazard blink.
func (s *Session) ToggleHazard() {
	lights, ok := s.table.Get(RoleTurnLight)
	if s.closed || !ok {
		return
	}

	s.state.HazardActive = !s.state.HazardActive
	if s.state.HazardActive {
		s.blinker.Start(func() { s.blink(lights) })
	} else {
		s.stopHazard(lights)
	}

	s.log.Debug("hazard toggled", zap.Bool("active", s.state.HazardActive))
}

func (s *Session) blink(lights *Binding) {
	s.state.HazardBlinkPhase = !s.state.HazardBlinkPhase
	color := material.Hex(s.opts.HazardColor)
	for i, n := range lights.Nodes {
		if n.Material == nil {
			continue
		}
		if s.state.HazardBlinkPhase {
			n.Material.SetEmissive(color, s.opts.HazardIntensity)
		} else {
			lights.Snapshots[i].ApplyEmissive(n.Material)
		}
	}
}

// stopHazard cancels the blink and restores every hazard light at once.
func (s *Session) stopHazard(lights *Binding) {
	s.blinker.Cancel()
	s.state.HazardBlinkPhase = false
	for i, n := range lights.Nodes {
		if n.Material != nil {
			lights.Snapshots[i].ApplyEmissive(n.Material)
		}
	}
}

// Close ends the session. The blink is cancelled, tweens stop, and every
// bound node gets its bind-time material back.
func (s *Session) Close() {
	if s.closed {
		return
	}

	if lights, ok := s.table.Get(RoleTurnLight); ok && s.state.HazardActive {
		s.stopHazard(lights)
		s.state.HazardActive = false
	}
	s.animator.StopAll()
	for _, h := range s.headlights {
		s.lightOff(h)
	}
	s.state.HeadlightsOn = false
	s.closed = true

	s.log.Info("session closed")
}
