package orientation

import (
	gomath "math"

	smath "github.com/Faultbox/showroom/pkg/math"
)

// Integrator turns gyroscope angular velocity into absolute angles.
type Integrator struct {
	Sensitivity float32

	angles   Angles
	lastTick uint32
	started  bool
}

// NewIntegrator starts integrating from initial.
func NewIntegrator(initial Angles, sensitivity float32) *Integrator {
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &Integrator{Sensitivity: sensitivity, angles: initial}
}

// Angles returns the integrated orientation.
func (g *Integrator) Angles() Angles {
	return g.angles
}

// Reset restarts integration from a.
func (g *Integrator) Reset(a Angles) {
	g.angles = a
	g.started = false
}

// Add integrates one gyro sample. rates are radians per second about the
// device X (pitch), Y (yaw) and Z (roll) axes; tick is in milliseconds.
// The first sample only establishes the clock.
func (g *Integrator) Add(rates [3]float32, tick uint32) Angles {
	if !g.started {
		g.started = true
		g.lastTick = tick
		return g.angles
	}

	dt := float32(tick-g.lastTick) / 1000
	g.lastTick = tick
	if dt <= 0 || dt > 1 {
		// Stale or reordered sample
		return g.angles
	}

	k := g.Sensitivity * dt
	g.angles.Beta += smath.RadToDeg(rates[0]) * k
	g.angles.Alpha += smath.RadToDeg(rates[1]) * k
	g.angles.Gamma += smath.RadToDeg(rates[2]) * k

	g.angles.Alpha = wrap(g.angles.Alpha)
	g.angles.Beta = smath.Clamp(g.angles.Beta, -180, 180)
	g.angles.Gamma = smath.Clamp(g.angles.Gamma, -90, 90)
	return g.angles
}

// wrap maps deg into [-180, 180).
func wrap(deg float32) float32 {
	d := gomath.Mod(float64(deg)+180, 360)
	if d < 0 {
		d += 360
	}
	return float32(d - 180)
}
