// Package tween animates float properties over time.
package tween

import (
	"time"

	smath "github.com/Faultbox/showroom/pkg/math"
)

// EaseFunc maps linear progress in [0,1] to eased progress.
type EaseFunc func(t float32) float32

// DefaultEase decelerates towards the end of the tween.
var DefaultEase EaseFunc = smath.EaseOutQuad

// Tween moves a single property from one value to another.
type Tween struct {
	target   *float32
	from     float32
	to       float32
	duration time.Duration
	elapsed  time.Duration
	ease     EaseFunc
}

// Progress returns the linear progress in [0,1].
func (tw *Tween) Progress() float32 {
	if tw.duration <= 0 {
		return 1
	}
	return smath.Clamp(float32(tw.elapsed)/float32(tw.duration), 0, 1)
}

// Done reports whether the tween reached its end.
func (tw *Tween) Done() bool {
	return tw.elapsed >= tw.duration
}

func (tw *Tween) apply() {
	*tw.target = smath.Lerp(tw.from, tw.to, tw.ease(tw.Progress()))
}

// Animator owns the running tweens. At most one tween drives a property:
// a new tween on the same property replaces the old one and starts from the
// property's current value.
type Animator struct {
	tweens []*Tween
}

// New creates an empty animator.
func New() *Animator {
	return &Animator{}
}

// To starts animating *target towards value over d.
// A non-positive duration sets the value immediately.
func (a *Animator) To(target *float32, value float32, d time.Duration, ease EaseFunc) {
	a.Stop(target)

	if d <= 0 {
		*target = value
		return
	}
	if ease == nil {
		ease = DefaultEase
	}
	a.tweens = append(a.tweens, &Tween{
		target:   target,
		from:     *target,
		to:       value,
		duration: d,
		ease:     ease,
	})
}

// Update advances every tween by dt and drops the finished ones.
func (a *Animator) Update(dt time.Duration) {
	if len(a.tweens) == 0 {
		return
	}

	live := a.tweens[:0]
	for _, tw := range a.tweens {
		tw.elapsed += dt
		tw.apply()
		if !tw.Done() {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live
}

// Target returns the destination of the tween driving target, if any.
func (a *Animator) Target(target *float32) (float32, bool) {
	for _, tw := range a.tweens {
		if tw.target == target {
			return tw.to, true
		}
	}
	return 0, false
}

// Active returns the number of running tweens.
func (a *Animator) Active() int {
	return len(a.tweens)
}

// Stop drops the tween driving target, leaving the property where it is.
func (a *Animator) Stop(target *float32) {
	for i, tw := range a.tweens {
		if tw.target == target {
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			return
		}
	}
}

// StopAll drops every tween, leaving properties where they are.
func (a *Animator) StopAll() {
	a.tweens = nil
}

// Finish jumps every tween to its end value and clears them.
func (a *Animator) Finish() {
	for _, tw := range a.tweens {
		*tw.target = tw.to
	}
	a.tweens = nil
}
