// Package orientation drives the camera from a device orientation stream.
package orientation

import (
	"context"
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/logger"
	smath "github.com/Faultbox/showroom/pkg/math"
)

var (
	// ErrPermissionDenied is returned when access to the stream is refused.
	ErrPermissionDenied = errors.New("orientation: permission denied")
	// ErrNoSensor is returned when the device has no usable sensor.
	ErrNoSensor = errors.New("orientation: no orientation sensor")
)

// Angles is a device orientation reading in degrees.
type Angles struct {
	Alpha float32 // yaw
	Beta  float32 // pitch
	Gamma float32 // roll
}

// DefaultAngles is the pose a freshly opened stream starts from.
var DefaultAngles = Angles{Alpha: -90, Beta: 90, Gamma: 63.43}

// Euler returns the camera rotation for the reading as Euler XYZ radians.
func (a Angles) Euler() mgl32.Vec3 {
	return mgl32.Vec3{
		smath.DegToRad(-a.Beta),
		smath.DegToRad(a.Alpha),
		smath.DegToRad(a.Gamma),
	}
}

// PermissionRequester grants access to the orientation stream.
type PermissionRequester interface {
	RequestPermission(ctx context.Context) error
}

// Notifier shows a blocking notice to the user.
type Notifier interface {
	Notify(title, message string)
}

// Controller owns the device orientation mode. While active it overrides
// the orbit controls.
type Controller struct {
	requester PermissionRequester
	notifier  Notifier

	active bool
	latest Angles
	fresh  bool

	log *zap.Logger
}

// NewController creates an inactive controller.
func NewController(requester PermissionRequester, notifier Notifier) *Controller {
	return &Controller{
		requester: requester,
		notifier:  notifier,
		log:       logger.Named("orientation"),
	}
}

// Start requests the stream. On failure the user is notified and the
// manual camera stays in charge.
func (c *Controller) Start(ctx context.Context) error {
	if c.active {
		return nil
	}
	if c.requester == nil {
		c.fail(ErrNoSensor)
		return ErrNoSensor
	}
	if err := c.requester.RequestPermission(ctx); err != nil {
		c.fail(err)
		return err
	}

	c.active = true
	c.fresh = false
	c.log.Info("device orientation enabled")
	return nil
}

func (c *Controller) fail(err error) {
	c.log.Warn("device orientation unavailable", zap.Error(err))
	if c.notifier == nil {
		return
	}
	if errors.Is(err, ErrPermissionDenied) {
		c.notifier.Notify("Orientation", "Permission not granted for motion/orientation.")
	} else {
		c.notifier.Notify("Orientation", "Device orientation not supported or permission error.")
	}
}

// Stop hands the camera back to the orbit controls.
func (c *Controller) Stop() {
	if !c.active {
		return
	}
	c.active = false
	c.log.Info("device orientation disabled")
}

// Active reports whether the stream drives the camera.
func (c *Controller) Active() bool {
	return c.active
}

// Update records a reading. Readings arriving while inactive are dropped.
func (c *Controller) Update(a Angles) {
	if !c.active {
		return
	}
	c.latest = a
	c.fresh = true
}

// Latest returns the most recent reading since Start.
func (c *Controller) Latest() (Angles, bool) {
	return c.latest, c.fresh
}

// ApplyTo orients cam from the latest reading and keeps the orbit
// controls disabled while the stream is active.
func (c *Controller) ApplyTo(cam *camera.Perspective, controls *camera.OrbitControls) {
	if controls != nil {
		controls.Enabled = !c.active
	}
	if c.active && c.fresh {
		cam.SetEuler(c.latest.Euler())
	}
}
