package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// OrbitControls orbits a camera around a target point.
type OrbitControls struct {
	Camera *Perspective
	Target mgl32.Vec3

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPolar    float32 // Radians from +Y
	MaxPolar    float32

	// Damping
	EnableDamping bool
	DampingFactor float32

	// Sensitivity
	RotateSpeed float32
	ZoomSpeed   float32

	// Enabled is false while another source drives the camera.
	Enabled bool

	deltaTheta float32
	deltaPhi   float32
	scale      float32
}

// NewOrbitControls creates controls with defaults for inspecting a car.
func NewOrbitControls(cam *Perspective) *OrbitControls {
	return &OrbitControls{
		Camera:        cam,
		MinDistance:   1,
		MaxDistance:   20,
		MinPolar:      0,
		MaxPolar:      gomath.Pi / 2,
		EnableDamping: true,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		Enabled:       true,
		scale:         1,
	}
}

// HandleDrag queues a rotation from a pointer drag in pixels.
func (o *OrbitControls) HandleDrag(deltaX, deltaY float32, viewportHeight int) {
	if !o.Enabled || viewportHeight <= 0 {
		return
	}
	h := float32(viewportHeight)
	o.deltaTheta -= 2 * gomath.Pi * deltaX / h * o.RotateSpeed
	o.deltaPhi -= 2 * gomath.Pi * deltaY / h * o.RotateSpeed
}

// HandleZoom queues a dolly from a scroll wheel delta (positive zooms in).
func (o *OrbitControls) HandleZoom(delta float32) {
	if !o.Enabled || delta == 0 {
		return
	}
	step := float32(gomath.Pow(0.95, float64(o.ZoomSpeed)))
	if delta > 0 {
		o.scale *= step
	} else {
		o.scale /= step
	}
}

// SetTarget moves the orbit center and points the camera at it.
func (o *OrbitControls) SetTarget(target mgl32.Vec3) {
	o.Target = target
	o.Camera.LookAt(target)
}

// FitToBounds targets the center of b.
func (o *OrbitControls) FitToBounds(b scene.Bounds) {
	if b.IsEmpty() {
		return
	}
	o.SetTarget(b.Center())
}

// Update applies queued input and constraints to the camera.
// Call once per frame.
func (o *OrbitControls) Update() {
	if !o.Enabled {
		return
	}

	offset := o.Camera.Position.Sub(o.Target)
	radius := offset.Len()
	if radius < 1e-6 {
		radius = o.MinDistance
		offset = mgl32.Vec3{0, 0, radius}
	}

	theta := float32(gomath.Atan2(float64(offset[0]), float64(offset[2])))
	phi := float32(gomath.Acos(float64(smath.Clamp(offset[1]/radius, -1, 1))))

	if o.EnableDamping {
		theta += o.deltaTheta * o.DampingFactor
		phi += o.deltaPhi * o.DampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	const eps = 1e-6
	phi = smath.Clamp(phi, o.MinPolar, o.MaxPolar)
	phi = smath.Clamp(phi, eps, gomath.Pi-eps)

	radius = smath.Clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := float32(gomath.Sin(float64(phi)))
	o.Camera.Position = o.Target.Add(mgl32.Vec3{
		radius * sinPhi * float32(gomath.Sin(float64(theta))),
		radius * float32(gomath.Cos(float64(phi))),
		radius * sinPhi * float32(gomath.Cos(float64(theta))),
	})
	o.Camera.LookAt(o.Target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
	o.scale = 1
}
