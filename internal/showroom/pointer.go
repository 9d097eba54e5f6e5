package showroom

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/picking"
)

// Rect is the render surface rectangle in client coordinates.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// NormalizePointer maps client coordinates to normalized device
// coordinates of the surface: x grows right, y grows up, both in [-1, 1]
// inside the rectangle. It fails for a degenerate rectangle.
func NormalizePointer(clientX, clientY float32, r Rect) (mgl32.Vec2, bool) {
	if r.Width <= 0 || r.Height <= 0 {
		return mgl32.Vec2{}, false
	}
	x := (clientX-r.X)/r.Width*2 - 1
	y := -(clientY-r.Y)/r.Height*2 + 1
	return mgl32.Vec2{x, y}, true
}

// Pick returns the nearest interactive node under ndc. Nodes outside the
// interactive registry are never tested, even when they are in front.
func (s *Session) Pick(ndc mgl32.Vec2, cam *camera.Perspective) (picking.Hit, bool) {
	if len(s.table.Interactive()) == 0 {
		return picking.Hit{}, false
	}
	ray := picking.NDCToRay(ndc, cam.InverseViewProjection())
	return picking.Nearest(ray, s.table.Interactive())
}

// HandleClick resolves a click and dispatches the matching toggle.
// It returns the role of the node hit, or RoleNone.
func (s *Session) HandleClick(clientX, clientY float32, r Rect, cam *camera.Perspective) Role {
	ndc, ok := NormalizePointer(clientX, clientY, r)
	if !ok {
		return RoleNone
	}
	hit, ok := s.Pick(ndc, cam)
	if !ok {
		return RoleNone
	}

	role := s.table.RoleOf(hit.Node)
	s.log.Info("clicked",
		zap.String("node", hit.Node.Name),
		zap.Stringer("role", role),
		zap.Float32("distance", hit.Distance))

	switch role {
	case RoleDriverDoor:
		s.ToggleDoor()
	case RoleHeadlightSwitch:
		s.ToggleHeadlights()
	case RoleHazardSwitch:
		s.ToggleHazard()
	}
	return role
}
