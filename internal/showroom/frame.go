package showroom

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// Frame advances animations and re-derives per-frame visuals. Call it once
// per frame after input handling and before drawing.
func (s *Session) Frame(dt time.Duration) {
	if s.closed {
		return
	}

	s.animator.Update(dt)
	s.blinker.Advance(dt)

	up := mgl32.Vec3{0, 1, 0}
	for _, h := range s.headlights {
		forward := smath.Forward(h.node.WorldQuaternion(), up)
		h.spot.Follow(h.node.WorldPosition(), forward, s.opts.HeadlightBackOffset, s.opts.HeadlightReach)
	}

	for _, n := range s.table.Meshes() {
		n.Layers.Set(scene.LayerDefault)
	}
	if s.state.HeadlightsOn {
		for _, h := range s.headlights {
			h.node.Layers.Enable(scene.LayerBloom)
		}
	}
}
