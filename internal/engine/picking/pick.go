package picking

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// Hit is a single ray/node intersection.
type Hit struct {
	Node     *scene.Node
	Distance float32 // World units from the ray origin
	Point    mgl32.Vec3
}

// IntersectNode tests the ray against a mesh node. The ray is moved into
// node-local space; the local bounds are tested first and triangles second
// when the geometry carries vertex data.
func IntersectNode(r Ray, n *scene.Node) (Hit, bool) {
	if n == nil || n.Mesh == nil || !n.Visible {
		return Hit{}, false
	}

	world := n.WorldMatrix()
	if world.Det() == 0 {
		return Hit{}, false
	}
	local := r.Transform(world.Inv())

	t, ok := local.IntersectAABB(n.Mesh.Bounds)
	if !ok {
		return Hit{}, false
	}

	if len(n.Mesh.Positions) > 0 {
		best, found := float32(0), false
		for i := 0; i < n.Mesh.TriangleCount(); i++ {
			a, b, c := n.Mesh.Triangle(i)
			if tt, hit := local.IntersectTriangle(a, b, c); hit && (!found || tt < best) {
				best, found = tt, true
			}
		}
		if !found {
			return Hit{}, false
		}
		t = best
	}

	point := mgl32.TransformCoordinate(local.At(t), world)
	return Hit{Node: n, Distance: point.Sub(r.Origin).Len(), Point: point}, true
}

// IntersectNodes tests every candidate and returns the hits ordered by
// distance, nearest first. Only the given candidates are considered.
func IntersectNodes(r Ray, candidates []*scene.Node) []Hit {
	var hits []Hit
	for _, n := range candidates {
		if h, ok := IntersectNode(r, n); ok {
			hits = append(hits, h)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Nearest returns the closest hit among candidates.
func Nearest(r Ray, candidates []*scene.Node) (Hit, bool) {
	hits := IntersectNodes(r, candidates)
	if len(hits) == 0 {
		return Hit{}, false
	}
	return hits[0], true
}
