package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

func unitBox(name string, pos mgl32.Vec3) *scene.Node {
	n := scene.NewMesh(name, scene.Box(mgl32.Vec3{-0.5, -0.5, -0.5}, mgl32.Vec3{0.5, 0.5, 0.5}), nil)
	n.Position = pos
	return n
}

func TestNearestOrdersByDistance(t *testing.T) {
	near := unitBox("near", mgl32.Vec3{0, 0, 2})
	far := unitBox("far", mgl32.Vec3{0, 0, -2})
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, ok := Nearest(r, []*scene.Node{far, near})
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Node != near {
		t.Errorf("expected nearest node, got %s", hit.Node.Name)
	}
	if math.Abs(float64(hit.Distance-7.5)) > 1e-4 {
		t.Errorf("expected distance 7.5, got %v", hit.Distance)
	}
}

func TestOnlyCandidatesAreTested(t *testing.T) {
	root := scene.NewNode("root")
	root.Add(unitBox("blocker", mgl32.Vec3{0, 0, 2}))
	target := unitBox("target", mgl32.Vec3{0, 0, -2})
	root.Add(target)
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, ok := Nearest(r, []*scene.Node{target})
	if !ok || hit.Node != target {
		t.Fatalf("expected target behind blocker to be hit, got %+v", hit)
	}
}

func TestIntersectNodeHonorsTransform(t *testing.T) {
	parent := scene.NewNode("parent")
	parent.Position = mgl32.Vec3{5, 0, 0}
	parent.Scale = mgl32.Vec3{2, 2, 2}
	child := unitBox("child", mgl32.Vec3{})
	parent.Add(child)

	r := Ray{Origin: mgl32.Vec3{5, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := IntersectNode(r, child)
	if !ok {
		t.Fatal("expected hit on transformed node")
	}
	// Scaled box spans z in [-1, 1]
	if math.Abs(float64(hit.Distance-9)) > 1e-4 {
		t.Errorf("expected distance 9, got %v", hit.Distance)
	}

	r.Origin = mgl32.Vec3{0, 0, 10}
	if _, ok := IntersectNode(r, child); ok {
		t.Error("expected miss at the untransformed location")
	}
}

func TestIntersectNodeBoundsOnly(t *testing.T) {
	// Compressed primitives only carry accessor bounds
	n := scene.NewMesh("draco", &scene.Geometry{
		Bounds: scene.Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}},
	}, nil)
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	hit, ok := IntersectNode(r, n)
	if !ok || math.Abs(float64(hit.Distance-9)) > 1e-4 {
		t.Errorf("expected bounds hit at 9, got %+v (ok=%v)", hit, ok)
	}
}

func TestInvisibleNodesAreSkipped(t *testing.T) {
	n := unitBox("hidden", mgl32.Vec3{})
	n.Visible = false
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := IntersectNode(r, n); ok {
		t.Error("hidden nodes should not be pickable")
	}
}
