package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	smath "github.com/Faultbox/showroom/pkg/math"
)

func TestBoxBounds(t *testing.T) {
	g := Box(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3})
	if g.Bounds.Min != (mgl32.Vec3{-1, -2, -3}) || g.Bounds.Max != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected bounds %+v", g.Bounds)
	}
	if g.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", g.TriangleCount())
	}
}

func TestComputeVertexNormals(t *testing.T) {
	// Single triangle in the XY plane, counter-clockwise seen from +Z
	g := NewGeometry([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	g.ComputeVertexNormals()

	if len(g.Normals) != 3 {
		t.Fatalf("expected 3 normals, got %d", len(g.Normals))
	}
	for i, n := range g.Normals {
		if !smath.NearVec3(n, mgl32.Vec3{0, 0, 1}, 1e-6) {
			t.Errorf("normal %d: expected +Z, got %v", i, n)
		}
	}
}

func TestComputeVertexNormalsWithoutPositions(t *testing.T) {
	g := &Geometry{Bounds: Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}}
	g.ComputeVertexNormals()
	g.ComputeBounds()

	if g.Normals != nil {
		t.Error("expected no normals without positions")
	}
	if g.Bounds.Max != (mgl32.Vec3{1, 1, 1}) {
		t.Error("accessor bounds should be kept when positions are missing")
	}
}

func TestBoundsTransform(t *testing.T) {
	b := Bounds{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	moved := b.Transform(mgl32.Translate3D(5, 0, 0))
	if !smath.NearVec3(moved.Center(), mgl32.Vec3{5, 0, 0}, 1e-6) {
		t.Errorf("expected center at (5,0,0), got %v", moved.Center())
	}
}

func TestWorldBounds(t *testing.T) {
	root := NewNode("root")
	a := NewMesh("a", Box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}), nil)
	b := NewMesh("b", Box(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}), nil)
	b.Position = mgl32.Vec3{4, 0, 0}
	root.Add(a)
	root.Add(b)

	wb := root.WorldBounds()
	if wb.Min != (mgl32.Vec3{0, 0, 0}) || !smath.NearVec3(wb.Max, mgl32.Vec3{5, 1, 1}, 1e-6) {
		t.Errorf("unexpected world bounds %+v", wb)
	}
}

func TestGeometryValidate(t *testing.T) {
	tri := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	tests := []struct {
		name    string
		geo     *Geometry
		wantErr bool
	}{
		{"indexed", NewGeometry(tri, []uint32{0, 1, 2}), false},
		{"non-indexed", NewGeometry(tri, nil), false},
		{"bounds only", &Geometry{}, false},
		{"index past positions", NewGeometry(tri, []uint32{0, 1, 7}), true},
		{"partial triangle", NewGeometry(tri[:2], nil), true},
		{"short normals", &Geometry{Positions: tri, Normals: tri[:1]}, true},
		{"short uvs", &Geometry{Positions: tri, UVs: []mgl32.Vec2{{0, 0}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geo.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
