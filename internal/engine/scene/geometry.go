package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns an inverted box that any point expands.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Expand grows the box to include p.
func (b Bounds) Expand(p mgl32.Vec3) Bounds {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union returns the box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	return b.Expand(o.Min).Expand(o.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the axis-aligned box enclosing b transformed by m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.Expand(mgl32.TransformCoordinate(corner, m))
	}
	return out
}

// Geometry holds mesh vertex data in node-local space.
// Positions may be empty when the primitive is compressed and only its
// accessor bounds are known; Bounds is always set.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Bounds    Bounds

	// Version is bumped whenever vertex data changes.
	Version uint32
}

// NewGeometry builds a geometry and computes its bounds.
func NewGeometry(positions []mgl32.Vec3, indices []uint32) *Geometry {
	g := &Geometry{Positions: positions, Indices: indices}
	g.ComputeBounds()
	return g
}

// ComputeBounds recomputes Bounds from Positions. With no positions the
// existing bounds are kept.
func (g *Geometry) ComputeBounds() {
	if len(g.Positions) == 0 {
		return
	}
	b := EmptyBounds()
	for _, p := range g.Positions {
		b = b.Expand(p)
	}
	g.Bounds = b
}

// TriangleCount returns the number of triangles described by the geometry.
func (g *Geometry) TriangleCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the corners of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c mgl32.Vec3) {
	if len(g.Indices) > 0 {
		return g.Positions[g.Indices[i*3]], g.Positions[g.Indices[i*3+1]], g.Positions[g.Indices[i*3+2]]
	}
	return g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]
}

// Validate checks that every index refers to a position and that the
// optional attributes match the vertex count.
func (g *Geometry) Validate() error {
	n := len(g.Positions)
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d at %d out of range for %d positions", idx, i, n)
		}
	}
	if len(g.Indices) == 0 && n%3 != 0 {
		return fmt.Errorf("%d positions do not form whole triangles", n)
	}
	if len(g.Normals) > 0 && len(g.Normals) != n {
		return fmt.Errorf("%d normals for %d positions", len(g.Normals), n)
	}
	if len(g.UVs) > 0 && len(g.UVs) != n {
		return fmt.Errorf("%d texcoords for %d positions", len(g.UVs), n)
	}
	return nil
}

// ComputeVertexNormals replaces Normals with area-weighted face normals
// averaged per vertex.
func (g *Geometry) ComputeVertexNormals() {
	if len(g.Positions) == 0 {
		return
	}

	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i < g.TriangleCount(); i++ {
		var ia, ib, ic int
		if len(g.Indices) > 0 {
			ia, ib, ic = int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])
		} else {
			ia, ib, ic = i*3, i*3+1, i*3+2
		}
		a, b, c := g.Positions[ia], g.Positions[ib], g.Positions[ic]
		face := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}

	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		}
	}
	g.Normals = normals
	g.Version++
}

// Box builds a closed box spanning min..max.
func Box(min, max mgl32.Vec3) *Geometry {
	positions := []mgl32.Vec3{
		{min[0], min[1], min[2]}, {max[0], min[1], min[2]},
		{max[0], max[1], min[2]}, {min[0], max[1], min[2]},
		{min[0], min[1], max[2]}, {max[0], min[1], max[2]},
		{max[0], max[1], max[2]}, {min[0], max[1], max[2]},
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return NewGeometry(positions, indices)
}
