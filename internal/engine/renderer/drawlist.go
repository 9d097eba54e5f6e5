package renderer

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
)

type drawItem struct {
	node  *scene.Node
	mat   *material.Material
	world mgl32.Mat4
	dist2 float32 // squared distance from the eye to the mesh center
}

// drawList is the per-frame view of the scene graph. It is rebuilt every
// frame because door tweens and layer flags change between frames.
type drawList struct {
	opaque      []drawItem
	transparent []drawItem
	casters     []drawItem
	bloom       int
	bounds      scene.Bounds
}

var fallbackMaterial = material.NewStandard()

func (dl *drawList) reset() {
	dl.opaque = dl.opaque[:0]
	dl.transparent = dl.transparent[:0]
	dl.casters = dl.casters[:0]
	dl.bloom = 0
	dl.bounds = scene.EmptyBounds()
}

// collect walks the visible part of the graph, composing world matrices on
// the way down. Meshes without vertex data (compressed primitives) are
// skipped; they still take part in picking through their bounds.
func (dl *drawList) collect(root *scene.Node, eye mgl32.Vec3) {
	dl.reset()
	if root == nil {
		return
	}
	dl.walk(root, mgl32.Ident4(), eye)

	// Opaque front to back, transparent back to front
	sort.SliceStable(dl.opaque, func(i, j int) bool {
		return dl.opaque[i].dist2 < dl.opaque[j].dist2
	})
	sort.SliceStable(dl.transparent, func(i, j int) bool {
		return dl.transparent[i].dist2 > dl.transparent[j].dist2
	})
}

func (dl *drawList) walk(n *scene.Node, parent mgl32.Mat4, eye mgl32.Vec3) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.LocalMatrix())

	if n.Mesh != nil && len(n.Mesh.Positions) > 0 {
		mat := n.Material
		if mat == nil {
			mat = fallbackMaterial
		}
		wb := n.Mesh.Bounds.Transform(world)
		item := drawItem{
			node:  n,
			mat:   mat,
			world: world,
			dist2: wb.Center().Sub(eye).LenSqr(),
		}
		if mat.Transparent {
			dl.transparent = append(dl.transparent, item)
		} else {
			dl.opaque = append(dl.opaque, item)
		}
		if n.CastShadow {
			dl.casters = append(dl.casters, item)
		}
		if n.Layers.Test(scene.LayerBloom) {
			dl.bloom++
		}
		dl.bounds = dl.bounds.Union(wb)
	}

	for _, c := range n.Children {
		dl.walk(c, world, eye)
	}
}

// size returns the number of drawable meshes.
func (dl *drawList) size() int {
	return len(dl.opaque) + len(dl.transparent)
}
