// Package scene provides the scene graph the viewer loads assets into.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/showroom/internal/engine/material"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// Node is an object in the scene graph. Nodes with a Mesh are drawable;
// nodes without one only group their children.
type Node struct {
	Name     string
	Parent   *Node
	Children []*Node

	// Local transform. Rotation is Euler XYZ in radians.
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Mesh     *Geometry
	Material *material.Material

	Visible       bool
	Layers        Layers
	CastShadow    bool
	ReceiveShadow bool
}

// NewNode creates an empty group node.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
		Layers:  DefaultLayers,
	}
}

// NewMesh creates a drawable node.
func NewMesh(name string, geo *Geometry, mat *material.Material) *Node {
	n := NewNode(name)
	n.Mesh = geo
	n.Material = mat
	return n
}

// IsMesh reports whether the node carries geometry.
func (n *Node) IsMesh() bool {
	return n.Mesh != nil
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.Parent != nil {
		child.Parent.Remove(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Remove detaches child from n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Traverse visits n and all its descendants depth-first, parents first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// Find returns the first node in traversal order with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// SetMaterial installs m and returns the material it replaced.
func (n *Node) SetMaterial(m *material.Material) *material.Material {
	prev := n.Material
	n.Material = m
	return prev
}

// Quaternion returns the local rotation as a quaternion.
func (n *Node) Quaternion() mgl32.Quat {
	return smath.QuatFromEulerXYZ(n.Rotation)
}

// LocalMatrix returns Translation * Rotation * Scale.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := n.Quaternion().Mat4()
	s := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to n.
// It is recomputed on every call, so animated parents are always honored.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// WorldQuaternion returns the accumulated rotation from the root down to n.
func (n *Node) WorldQuaternion() mgl32.Quat {
	q := n.Quaternion()
	for p := n.Parent; p != nil; p = p.Parent {
		q = p.Quaternion().Mul(q)
	}
	return q.Normalize()
}

// WorldBounds returns the world space bounds of every mesh under n.
func (n *Node) WorldBounds() Bounds {
	b := EmptyBounds()
	n.Traverse(func(c *Node) {
		if c.Mesh == nil || c.Mesh.Bounds.IsEmpty() {
			return
		}
		b = b.Union(c.Mesh.Bounds.Transform(c.WorldMatrix()))
	})
	return b
}
