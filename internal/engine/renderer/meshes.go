package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// evictAfter is how many frames an unused mesh keeps its GPU buffers.
const evictAfter = 120

const vertexFloats = 8 // position, normal, uv

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
	version       uint32
	lastFrame     uint64
}

// meshCache uploads geometry on first use and re-uploads it when its
// version changes.
type meshCache struct {
	meshes map[*scene.Geometry]*gpuMesh
	frame  uint64
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[*scene.Geometry]*gpuMesh)}
}

func (c *meshCache) get(g *scene.Geometry) *gpuMesh {
	m, ok := c.meshes[g]
	if !ok {
		m = &gpuMesh{}
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.GenBuffers(1, &m.ebo)
		c.meshes[g] = m
		m.upload(g)
	} else if m.version != g.Version {
		m.upload(g)
	}
	m.lastFrame = c.frame
	return m
}

func (m *gpuMesh) upload(g *scene.Geometry) {
	verts := interleave(g)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	stride := int32(vertexFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	m.indexed = len(g.Indices) > 0
	if m.indexed {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		m.count = int32(len(g.Indices))
	} else {
		m.count = int32(len(g.Positions))
	}

	gl.BindVertexArray(0)
	m.version = g.Version
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
}

func (m *gpuMesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// endFrame frees meshes that have not been drawn for a while and starts
// the next frame.
func (c *meshCache) endFrame() {
	for g, m := range c.meshes {
		if c.frame-m.lastFrame > evictAfter {
			m.destroy()
			delete(c.meshes, g)
		}
	}
	c.frame++
}

func (c *meshCache) clear() {
	for g, m := range c.meshes {
		m.destroy()
		delete(c.meshes, g)
	}
}

// interleave packs geometry into position/normal/uv vertices. Missing
// normals or UVs are zero.
func interleave(g *scene.Geometry) []float32 {
	out := make([]float32, len(g.Positions)*vertexFloats)
	for i, p := range g.Positions {
		v := out[i*vertexFloats : (i+1)*vertexFloats]
		copy(v[0:3], p[:])
		if i < len(g.Normals) {
			copy(v[3:6], g.Normals[i][:])
		}
		if i < len(g.UVs) {
			copy(v[6:8], g.UVs[i][:])
		}
	}
	return out
}
