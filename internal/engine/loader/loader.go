// Package loader turns glTF/GLB assets into scene graphs.
package loader

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/logger"
	smath "github.com/Faultbox/showroom/pkg/math"
)

// ExtDraco is the glTF extension for Draco-compressed primitives.
const ExtDraco = "KHR_draco_mesh_compression"

var (
	// ErrNoScene is returned when a document contains no scene to instantiate.
	ErrNoScene = errors.New("loader: document has no scene")
	// ErrMalformed marks documents whose references or vertex data are
	// inconsistent.
	ErrMalformed = errors.New("loader: malformed document")
)

// Asset is a loaded model: its scene graph and the decoded images its
// materials refer to by texture index.
type Asset struct {
	Root     *scene.Node
	Textures []*image.RGBA
}

// Result is delivered by LoadAsync.
type Result struct {
	Path    string
	Asset   *Asset
	Err     error
	Elapsed time.Duration
}

// Load reads and converts the asset at path.
func Load(ctx context.Context, path string) (*Asset, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	root, err := Convert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	textures, err := Textures(ctx, doc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("decoding textures of %s: %w", path, err)
	}
	return &Asset{Root: root, Textures: textures}, nil
}

// load is swapped in tests.
var load = Load

// LoadAsync loads the asset on a separate goroutine. The channel receives
// exactly one Result and is then closed; a panic while decoding is
// delivered as an ErrMalformed error. The scene graph is not touched by
// the loader after delivery, so the receiver owns it.
func LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		start := time.Now()
		res := Result{Path: path}
		defer func() {
			if r := recover(); r != nil {
				res.Asset = nil
				res.Err = fmt.Errorf("loading %s: %w: %v", path, ErrMalformed, r)
			}
			res.Elapsed = time.Since(start)
			out <- res
		}()
		res.Asset, res.Err = load(ctx, path)
	}()
	return out
}

// Convert builds a scene graph from a decoded document.
func Convert(ctx context.Context, doc *gltf.Document) (*scene.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	idx := 0
	if doc.Scene != nil {
		idx = *doc.Scene
	}
	if idx < 0 || idx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene index %d out of range", ErrNoScene, idx)
	}

	c := &converter{
		doc:       doc,
		materials: make(map[int]*material.Material),
		log:       logger.Named("loader"),
	}

	src := doc.Scenes[idx]
	name := src.Name
	if name == "" {
		name = "Scene"
	}
	root := scene.NewNode(name)
	for _, ni := range src.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := c.node(ctx, ni)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}

	c.log.Debug("scene converted",
		zap.String("scene", name),
		zap.Int("nodes", c.nodes),
		zap.Int("meshes", c.meshes),
		zap.Int("materials", len(c.materials)),
		zap.Int("compressed", c.compressed))
	return root, nil
}

type converter struct {
	doc       *gltf.Document
	materials map[int]*material.Material
	log       *zap.Logger

	nodes      int
	meshes     int
	compressed int
}

func (c *converter) node(ctx context.Context, idx int) (*scene.Node, error) {
	if idx < 0 || idx >= len(c.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	src := c.doc.Nodes[idx]
	c.nodes++

	n := scene.NewNode(src.Name)
	applyTransform(n, src)

	if src.Mesh != nil {
		if err := c.mesh(n, *src.Mesh); err != nil {
			return nil, fmt.Errorf("node %q: %w", src.Name, err)
		}
	}

	for _, ci := range src.Children {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		child, err := c.node(ctx, ci)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// mesh attaches the primitives of mesh mi to n. A single primitive makes n
// itself drawable; several become child meshes named after n.
func (c *converter) mesh(n *scene.Node, mi int) error {
	if mi < 0 || mi >= len(c.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", mi)
	}
	src := c.doc.Meshes[mi]

	type part struct {
		geo *scene.Geometry
		mat *material.Material
	}
	var parts []part
	for pi, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			c.log.Debug("skipping non-triangle primitive",
				zap.String("mesh", src.Name), zap.Int("primitive", pi))
			continue
		}
		geo, err := c.geometry(prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", src.Name, pi, err)
		}
		parts = append(parts, part{geo: geo, mat: c.material(prim.Material)})
	}

	switch len(parts) {
	case 0:
	case 1:
		n.Mesh = parts[0].geo
		n.Material = parts[0].mat
		c.meshes++
	default:
		for i, p := range parts {
			child := scene.NewMesh(fmt.Sprintf("%s_%d", n.Name, i), p.geo, p.mat)
			n.Add(child)
			c.meshes++
		}
	}
	return nil
}

func (c *converter) geometry(prim *gltf.Primitive) (*scene.Geometry, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("primitive has no POSITION attribute")
	}
	posAcc, err := c.accessor(posIdx, "POSITION")
	if err != nil {
		return nil, err
	}

	// Compressed payloads stay opaque; keep the declared bounds so the
	// mesh can still be picked and framed.
	if _, draco := prim.Extensions[ExtDraco]; draco {
		c.compressed++
		return &scene.Geometry{Bounds: accessorBounds(posAcc)}, nil
	}

	raw, err := modeler.ReadPosition(c.doc, posAcc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}
	positions := make([]mgl32.Vec3, len(raw))
	for i, p := range raw {
		positions[i] = mgl32.Vec3(p)
	}

	var indices []uint32
	if prim.Indices != nil {
		acc, err := c.accessor(*prim.Indices, "indices")
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(c.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	}

	geo := scene.NewGeometry(positions, indices)

	if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
		acc, err := c.accessor(ni, "NORMAL")
		if err != nil {
			return nil, err
		}
		raw, err := modeler.ReadNormal(c.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		geo.Normals = make([]mgl32.Vec3, len(raw))
		for i, v := range raw {
			geo.Normals[i] = mgl32.Vec3(v)
		}
	}

	if ti, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acc, err := c.accessor(ti, "TEXCOORD_0")
		if err != nil {
			return nil, err
		}
		raw, err := modeler.ReadTextureCoord(c.doc, acc, nil)
		if err != nil {
			return nil, fmt.Errorf("reading texcoords: %w", err)
		}
		geo.UVs = make([]mgl32.Vec2, len(raw))
		for i, v := range raw {
			geo.UVs[i] = mgl32.Vec2(v)
		}
	}

	if err := geo.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return geo, nil
}

func (c *converter) accessor(idx int, what string) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(c.doc.Accessors) || c.doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("%w: %s accessor %d out of range", ErrMalformed, what, idx)
	}
	return c.doc.Accessors[idx], nil
}

// material converts and caches the material at idx. Primitives sharing a
// glTF material share the converted pointer.
func (c *converter) material(idx *int) *material.Material {
	key := -1
	if idx != nil {
		key = *idx
	}
	if m, ok := c.materials[key]; ok {
		return m
	}

	var m *material.Material
	if key < 0 || key >= len(c.doc.Materials) {
		m = material.NewStandard()
		m.Name = "default"
	} else {
		m = convertMaterial(c.doc.Materials[key])
	}
	c.materials[key] = m
	return m
}

func convertMaterial(src *gltf.Material) *material.Material {
	m := material.NewStandard()
	m.Name = src.Name
	m.DoubleSided = src.DoubleSided

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		base := pbr.BaseColorFactorOrDefault()
		m.Color = mgl32.Vec3{float32(base[0]), float32(base[1]), float32(base[2])}
		m.Opacity = float32(base[3])
		m.Metalness = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if pbr.BaseColorTexture != nil {
			m.Texture = pbr.BaseColorTexture.Index
		}
	}

	m.Emissive = mgl32.Vec3{
		float32(src.EmissiveFactor[0]),
		float32(src.EmissiveFactor[1]),
		float32(src.EmissiveFactor[2]),
	}

	if src.AlphaMode == gltf.AlphaBlend {
		m.Transparent = true
		m.DepthWrite = false
	}
	return m
}

// applyTransform copies the node's local transform. A full matrix is
// decomposed into translation, rotation and scale.
func applyTransform(n *scene.Node, src *gltf.Node) {
	mat := src.MatrixOrDefault()
	if mat != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i := range mat {
			m[i] = float32(mat[i])
		}
		pos, rot, scale := decompose(m)
		n.Position = pos
		n.Rotation = smath.EulerXYZFromQuat(rot)
		n.Scale = scale
		return
	}

	t := src.TranslationOrDefault()
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	n.Rotation = smath.EulerXYZFromQuat(q.Normalize())
	n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

// decompose splits a column-major affine matrix into its parts.
// Shear is not represented.
func decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	pos := m.Col(3).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}

	rot := mgl32.Ident3()
	if sx != 0 && sy != 0 && sz != 0 {
		rot.SetCol(0, m.Col(0).Vec3().Mul(1/sx))
		rot.SetCol(1, m.Col(1).Vec3().Mul(1/sy))
		rot.SetCol(2, m.Col(2).Vec3().Mul(1/sz))
	}
	return pos, mgl32.Mat4ToQuat(rot.Mat4()).Normalize(), mgl32.Vec3{sx, sy, sz}
}

func accessorBounds(acc *gltf.Accessor) scene.Bounds {
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return scene.EmptyBounds()
	}
	return scene.Bounds{
		Min: mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
		Max: mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
	}
}
