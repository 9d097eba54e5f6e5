// Package renderer draws the scene graph with OpenGL: shadow maps, a lit
// forward pass into an HDR target, and a bloom composite for meshes on the
// bloom layer.
package renderer

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/camera"
	"github.com/Faultbox/showroom/internal/engine/framebuffer"
	"github.com/Faultbox/showroom/internal/engine/lighting"
	"github.com/Faultbox/showroom/internal/engine/material"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/shader"
	"github.com/Faultbox/showroom/internal/engine/shadow"
	"github.com/Faultbox/showroom/internal/engine/texture"
	"github.com/Faultbox/showroom/internal/logger"
)

// Texture units used by the lit program.
const (
	unitBaseColor  = 0
	unitDirShadow  = 1
	unitSpotShadow = 2 // up to unitSpotShadow+MaxSpotLights-1
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Samples    int
	ClearColor mgl32.Vec3
	Exposure   float32
	Bloom      BloomConfig
}

// Stats describes the last rendered frame.
type Stats struct {
	DrawCalls   int
	Triangles   int
	Meshes      int
	Transparent int
	Bloom       int
	Casters     int
	SpotShadows int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	lit       *shader.Program
	depth     *shader.Program
	composite *shader.Program

	msaa     *framebuffer.Framebuffer // nil without multisampling
	hdr      *framebuffer.Framebuffer
	bloom    *bloomPass
	dirMap   *shadow.Map
	spotMaps [lighting.MaxSpotLights]*shadow.Map
	emptyVAO uint32

	meshes   *meshCache
	textures []uint32
	spots    *lighting.SpotLightBuffer
	list     drawList
	stats    Stats
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	if cfg.Exposure <= 0 {
		cfg.Exposure = 1
	}

	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		meshes: newMeshCache(),
		spots:  lighting.NewSpotLightBuffer(),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if err := r.init(); err != nil {
		return nil, multierr.Combine(err, r.Close())
	}
	return r, nil
}

func (r *Renderer) init() error {
	var err error
	if r.lit, err = shader.Compile("lit", meshVertexShader, litFragmentShader); err != nil {
		return err
	}
	if r.depth, err = shader.Compile("depth", depthVertexShader, depthFragmentShader); err != nil {
		return err
	}
	if r.composite, err = shader.Compile("composite", fullscreenVertexShader, compositeFragmentShader); err != nil {
		return err
	}

	w, h := int32(r.config.Width), int32(r.config.Height)
	if r.config.Samples > 0 {
		r.msaa, err = framebuffer.New(w, h, framebuffer.Options{HDR: true, Depth: true, Samples: int32(r.config.Samples)})
		if err != nil {
			return fmt.Errorf("creating multisample target: %w", err)
		}
	}
	if r.hdr, err = framebuffer.New(w, h, framebuffer.Options{HDR: true, Depth: true}); err != nil {
		return fmt.Errorf("creating scene target: %w", err)
	}
	if r.bloom, err = newBloomPass(r.config.Bloom, w, h); err != nil {
		return err
	}

	gl.GenVertexArrays(1, &r.emptyVAO)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	return nil
}

// SetTextures uploads the decoded images of an asset, replacing any
// previous set. Indices match material.Material.Texture; nil entries stay
// unbound.
func (r *Renderer) SetTextures(images []*image.RGBA) {
	texture.Delete(r.textures...)
	r.textures = make([]uint32, len(images))
	for i, img := range images {
		if img != nil {
			r.textures[i] = texture.Upload(img, true)
		}
	}
	r.log.Debug("textures uploaded", zap.Int("count", len(images)))
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	w, h := int32(width), int32(height)
	if r.msaa != nil {
		r.msaa.Resize(w, h)
	}
	r.hdr.Resize(w, h)
	r.bloom.resize(w, h)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws root as seen by cam under rig.
func (r *Renderer) Render(root *scene.Node, cam *camera.Perspective, rig *lighting.Rig) {
	r.stats = Stats{}
	r.list.collect(root, cam.Position)
	r.spots.Collect(rig.Spots)

	r.stats.Meshes = r.list.size()
	r.stats.Transparent = len(r.list.transparent)
	r.stats.Bloom = r.list.bloom
	r.stats.Casters = len(r.list.casters)

	dirMatrix, dirShadow := r.renderDirectionalShadow(rig)
	spotMatrices, spotShadow := r.renderSpotShadows()

	viewProj := cam.ViewProjection()

	// Lit pass
	target := r.hdr
	if r.msaa != nil {
		target = r.msaa
	}
	target.Bind()
	c := r.config.ClearColor
	target.Clear(c[0], c[1], c[2], 1)

	r.lit.Use()
	r.setFrameUniforms(cam, viewProj, rig, dirMatrix, dirShadow, spotMatrices, spotShadow)
	r.lit.SetBool("uMask", false)
	r.drawScene(true)
	if r.msaa != nil {
		r.msaa.ResolveTo(r.hdr)
	}

	// Bloom mask and blur
	if r.list.bloom > 0 {
		r.bloom.mask.Bind()
		r.bloom.mask.Clear(0, 0, 0, 1)
		r.lit.Use()
		r.lit.SetBool("uMask", true)
		r.drawScene(false)
		r.bloom.run(r.emptyVAO)
	}

	r.compose()
	r.meshes.endFrame()
}

func (r *Renderer) setFrameUniforms(cam *camera.Perspective, viewProj mgl32.Mat4, rig *lighting.Rig,
	dirMatrix mgl32.Mat4, dirShadow bool, spotMatrices []mgl32.Mat4, spotShadow []int32) {
	p := r.lit
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", cam.Position)
	p.SetVec3("uAmbient", rig.Ambient.Color.Mul(rig.Ambient.Intensity))

	// Directional intensities are in the unitless scale where a white
	// light of 1 on a white surface gives 1.
	p.SetVec3("uDirColor", rig.Directional.Color.Mul(rig.Directional.Intensity*math.Pi))
	p.SetVec3("uDirToLight", rig.Directional.Direction().Mul(-1))
	p.SetBool("uDirShadow", dirShadow)
	p.SetMat4("uDirMatrix", dirMatrix)

	p.SetInt("uSpotCount", int32(r.spots.Count))
	p.SetVec3Array("uSpotPos", r.spots.Positions())
	p.SetVec3Array("uSpotDir", r.spots.Directions())
	p.SetVec3Array("uSpotColor", r.spots.Colors())
	p.SetVec4Array("uSpotCone", r.spots.Cones())
	p.SetIntArray("uSpotShadow", spotShadow)
	p.SetMat4Array("uSpotMatrix", spotMatrices)

	p.SetInt("uBaseColor", unitBaseColor)
	p.SetInt("uDirShadowMap", unitDirShadow)
	units := make([]int32, lighting.MaxSpotLights)
	for i := range units {
		units[i] = int32(unitSpotShadow + i)
	}
	p.SetIntArray("uSpotShadowMap", units)

	if dirShadow {
		r.dirMap.BindTexture(gl.TEXTURE0 + unitDirShadow)
	}
	for i, on := range spotShadow {
		if on != 0 {
			r.spotMaps[i].BindTexture(gl.TEXTURE0 + uint32(unitSpotShadow+i))
		}
	}
}

// drawScene draws opaque then transparent meshes with the lit program. In
// the mask pass transparent meshes outside the bloom layer are skipped so
// that near-invisible click targets do not occlude the glow.
func (r *Renderer) drawScene(lit bool) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for i := range r.list.opaque {
		r.drawItem(&r.list.opaque[i])
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	for i := range r.list.transparent {
		item := &r.list.transparent[i]
		if !lit && !item.node.Layers.Test(scene.LayerBloom) {
			continue
		}
		gl.DepthMask(item.mat.DepthWrite)
		r.drawItem(item)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) drawItem(item *drawItem) {
	p := r.lit
	m := item.mat

	p.SetMat4("uModel", item.world)
	p.SetMat3("uNormalMatrix", item.world.Mat3().Inv().Transpose())
	p.SetVec3("uColor", m.Color)
	p.SetFloat("uOpacity", m.Opacity)
	p.SetFloat("uRoughness", m.Roughness)
	p.SetFloat("uMetalness", m.Metalness)
	p.SetVec3("uEmissive", m.Emissive.Mul(m.EmissiveIntensity))
	p.SetFloat("uClearcoat", m.Clearcoat)
	p.SetFloat("uClearcoatRoughness", m.ClearcoatRoughness)
	p.SetFloat("uEnvIntensity", m.EnvMapIntensity)
	p.SetBool("uDoubleSided", m.DoubleSided)
	p.SetBool("uReceiveShadow", item.node.ReceiveShadow)
	p.SetBool("uBloom", item.node.Layers.Test(scene.LayerBloom))

	tex := r.texture(m)
	p.SetBool("uHasTexture", tex != 0)
	if tex != 0 {
		gl.ActiveTexture(gl.TEXTURE0 + unitBaseColor)
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	if m.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	mesh := r.meshes.get(item.node.Mesh)
	mesh.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += item.node.Mesh.TriangleCount()
}

func (r *Renderer) texture(m *material.Material) uint32 {
	if m.Texture < 0 || m.Texture >= len(r.textures) {
		return 0
	}
	return r.textures[m.Texture]
}

func (r *Renderer) renderDirectionalShadow(rig *lighting.Rig) (mgl32.Mat4, bool) {
	if !rig.Directional.CastShadow || len(r.list.casters) == 0 {
		return mgl32.Ident4(), false
	}
	if r.dirMap == nil {
		m, err := shadow.NewMap(2048)
		if err != nil {
			r.log.Warn("directional shadows disabled", zap.Error(err))
			rig.Directional.CastShadow = false
			return mgl32.Ident4(), false
		}
		r.dirMap = m
	}
	matrix := shadow.DirectionalMatrix(rig.Directional.Position, r.list.bounds)
	r.renderDepth(r.dirMap, matrix)
	return matrix, true
}

// renderSpotShadows fills one shadow map per visible shadow casting spot.
// The returned slices are indexed like the spot light buffer.
func (r *Renderer) renderSpotShadows() ([]mgl32.Mat4, []int32) {
	matrices := make([]mgl32.Mat4, lighting.MaxSpotLights)
	enabled := make([]int32, lighting.MaxSpotLights)
	if len(r.list.casters) == 0 {
		return matrices, enabled
	}

	for i, l := range r.spots.Lights {
		if !l.CastShadow {
			continue
		}
		size := int32(l.Shadow.MapSize)
		if size <= 0 {
			size = shadow.DefaultResolution
		}
		if r.spotMaps[i] == nil || r.spotMaps[i].Resolution != size {
			if r.spotMaps[i] != nil {
				r.spotMaps[i].Destroy()
			}
			m, err := shadow.NewMap(size)
			if err != nil {
				r.log.Warn("spot shadow unavailable", zap.String("light", l.Name), zap.Error(err))
				r.spotMaps[i] = nil
				continue
			}
			r.spotMaps[i] = m
		}
		matrices[i] = shadow.SpotMatrix(l.Position, l.Target, l.Angle, l.Shadow.Near, l.Shadow.Far)
		r.renderDepth(r.spotMaps[i], matrices[i])
		enabled[i] = 1
		r.stats.SpotShadows++
	}
	return matrices, enabled
}

func (r *Renderer) renderDepth(m *shadow.Map, lightMatrix mgl32.Mat4) {
	m.Begin()
	r.depth.Use()
	r.depth.SetMat4("uLightMatrix", lightMatrix)
	for i := range r.list.casters {
		item := &r.list.casters[i]
		r.depth.SetMat4("uModel", item.world)
		r.meshes.get(item.node.Mesh).draw()
		r.stats.DrawCalls++
	}
	m.End()
}

// compose tone maps the scene plus bloom into the default framebuffer.
func (r *Renderer) compose() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	r.composite.Use()
	r.composite.SetInt("uScene", 0)
	r.composite.SetInt("uBloomTex", 1)
	r.composite.SetFloat("uExposure", r.config.Exposure)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.hdr.ColorTexture())
	gl.ActiveTexture(gl.TEXTURE1)
	if r.list.bloom > 0 {
		gl.BindTexture(gl.TEXTURE_2D, r.bloom.result)
		r.composite.SetFloat("uStrength", r.config.Bloom.Strength)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, r.hdr.ColorTexture())
		r.composite.SetFloat("uStrength", 0)
	}

	gl.BindVertexArray(r.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Enable(gl.DEPTH_TEST)
}

// ReadPixels returns the composed frame from the default framebuffer as
// bottom-up RGBA. Call it after Render and before swapping buffers.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Close releases GPU resources and reports any pending GL errors.
func (r *Renderer) Close() error {
	r.log.Info("closing renderer")

	r.meshes.clear()
	texture.Delete(r.textures...)
	r.textures = nil

	for _, p := range []*shader.Program{r.lit, r.depth, r.composite} {
		if p != nil {
			p.Delete()
		}
	}
	for _, fb := range []*framebuffer.Framebuffer{r.msaa, r.hdr} {
		if fb != nil {
			fb.Destroy()
		}
	}
	if r.bloom != nil {
		r.bloom.destroy()
	}
	if r.dirMap != nil {
		r.dirMap.Destroy()
	}
	for _, m := range r.spotMaps {
		if m != nil {
			m.Destroy()
		}
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
	}
	return glErrors("closing renderer")
}

// glErrors drains the GL error queue.
func glErrors(op string) error {
	var err error
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		err = multierr.Append(err, fmt.Errorf("%s: GL error 0x%x", op, code))
	}
	return err
}
