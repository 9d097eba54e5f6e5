package renderer

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/showroom/internal/engine/framebuffer"
	"github.com/Faultbox/showroom/internal/engine/shader"
)

// BloomConfig controls the glow around bloom-layer meshes.
type BloomConfig struct {
	Strength  float32
	Radius    float32 // 0..1, widens the blur
	Threshold float32 // luminance below which the mask is dropped
}

// bloomPass blurs the bloom mask at half resolution with a separable
// gaussian, ping-ponging between two targets.
type bloomPass struct {
	cfg    BloomConfig
	mask   *framebuffer.Framebuffer
	ping   *framebuffer.Framebuffer
	pong   *framebuffer.Framebuffer
	blur   *shader.Program
	result uint32
}

func newBloomPass(cfg BloomConfig, width, height int32) (*bloomPass, error) {
	b := &bloomPass{cfg: cfg}
	var err error

	if b.mask, err = framebuffer.New(width, height, framebuffer.Options{HDR: true, Depth: true}); err != nil {
		return nil, fmt.Errorf("bloom mask: %w", err)
	}
	if b.ping, err = framebuffer.New(width/2, height/2, framebuffer.Options{HDR: true}); err != nil {
		b.destroy()
		return nil, fmt.Errorf("bloom ping: %w", err)
	}
	if b.pong, err = framebuffer.New(width/2, height/2, framebuffer.Options{HDR: true}); err != nil {
		b.destroy()
		return nil, fmt.Errorf("bloom pong: %w", err)
	}
	if b.blur, err = shader.Compile("blur", fullscreenVertexShader, blurFragmentShader); err != nil {
		b.destroy()
		return nil, err
	}
	return b, nil
}

// blurIterations maps the radius onto horizontal+vertical pass pairs.
func blurIterations(radius float32) int {
	r := float64(max(0, min(radius, 1)))
	return 3 + int(math.Round(r*4))
}

// run blurs the mask and leaves the result texture in b.result.
func (b *bloomPass) run(emptyVAO uint32) {
	b.blur.Use()
	b.blur.SetInt("uSource", 0)
	b.blur.SetFloat("uSpread", 1+b.cfg.Radius*2)
	b.blur.SetFloat("uThreshold", b.cfg.Threshold)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(emptyVAO)
	gl.ActiveTexture(gl.TEXTURE0)

	src := b.mask.ColorTexture()
	targets := [2]*framebuffer.Framebuffer{b.ping, b.pong}
	passes := blurIterations(b.cfg.Radius) * 2
	for i := 0; i < passes; i++ {
		dst := targets[i%2]
		dst.Bind()
		if i%2 == 0 {
			b.blur.SetVec2("uDirection", 1, 0)
		} else {
			b.blur.SetVec2("uDirection", 0, 1)
		}
		b.blur.SetBool("uExtract", i == 0)
		gl.BindTexture(gl.TEXTURE_2D, src)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		src = dst.ColorTexture()
	}
	b.result = src
}

func (b *bloomPass) resize(width, height int32) {
	b.mask.Resize(width, height)
	b.ping.Resize(width/2, height/2)
	b.pong.Resize(width/2, height/2)
}

func (b *bloomPass) destroy() {
	for _, fb := range []*framebuffer.Framebuffer{b.mask, b.ping, b.pong} {
		if fb != nil {
			fb.Destroy()
		}
	}
	if b.blur != nil {
		b.blur.Delete()
	}
}
