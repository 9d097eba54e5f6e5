// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options selects the attachments of a framebuffer.
type Options struct {
	// HDR stores color as RGBA16F so emissive values above one survive
	// until the bloom composite.
	HDR   bool
	Depth bool
	// Samples > 0 makes a multisampled target backed by renderbuffers. It
	// cannot be sampled; resolve it into a plain framebuffer first.
	Samples int32
}

// Framebuffer manages an offscreen render target.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	colorRBO     uint32
	depthRBO     uint32
	width        int32
	height       int32
	opts         Options
}

// New creates a new framebuffer with the specified dimensions.
func New(width, height int32, opts Options) (*Framebuffer, error) {
	fb := &Framebuffer{
		width:  max(width, 1),
		height: max(height, 1),
		opts:   opts,
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	if fb.opts.Samples > 0 {
		gl.GenRenderbuffers(1, &fb.colorRBO)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.colorRBO)
		fb.allocColor()
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, fb.colorRBO)
	} else {
		gl.GenTextures(1, &fb.colorTexture)
		gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
		fb.allocColor()
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)
	}

	if fb.opts.Depth {
		gl.GenRenderbuffers(1, &fb.depthRBO)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		fb.allocDepth()
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

func (fb *Framebuffer) colorFormat() uint32 {
	if fb.opts.HDR {
		return gl.RGBA16F
	}
	return gl.RGBA8
}

// allocColor sizes the bound color texture or renderbuffer.
func (fb *Framebuffer) allocColor() {
	if fb.opts.Samples > 0 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.opts.Samples, fb.colorFormat(), fb.width, fb.height)
		return
	}
	if fb.opts.HDR {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, fb.width, fb.height, 0, gl.RGBA, gl.FLOAT, nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
}

// allocDepth sizes the bound depth renderbuffer.
func (fb *Framebuffer) allocDepth() {
	if fb.opts.Samples > 0 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.opts.Samples, gl.DEPTH_COMPONENT24, fb.width, fb.height)
		return
	}
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
}

// ResolveTo copies the color attachment into dst, averaging samples of a
// multisampled source.
func (fb *Framebuffer) ResolveTo(dst *Framebuffer) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst.fbo)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, dst.width, dst.height, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears the bound attachments with the specified color.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if fb.opts.Depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

// ColorTexture returns the color attachment texture ID, zero for a
// multisampled framebuffer.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTexture
}

// FBO returns the underlying framebuffer object ID.
func (fb *Framebuffer) FBO() uint32 {
	return fb.fbo
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Resize reallocates the attachments if the dimensions changed.
func (fb *Framebuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == fb.width && height == fb.height {
		return
	}
	fb.width = width
	fb.height = height

	if fb.colorRBO != 0 {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.colorRBO)
	} else {
		gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	}
	fb.allocColor()

	if fb.depthRBO != 0 {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		fb.allocDepth()
	}
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
	if fb.colorRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.colorRBO)
		fb.colorRBO = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
