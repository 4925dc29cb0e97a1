package textcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the drawn texture does not
	// implement gpucontext.Texture.
	ErrInvalidDrawContext = errors.New("textcanvas: texture does not implement gpucontext.Texture")

	// ErrInvalidRenderer is returned when the draw context exposes no
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("textcanvas: draw context has no TextureCreator")
)

// RenderOptions controls how the canvas is composited onto the target.
type RenderOptions struct {
	// X, Y is the position to draw the texture (default: 0, 0).
	X, Y float32
}

// DefaultRenderOptions returns options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{}
}

// RenderTo draws the canvas content through a gpucontext.TextureDrawer.
// This is the primary integration method; the dc parameter comes from
// the host, e.g. gogpu.Context.AsTextureDrawer().
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToEx(dc, DefaultRenderOptions())
}

// RenderToEx draws the canvas with explicit options.
func (c *Canvas) RenderToEx(dc gpucontext.TextureDrawer, opts RenderOptions) error {
	if c.closed {
		return ErrCanvasClosed
	}

	tex, err := c.Flush()
	if err != nil {
		return err
	}

	// Materialize a pending texture now that a creator is reachable.
	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA waits for the GPU internally, so once it
		// returns the deferred old texture is no longer referenced by
		// in-flight command buffers and can be destroyed.
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("textcanvas: NewTextureFromRGBA failed: %w", err)
		}

		// The canvas pixel buffer is premultiplied alpha; mark the
		// texture so the host composites with BlendFactorOne.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}

		c.texture = realTex
		tex = realTex

		if c.oldTexture != nil {
			if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			c.oldTexture = nil
		}
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}

	return dc.DrawTexture(gpuTex, opts.X, opts.Y)
}

// RenderToPosition renders at a specific position:
//
//	canvas.RenderToPosition(dc.AsTextureDrawer(), 100, 50)
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	return c.RenderToEx(dc, RenderOptions{X: x, Y: y})
}
