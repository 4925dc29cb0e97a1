package textcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vectortext"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("textcanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("textcanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("textcanvas: nil DeviceProvider")

	// ErrNilFontContext is returned when a nil FontContext is passed.
	ErrNilFontContext = errors.New("textcanvas: nil FontContext")
)

// textureDestroyer matches the texture Destroy signature of gogpu
// textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas rasterizes text into a premultiplied RGBA pixel buffer and
// mirrors it into a GPU texture on demand. Drawing happens on the CPU;
// the GPU only ever sees texture uploads and one composited quad.
type Canvas struct {
	fc       *vectortext.FontContext
	provider gpucontext.DeviceProvider

	pix    []byte // premultiplied RGBA, width*height*4
	width  int
	height int

	color  [4]float32
	params vectortext.CoverageParams

	texture     any // lazily created (*gogpu.Texture)
	oldTexture  any // previous texture awaiting deferred destruction
	dirty       bool
	sizeChanged bool
	closed      bool
}

// New creates a Canvas that draws glyphs from fc.
// The provider should come from gogpu.App.GPUContextProvider().
func New(provider gpucontext.DeviceProvider, fc *vectortext.FontContext, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if fc == nil {
		return nil, ErrNilFontContext
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	return &Canvas{
		fc:       fc,
		provider: provider,
		pix:      make([]byte, width*height*4),
		width:    width,
		height:   height,
		color:    [4]float32{0, 0, 0, 1},
		params:   vectortext.DefaultCoverageParams(),
		dirty:    true, // first Flush creates the texture
	}, nil
}

// MustNew is like New but panics on error. Use only when errors are
// programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, fc *vectortext.FontContext, width, height int) *Canvas {
	c, err := New(provider, fc, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// FontContext returns the glyph source for this canvas.
func (c *Canvas) FontContext() *vectortext.FontContext {
	return c.fc
}

// SetColor sets the text color for subsequent DrawText calls, as
// straight (non-premultiplied) RGBA in [0, 1].
func (c *Canvas) SetColor(r, g, b, a float32) {
	c.color = [4]float32{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// SetCoverageParams sets the anti-aliasing parameters for subsequent
// DrawText calls.
func (c *Canvas) SetCoverageParams(params vectortext.CoverageParams) {
	c.params = params
}

// Clear resets the pixel buffer to fully transparent and marks the
// canvas dirty.
func (c *Canvas) Clear() error {
	if c.closed {
		return ErrCanvasClosed
	}
	clear(c.pix)
	c.dirty = true
	return nil
}

// DrawText rasterizes one line of text into the canvas. x, y position
// the baseline start in pixels (origin top-left); size is the em height
// in pixels. Runes missing from the font render blank and do not abort
// the rest of the string.
func (c *Canvas) DrawText(text string, x, y, size float32) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if text == "" || size <= 0 {
		return nil
	}

	scale := size / float32(c.fc.UnitsPerEm())
	mesh, err := c.fc.LayoutText(text, x, y, scale)
	if err != nil {
		return fmt.Errorf("textcanvas: layout: %w", err)
	}
	if mesh.QuadCount() == 0 {
		return nil
	}

	mask := vectortext.Rasterize(c.fc, mesh, c.width, c.height, c.params)
	c.compositeMask(mask.Pix)
	c.dirty = true
	return nil
}

// compositeMask blends the text color into the pixel buffer using the
// alpha mask, premultiplied source-over.
func (c *Canvas) compositeMask(mask []byte) {
	n := c.width * c.height
	if len(mask) < n || len(c.pix) < n*4 {
		return
	}
	for i := 0; i < n; i++ {
		a := mask[i]
		if a == 0 {
			continue
		}
		af := float32(a) / 255
		sa := c.color[3] * af
		sr := c.color[0] * sa
		sg := c.color[1] * sa
		sb := c.color[2] * sa

		off := i * 4
		inv := 1 - sa
		c.pix[off+0] = blendByte(sr, c.pix[off+0], inv)
		c.pix[off+1] = blendByte(sg, c.pix[off+1], inv)
		c.pix[off+2] = blendByte(sb, c.pix[off+2], inv)
		c.pix[off+3] = blendByte(sa, c.pix[off+3], inv)
	}
}

func blendByte(src float32, dst byte, invAlpha float32) byte {
	v := src*255 + float32(dst)*invAlpha
	if v > 255 {
		v = 255
	}
	return byte(v + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Pixels returns the canvas pixel buffer: premultiplied RGBA, row-major
// from the top-left. The slice is live; mutating it requires MarkDirty.
func (c *Canvas) Pixels() []byte {
	if c.closed {
		return nil
	}
	return c.pix
}

// MarkDirty flags the canvas for GPU upload on the next Flush.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// IsDirty reports whether the canvas has pending changes that need a
// GPU upload.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Resize changes the canvas dimensions. The pixel buffer is reallocated
// and cleared; the texture is recreated on the next render.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}

	c.pix = make([]byte, width*height*4)
	c.width = width
	c.height = height
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush uploads the pixel buffer to the GPU texture if dirty and
// returns the texture. The texture is created lazily: before the first
// RenderTo it is a placeholder that the render step materializes.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	// A resize invalidates the texture, but the old one may still be
	// referenced by in-flight GPU work. Keep it alive until RenderToEx
	// has uploaded the replacement (which waits for the GPU).
	if c.sizeChanged {
		if c.texture != nil {
			if c.oldTexture != nil {
				if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	if c.texture == nil {
		c.texture = &pendingTexture{
			width:  c.width,
			height: c.height,
			data:   c.pix,
		}
		c.dirty = false
		return c.texture, nil
	}

	if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(c.pix); err != nil {
			return nil, fmt.Errorf("textcanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return c.texture, nil
}

// Texture returns the current GPU texture without flushing, or nil if
// none has been created yet.
func (c *Canvas) Texture() any {
	return c.texture
}

// Provider returns the DeviceProvider associated with this canvas, or
// nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Close releases all resources associated with the Canvas. Close is
// idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	if c.oldTexture != nil {
		if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.oldTexture = nil
	}
	if c.texture != nil {
		if destroyer, ok := c.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.texture = nil
	}

	c.pix = nil
	c.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation. It holds the
// data needed to create the real texture once a TextureCreator is
// available (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
