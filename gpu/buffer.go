package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/vectortext"
)

// Byte strides of the GPU buffer layouts. These are contracts with
// shaders/vectortext.wgsl, not implementation details.
const (
	// CurveStride is the byte size of one quadratic curve: three
	// vec2<f32> control points.
	CurveStride = 24

	// GlyphEntryStride is the byte size of one glyph table entry:
	// u32 start, u32 count.
	GlyphEntryStride = 8

	// VertexStride is the byte size of one vertex: vec2<f32> position,
	// vec2<f32> uv, i32 glyph index.
	VertexStride = 20

	// UniformSize is the byte size of the render uniform block.
	UniformSize = 96
)

// RenderUniforms is the uniform block for the text pipeline. The field
// order matches the WGSL struct; BuildUniformData produces the exact
// 96-byte layout.
type RenderUniforms struct {
	// Color is the text color as straight (non-premultiplied) RGBA.
	// The shader premultiplies after applying coverage.
	Color [4]float32

	// Projection maps screen coordinates to clip space, column-major
	// as WGSL stores mat4x4.
	Projection [16]float32

	// AAWindow is the anti-aliasing ramp width in pixels.
	AAWindow float32

	// Supersample enables the perpendicular second coverage pass.
	Supersample bool
}

// DefaultRenderUniforms returns opaque black text with an identity
// projection and the default one-pixel anti-aliasing window.
func DefaultRenderUniforms() RenderUniforms {
	return RenderUniforms{
		Color:      [4]float32{0, 0, 0, 1},
		Projection: identityMatrix(),
		AAWindow:   1.0,
	}
}

// OrthoProjection returns a column-major projection that maps pixel
// coordinates, origin top-left and Y down, onto wgpu clip space.
func OrthoProjection(width, height float32) [16]float32 {
	if width <= 0 || height <= 0 {
		return identityMatrix()
	}
	return [16]float32{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}

func identityMatrix() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// BuildCurveData serializes the curve buffer for GPU upload: 24 bytes
// per curve, control points in p0 p1 p2 order, little-endian f32.
func BuildCurveData(curves []vectortext.Curve) []byte {
	if len(curves) == 0 {
		return nil
	}
	data := make([]byte, len(curves)*CurveStride)
	off := 0
	for _, c := range curves {
		putF32(data[off:], c.P0.X)
		putF32(data[off+4:], c.P0.Y)
		putF32(data[off+8:], c.P1.X)
		putF32(data[off+12:], c.P1.Y)
		putF32(data[off+16:], c.P2.X)
		putF32(data[off+20:], c.P2.Y)
		off += CurveStride
	}
	return data
}

// BuildGlyphData serializes the glyph table for GPU upload: 8 bytes per
// entry, start then count, little-endian u32.
func BuildGlyphData(entries []vectortext.GlyphEntry) []byte {
	if len(entries) == 0 {
		return nil
	}
	data := make([]byte, len(entries)*GlyphEntryStride)
	off := 0
	for _, e := range entries {
		binary.LittleEndian.PutUint32(data[off:], e.Start)
		binary.LittleEndian.PutUint32(data[off+4:], e.Count)
		off += GlyphEntryStride
	}
	return data
}

// BuildVertexData serializes mesh vertices for GPU upload: 20 bytes per
// vertex matching the pipeline's vertex layout.
func BuildVertexData(vertices []vectortext.Vertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	data := make([]byte, len(vertices)*VertexStride)
	off := 0
	for _, v := range vertices {
		putF32(data[off:], v.X)
		putF32(data[off+4:], v.Y)
		putF32(data[off+8:], v.U)
		putF32(data[off+12:], v.V)
		binary.LittleEndian.PutUint32(data[off+16:], uint32(v.GlyphIndex))
		off += VertexStride
	}
	return data
}

// BuildIndexData serializes mesh indices as little-endian u16.
func BuildIndexData(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// BuildUniformData serializes the uniform block into its 96-byte layout:
// color (16) + projection (64) + aa window (4) + supersample (4) +
// padding (8).
func BuildUniformData(u RenderUniforms) []byte {
	data := make([]byte, UniformSize)
	off := 0
	for _, v := range u.Color {
		putF32(data[off:], v)
		off += 4
	}
	proj := u.Projection
	if proj == ([16]float32{}) {
		proj = identityMatrix()
	}
	for _, v := range proj {
		putF32(data[off:], v)
		off += 4
	}
	aa := u.AAWindow
	if aa <= 0 {
		aa = 1.0
	}
	putF32(data[off:], aa)
	off += 4
	var ss uint32
	if u.Supersample {
		ss = 1
	}
	binary.LittleEndian.PutUint32(data[off:], ss)
	// Trailing 8 bytes stay zero: WGSL pads the struct to 16-byte
	// alignment.
	return data
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}
