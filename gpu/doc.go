// Package gpu renders laid-out text meshes on the GPU through wgpu/hal.
//
// The package owns the render pipeline, the byte serialization of the
// host-side buffers (curves, glyph table, vertices, uniforms), and the
// per-frame resource lifecycle. The fragment shader evaluates glyph
// coverage analytically from the quadratic curve buffer; there is no
// atlas and no distance field.
//
// Buffer layouts are fixed byte contracts shared with the WGSL shader:
//
//	curve       24 bytes  (three vec2<f32> control points)
//	glyph entry  8 bytes  (u32 start, u32 count)
//	vertex      20 bytes  (vec2<f32> position, vec2<f32> uv, i32 glyph index)
//	uniforms    96 bytes  (vec4 color, mat4x4 projection, f32 aa window,
//	                       u32 supersample flag, 8 bytes padding)
//
// Changing any of these layouts requires changing vectortext.wgsl in
// lockstep.
package gpu
