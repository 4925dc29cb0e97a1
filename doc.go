// Package vectortext renders text on the GPU directly from glyph outlines.
//
// Instead of rasterizing glyphs into a texture atlas, vectortext stores
// every glyph as a run of quadratic Bézier curves in a single flat buffer
// and evaluates analytic coverage per fragment. The result is text that
// stays sharp at any scale, rotation, or perspective, with anti-aliasing
// computed from the outline geometry itself.
//
// # Overview
//
// The pipeline has three host-side stages and one GPU-side stage:
//
//  1. [FontContext] decomposes glyph outlines into quadratic curves on
//     first use and appends them to a shared curve buffer. Each glyph is
//     identified by a (start, count) range into that buffer.
//  2. [FontContext.LayoutText] emits one screen-space quad per character.
//     Every vertex carries its position, a UV coordinate in the glyph's
//     own font-unit space, and the glyph's index into the glyph table.
//  3. The gpu subpackage uploads the curve buffer, glyph table, and quad
//     mesh to GPU storage buffers and issues a single indexed draw.
//  4. The fragment shader (gpu/shaders/vectortext.wgsl) computes coverage
//     by intersecting a horizontal ray with every curve in the fragment's
//     glyph. [Coverage] is the CPU reference implementation of the same
//     algorithm, used by the software rasterizer and the tests.
//
// # Quick start
//
//	data, _ := os.ReadFile("font.ttf")
//	src, err := vectortext.NewGoTextSource(data)
//	if err != nil { ... }
//	ctx := vectortext.NewFontContext(src)
//	mesh, err := ctx.LayoutText("Hello", 16, 64, 0.04)
//	if err != nil { ... }
//
// The mesh can be handed to gpu.TextRenderer for hardware rendering, or to
// [Rasterize] for a pure-CPU image.
//
// # Coordinate spaces
//
// Curve control points and vertex UVs live in font design units (the
// font's em square, typically 1000 or 2048 units), relative to each
// glyph's origin. Vertex positions live in screen space; the single
// font-unit-to-screen conversion happens inside LayoutText. The
// anti-aliasing window is specified in pixels and converted to font
// units per fragment, so the smoothing band is always one pixel wide
// regardless of scale.
//
// # Logging
//
// vectortext produces no log output by default. Call [SetLogger] to
// receive warnings about undecodable glyphs and GPU diagnostics.
package vectortext
