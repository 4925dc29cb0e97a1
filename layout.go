package vectortext

import "errors"

// Sentinel glyph indices for debug-visualization quads. Negative values
// never reference glyph data; the coverage evaluator (CPU and GPU) treats
// them, like any out-of-range index, as fully transparent.
const (
	// GlyphIndexCharBox marks a per-character bounding box quad.
	GlyphIndexCharBox int32 = -1

	// GlyphIndexTextBox marks the text-block bounding box quad.
	GlyphIndexTextBox int32 = -2
)

// ErrMeshTooLarge is returned when a layout would exceed the uint16 index
// range (16384 quads).
var ErrMeshTooLarge = errors.New("vectortext: text mesh exceeds index range")

// maxQuads is the quad capacity of a uint16-indexed mesh: 4 vertices per
// quad, highest addressable vertex 65535.
const maxQuads = 1 << 14

// Vertex is one corner of a character quad, laid out to match the GPU
// vertex buffer byte for byte (see gpu.VertexStride).
//
// X, Y are screen-space coordinates, after pen advance and the single
// Y-axis flip, before projection. U, V are the fragment's position in the
// glyph's local font-unit space — the same space the glyph's curves live
// in, independent of screen scale or pen position. GlyphIndex addresses
// the glyph table, or holds a negative debug sentinel.
type Vertex struct {
	X, Y       float32
	U, V       float32
	GlyphIndex int32
}

// Mesh is the vertex and index data for one laid-out string: four vertices
// and six indices per character quad, ready for GPU upload. Meshes are
// immutable once built; a text or position change produces a new Mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16
}

// QuadCount returns the number of quads in the mesh.
func (m *Mesh) QuadCount() int {
	return len(m.Indices) / 6
}

// Rect is an axis-aligned rectangle in screen units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float32
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.MaxY - r.MinY }

// LayoutOptions controls quad generation.
type LayoutOptions struct {
	// YDown generates quads for a Y-down target surface (the usual GPU
	// convention) by flipping the font's Y-up metrics once, at quad
	// generation time. Flipping anywhere else — or twice — compounds
	// sign errors between the vertex and fragment stages.
	YDown bool

	// DebugBoxes adds outline-box quads: one per character
	// (GlyphIndexCharBox) and one around the whole text block
	// (GlyphIndexTextBox). Debug quads never reference glyph data.
	DebugBoxes bool
}

// DefaultLayoutOptions returns the default layout options: Y-down target,
// no debug geometry.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		YDown:      true,
		DebugBoxes: false,
	}
}

// LayoutText lays out a single line of text and returns its quad mesh.
//
// originX, originY position the baseline of the first character in screen
// units; scale converts font units to screen units (for a glyph height of
// 32 screen units with a 2048-unit em square, scale is 32.0/2048). Glyphs
// are built on first use through the context's Source.
//
// The mesh is a pure function of the inputs and the glyph table: runes
// that fail to resolve render blank (the pen still advances when metrics
// are available) and never abort the rest of the string.
func (fc *FontContext) LayoutText(s string, originX, originY, scale float32) (Mesh, error) {
	return fc.LayoutTextOptions(s, originX, originY, scale, DefaultLayoutOptions())
}

// LayoutTextOptions is LayoutText with explicit options.
func (fc *FontContext) LayoutTextOptions(s string, originX, originY, scale float32, opts LayoutOptions) (Mesh, error) {
	runes := []rune(s)
	mesh := Mesh{
		Vertices: make([]Vertex, 0, len(runes)*4),
		Indices:  make([]uint16, 0, len(runes)*6),
	}

	flip := float32(1)
	if opts.YDown {
		flip = -1
	}

	penX := originX
	block := Rect{MinX: originX, MinY: originY, MaxX: originX, MaxY: originY}
	haveBlock := false

	for _, r := range runes {
		slot, entry, m, err := fc.lookupOrBuild(r)
		if err != nil {
			Logger().Warn("rune not in font, skipping", "rune", string(r))
			continue
		}

		if entry.Count > 0 && m.Width > 0 && m.Height > 0 {
			// Quad corners in glyph-local font units (Y-up).
			left := m.BearingX
			right := m.BearingX + m.Width
			top := m.BearingY
			bottom := m.BearingY - m.Height

			quad := Rect{
				MinX: penX + left*scale,
				MaxX: penX + right*scale,
				MinY: originY + flip*top*scale,
				MaxY: originY + flip*bottom*scale,
			}
			if quad.MinY > quad.MaxY {
				quad.MinY, quad.MaxY = quad.MaxY, quad.MinY
			}

			// The UV corners stay in font units so the fragment stage
			// evaluates curves in their native space. yBottomUV pairs with
			// the screen-space bottom edge after the flip.
			if err := appendQuad(&mesh, quad, left, right, top, bottom, flip, slot); err != nil {
				return Mesh{}, err
			}

			if opts.DebugBoxes {
				if err := appendQuad(&mesh, quad, 0, 0, 0, 0, flip, GlyphIndexCharBox); err != nil {
					return Mesh{}, err
				}
			}

			if !haveBlock {
				block = quad
				haveBlock = true
			} else {
				block = union(block, quad)
			}
		}

		penX += m.Advance * scale
	}

	if opts.DebugBoxes && haveBlock {
		if err := appendQuad(&mesh, block, 0, 0, 0, 0, flip, GlyphIndexTextBox); err != nil {
			return Mesh{}, err
		}
	}

	return mesh, nil
}

// Measure returns the advance width and the tight bounding box of a
// string at the given scale, without generating any quads. The box is in
// pen-relative Y-up units: origin at the baseline start.
func (fc *FontContext) Measure(s string, scale float32) (advance float32, bounds Rect) {
	have := false
	for _, r := range s {
		_, entry, m, err := fc.lookupOrBuild(r)
		if err != nil {
			continue
		}
		if entry.Count > 0 && m.Width > 0 && m.Height > 0 {
			q := Rect{
				MinX: advance + m.BearingX*scale,
				MaxX: advance + (m.BearingX+m.Width)*scale,
				MinY: (m.BearingY - m.Height) * scale,
				MaxY: m.BearingY * scale,
			}
			if !have {
				bounds = q
				have = true
			} else {
				bounds = union(bounds, q)
			}
		}
		advance += m.Advance * scale
	}
	return advance, bounds
}

// appendQuad adds one screen-space quad to the mesh: vertices in
// bottom-left, bottom-right, top-right, top-left order with 0,1,2 2,3,0
// triangulation, consistently counter-clockwise for the pipeline's
// front-face convention.
func appendQuad(mesh *Mesh, quad Rect, uLeft, uRight, vTop, vBottom, flip float32, glyphIndex int32) error {
	if len(mesh.Vertices)/4 >= maxQuads {
		return ErrMeshTooLarge
	}

	// Screen MaxY is the visual bottom on a Y-down surface (flip < 0) and
	// the visual top otherwise; pair the UVs accordingly.
	yBottom, yTop := quad.MaxY, quad.MinY
	if flip > 0 {
		yBottom, yTop = quad.MinY, quad.MaxY
	}

	base := uint16(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices,
		Vertex{X: quad.MinX, Y: yBottom, U: uLeft, V: vBottom, GlyphIndex: glyphIndex},
		Vertex{X: quad.MaxX, Y: yBottom, U: uRight, V: vBottom, GlyphIndex: glyphIndex},
		Vertex{X: quad.MaxX, Y: yTop, U: uRight, V: vTop, GlyphIndex: glyphIndex},
		Vertex{X: quad.MinX, Y: yTop, U: uLeft, V: vTop, GlyphIndex: glyphIndex},
	)
	mesh.Indices = append(mesh.Indices,
		base+0, base+1, base+2,
		base+2, base+3, base+0,
	)
	return nil
}

func union(a, b Rect) Rect {
	return Rect{
		MinX: min(a.MinX, b.MinX),
		MinY: min(a.MinY, b.MinY),
		MaxX: max(a.MaxX, b.MaxX),
		MaxY: max(a.MaxY, b.MaxY),
	}
}
