package vectortext

// PointTag classifies an outline point the way TrueType/FreeType tag their
// contour points.
type PointTag uint8

const (
	// TagOnCurve marks a point the outline passes through.
	TagOnCurve PointTag = iota

	// TagQuadOff marks a quadratic Bézier control point.
	TagQuadOff

	// TagCubicOff marks a cubic Bézier control point. Cubic controls
	// always come in pairs between two on-curve points.
	TagCubicOff
)

// String returns the string representation of the tag.
func (t PointTag) String() string {
	switch t {
	case TagOnCurve:
		return "OnCurve"
	case TagQuadOff:
		return "QuadOff"
	case TagCubicOff:
		return "CubicOff"
	default:
		return "Unknown"
	}
}

// OutlinePoint is a single tagged point of a glyph contour, in font units.
type OutlinePoint struct {
	Pos Point2
	Tag PointTag
}

// Contour is one closed loop of a glyph outline. The last point connects
// back to the first; fonts do not store the closing segment explicitly.
type Contour struct {
	Points []OutlinePoint
}

// Outline is a glyph's raw outline as delivered by a font backend: a set
// of closed contours plus a winding normalization flag.
type Outline struct {
	Contours []Contour

	// ReverseFill indicates the font encodes fill direction opposite to
	// the convention the coverage evaluator expects (PostScript/CFF
	// outlines wind counter-clockwise where TrueType winds clockwise).
	// The decomposer reverses every contour when this is set so all
	// glyphs share one consistent winding.
	ReverseFill bool
}

// IsEmpty reports whether the outline has no contours.
func (o *Outline) IsEmpty() bool {
	return len(o.Contours) == 0
}

// outlineBuilder assembles tagged contours from MoveTo/LineTo/QuadTo/CubeTo
// segment streams. Both font backends produce segment paths; the builder
// converts them to the tagged-point form the decomposer consumes.
type outlineBuilder struct {
	outline Outline
	current []OutlinePoint
}

// MoveTo closes the current contour, if any, and starts a new one at p.
func (b *outlineBuilder) MoveTo(p Point2) {
	b.closeContour()
	b.current = append(b.current, OutlinePoint{Pos: p, Tag: TagOnCurve})
}

// LineTo appends a straight segment to p.
func (b *outlineBuilder) LineTo(p Point2) {
	b.current = append(b.current, OutlinePoint{Pos: p, Tag: TagOnCurve})
}

// QuadTo appends a quadratic segment with control ctrl ending at p.
func (b *outlineBuilder) QuadTo(ctrl, p Point2) {
	b.current = append(b.current,
		OutlinePoint{Pos: ctrl, Tag: TagQuadOff},
		OutlinePoint{Pos: p, Tag: TagOnCurve},
	)
}

// CubeTo appends a cubic segment with controls c1, c2 ending at p.
func (b *outlineBuilder) CubeTo(c1, c2, p Point2) {
	b.current = append(b.current,
		OutlinePoint{Pos: c1, Tag: TagCubicOff},
		OutlinePoint{Pos: c2, Tag: TagCubicOff},
		OutlinePoint{Pos: p, Tag: TagOnCurve},
	)
}

// closeContour finishes the contour under construction.
func (b *outlineBuilder) closeContour() {
	if len(b.current) > 0 {
		b.outline.Contours = append(b.outline.Contours, Contour{Points: b.current})
		b.current = nil
	}
}

// Outline closes any open contour and returns the assembled outline.
func (b *outlineBuilder) Outline() Outline {
	b.closeContour()
	return b.outline
}
