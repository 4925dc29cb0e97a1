package vectortext

import "fmt"

// Synthetic outline sources shared by the package tests. Shapes are
// wound clockwise in Y-up space, the direction the coverage evaluator
// fills.

func onPt(x, y float32) OutlinePoint {
	return OutlinePoint{Pos: Pt(x, y), Tag: TagOnCurve}
}

func quadPt(x, y float32) OutlinePoint {
	return OutlinePoint{Pos: Pt(x, y), Tag: TagQuadOff}
}

func cubicPt(x, y float32) OutlinePoint {
	return OutlinePoint{Pos: Pt(x, y), Tag: TagCubicOff}
}

// squareContour returns a clockwise (Y-up) square with corner (x, y) and
// the given side length.
func squareContour(x, y, side float32) Contour {
	return Contour{Points: []OutlinePoint{
		onPt(x, y),
		onPt(x, y+side),
		onPt(x+side, y+side),
		onPt(x+side, y),
	}}
}

// circleContour approximates a circle with four quadratic arcs, wound
// clockwise in Y-up. The control points sit on the bounding box corners,
// so the shape bulges slightly less than a true circle between the
// cardinal points.
func circleContour(cx, cy, r float32) Contour {
	return Contour{Points: []OutlinePoint{
		onPt(cx, cy+r),
		quadPt(cx+r, cy+r),
		onPt(cx+r, cy),
		quadPt(cx+r, cy-r),
		onPt(cx, cy-r),
		quadPt(cx-r, cy-r),
		onPt(cx-r, cy),
		quadPt(cx-r, cy+r),
	}}
}

type fakeGlyph struct {
	outline Outline
	metrics GlyphMetrics
}

// fakeSource serves glyphs from a fixed table and fails with
// ErrGlyphNotFound for anything else.
type fakeSource struct {
	upem   uint16
	glyphs map[rune]fakeGlyph
}

func (s *fakeSource) UnitsPerEm() uint16 { return s.upem }

func (s *fakeSource) GlyphOutline(r rune) (Outline, GlyphMetrics, error) {
	g, ok := s.glyphs[r]
	if !ok {
		return Outline{}, GlyphMetrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	return g.outline, g.metrics, nil
}

// newTestSource builds a source with three glyphs:
//
//	'H': 1000x1000 square at the origin, advance 1200
//	'I': 400x1000 rectangle, advance 500
//	' ': no outline, advance 500
func newTestSource() *fakeSource {
	return &fakeSource{
		upem: 1000,
		glyphs: map[rune]fakeGlyph{
			'H': {
				outline: Outline{Contours: []Contour{squareContour(0, 0, 1000)}},
				metrics: GlyphMetrics{
					Width: 1000, Height: 1000,
					BearingX: 0, BearingY: 1000,
					Advance: 1200,
				},
			},
			'I': {
				outline: Outline{Contours: []Contour{{Points: []OutlinePoint{
					onPt(0, 0), onPt(0, 1000), onPt(400, 1000), onPt(400, 0),
				}}}},
				metrics: GlyphMetrics{
					Width: 400, Height: 1000,
					BearingX: 0, BearingY: 1000,
					Advance: 500,
				},
			},
			' ': {
				outline: Outline{},
				metrics: GlyphMetrics{Advance: 500},
			},
		},
	}
}

// brokenSource returns outlines that fail decomposition, to exercise the
// fail-to-blank path.
type brokenSource struct{}

func (brokenSource) UnitsPerEm() uint16 { return 1000 }

func (brokenSource) GlyphOutline(rune) (Outline, GlyphMetrics, error) {
	// A lone cubic control is malformed.
	outline := Outline{Contours: []Contour{{Points: []OutlinePoint{
		onPt(0, 0), cubicPt(10, 10), onPt(20, 0),
	}}}}
	return outline, GlyphMetrics{Width: 20, Height: 10, BearingY: 10, Advance: 25}, nil
}
