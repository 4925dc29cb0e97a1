package vectortext

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNTSource supplies glyph outlines through golang.org/x/image/font/sfnt.
// It is the zero-cgo alternative to GoTextSource; both produce identical
// Outline structures, so a FontContext works the same with either.
//
// sfnt loads glyphs at a pixels-per-em size; requesting ppem equal to the
// font's units-per-em yields coordinates numerically equal to font units.
// sfnt's segment coordinates are Y-down, so they are mirrored back to the
// Y-up convention here, at the boundary, and nowhere else.
type SFNTSource struct {
	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer

	upem        uint16
	reverseFill bool
}

// NewSFNTSource parses TTF or OTF font data and returns an outline source
// for it.
func NewSFNTSource(data []byte) (*SFNTSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("vectortext: parse font: %w", err)
	}

	s := &SFNTSource{
		font:        f,
		reverseFill: sniffCFF(data),
	}

	upem := f.UnitsPerEm()
	if upem == 0 {
		upem = 2048
	}
	s.upem = uint16(upem)

	return s, nil
}

// UnitsPerEm implements Source.
func (s *SFNTSource) UnitsPerEm() uint16 {
	return s.upem
}

// GlyphOutline implements Source. Coordinates are returned in font units,
// Y up, relative to the glyph origin.
func (s *SFNTSource) GlyphOutline(r rune) (Outline, GlyphMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.font.GlyphIndex(&s.buf, r)
	if err != nil {
		return Outline{}, GlyphMetrics{}, fmt.Errorf("vectortext: glyph index: %w", err)
	}
	if idx == 0 {
		return Outline{}, GlyphMetrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	// ppem == upem makes 26.6 coordinates equal to font units * 64.
	ppem := fixed.Int26_6(int32(s.upem) << 6)

	var metrics GlyphMetrics
	if advance, err := s.font.GlyphAdvance(&s.buf, idx, ppem, font.HintingNone); err == nil {
		metrics.Advance = fixedToFloat(advance)
	}

	segments, err := s.font.LoadGlyph(&s.buf, idx, ppem, nil)
	if err != nil {
		// Corrupt or colored glyph: blank, but keep the advance.
		return Outline{ReverseFill: s.reverseFill}, metrics, nil
	}

	var b outlineBuilder
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			b.MoveTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.LineTo(fixedPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.QuadTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.CubeTo(fixedPoint(seg.Args[0]), fixedPoint(seg.Args[1]), fixedPoint(seg.Args[2]))
		}
	}

	outline := b.Outline()
	outline.ReverseFill = s.reverseFill
	fillMetricsFromOutline(&metrics, outline)
	return outline, metrics, nil
}

// fixedPoint converts a 26.6 fixed-point sfnt point to font units,
// mirroring sfnt's Y-down axis back to Y-up.
func fixedPoint(p fixed.Point26_6) Point2 {
	return Point2{
		X: fixedToFloat(p.X),
		Y: -fixedToFloat(p.Y),
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}

// fillMetricsFromOutline derives bounding metrics from the outline's
// control points. Quadratic curves stay inside their control polygon, so
// the polygon's box bounds the glyph; sfnt exposes no direct font-unit
// extents, and a slightly loose box only enlarges the quad, never clips it.
func fillMetricsFromOutline(m *GlyphMetrics, o Outline) {
	first := true
	var minX, minY, maxX, maxY float32
	for _, contour := range o.Contours {
		for _, p := range contour.Points {
			if first {
				minX, maxX = p.Pos.X, p.Pos.X
				minY, maxY = p.Pos.Y, p.Pos.Y
				first = false
				continue
			}
			minX = min(minX, p.Pos.X)
			maxX = max(maxX, p.Pos.X)
			minY = min(minY, p.Pos.Y)
			maxY = max(maxY, p.Pos.Y)
		}
	}
	if first {
		return
	}
	m.BearingX = minX
	m.BearingY = maxY
	m.Width = maxX - minX
	m.Height = maxY - minY
}
