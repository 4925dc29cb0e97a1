package vectortext

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// GoTextSource supplies glyph outlines through go-text/typesetting. It
// handles both TrueType (glyf) and CFF-flavored OpenType fonts; CFF
// outlines are flagged for winding reversal so every glyph reaches the
// decomposer with the clockwise-outer convention the coverage evaluator
// fills.
//
// GoTextSource is safe for concurrent use: font.Face is not, so all
// outline queries are serialized behind a mutex. The parsed *font.Font
// itself is read-only.
type GoTextSource struct {
	mu   sync.Mutex
	face *font.Face

	upem        uint16
	reverseFill bool
}

// NewGoTextSource parses TTF or OTF font data and returns an outline
// source for it.
func NewGoTextSource(data []byte) (*GoTextSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("vectortext: parse font: %w", err)
	}

	return &GoTextSource{
		face:        face,
		upem:        face.Font.Upem(),
		reverseFill: sniffCFF(data),
	}, nil
}

// UnitsPerEm implements Source.
func (s *GoTextSource) UnitsPerEm() uint16 {
	return s.upem
}

// GlyphOutline implements Source. Coordinates are returned in font units,
// Y up, relative to the glyph origin.
func (s *GoTextSource) GlyphOutline(r rune) (Outline, GlyphMetrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, ok := s.face.Font.NominalGlyph(r)
	if !ok {
		return Outline{}, GlyphMetrics{}, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}

	metrics := GlyphMetrics{
		Advance: s.face.HorizontalAdvance(gid),
	}
	if e, ok := s.face.GlyphExtents(gid); ok {
		metrics.BearingX = e.XBearing
		metrics.BearingY = e.YBearing
		metrics.Width = e.Width
		// go-text reports height in the HarfBuzz convention: negative,
		// measured top to bottom.
		metrics.Height = abs32(e.Height)
	}

	data := s.face.GlyphData(gid)
	glyphOutline, ok := data.(font.GlyphOutline)
	if !ok {
		// Bitmap or SVG glyph, or no glyph data at all (space). Render
		// blank; the metrics still drive the pen advance.
		return Outline{ReverseFill: s.reverseFill}, metrics, nil
	}

	var b outlineBuilder
	for _, seg := range glyphOutline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			b.MoveTo(segPoint(seg.Args[0]))
		case ot.SegmentOpLineTo:
			b.LineTo(segPoint(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			b.QuadTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]))
		case ot.SegmentOpCubeTo:
			b.CubeTo(segPoint(seg.Args[0]), segPoint(seg.Args[1]), segPoint(seg.Args[2]))
		}
	}

	outline := b.Outline()
	outline.ReverseFill = s.reverseFill
	return outline, metrics, nil
}

// segPoint converts a go-text segment point (already font units) to Point2.
func segPoint(p font.SegmentPoint) Point2 {
	return Point2{X: p.X, Y: p.Y}
}

// sniffCFF reports whether the font data carries CFF outlines. OpenType
// files with PostScript outlines start with the 'OTTO' tag; their
// contours wind opposite to TrueType's and need reversal.
func sniffCFF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "OTTO"
}
