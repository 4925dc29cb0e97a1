package vectortext

import (
	"errors"
	"strings"
	"testing"
)

func TestLayoutTextTwoGlyphs(t *testing.T) {
	fc := NewFontContext(newTestSource())

	// scale 32/1000: 'H' is 32px wide with advance 38.4, 'I' is 12.8px.
	const scale = 0.032
	mesh, err := fc.LayoutText("HI", 100, 200, scale)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}

	if got := mesh.QuadCount(); got != 2 {
		t.Fatalf("QuadCount() = %d, want 2", got)
	}
	if len(mesh.Vertices) != 8 {
		t.Fatalf("vertices = %d, want 8", len(mesh.Vertices))
	}
	if len(mesh.Indices) != 12 {
		t.Fatalf("indices = %d, want 12", len(mesh.Indices))
	}

	// First quad: 'H' at the pen origin, slot 0.
	h := mesh.Vertices[0:4]
	if h[0].X != 100 {
		t.Errorf("H left = %v, want 100", h[0].X)
	}
	if h[1].X != 100+1000*scale {
		t.Errorf("H right = %v, want %v", h[1].X, 100+1000*scale)
	}
	for i, v := range h {
		if v.GlyphIndex != 0 {
			t.Errorf("H vertex %d glyph index = %d, want 0", i, v.GlyphIndex)
		}
	}

	// Second quad: 'I' advanced by H's advance, slot 1.
	iq := mesh.Vertices[4:8]
	wantX := float32(100) + 1200*scale
	if iq[0].X != wantX {
		t.Errorf("I left = %v, want %v", iq[0].X, wantX)
	}
	for i, v := range iq {
		if v.GlyphIndex != 1 {
			t.Errorf("I vertex %d glyph index = %d, want 1", i, v.GlyphIndex)
		}
	}

	// Y-down: glyph top (bearing 1000) lands above the baseline on
	// screen, at a smaller y value.
	wantTop := float32(200) - 1000*scale
	if h[3].Y != wantTop {
		t.Errorf("H top = %v, want %v", h[3].Y, wantTop)
	}
	if h[0].Y != 200 {
		t.Errorf("H bottom = %v, want 200 (baseline)", h[0].Y)
	}

	// UVs stay in font units regardless of scale.
	if h[0].U != 0 || h[0].V != 0 {
		t.Errorf("H bottom-left UV = (%v, %v), want (0, 0)", h[0].U, h[0].V)
	}
	if h[2].U != 1000 || h[2].V != 1000 {
		t.Errorf("H top-right UV = (%v, %v), want (1000, 1000)", h[2].U, h[2].V)
	}

	// Index pattern 0,1,2 2,3,0 per quad, offset by 4.
	want := []uint16{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, idx := range mesh.Indices {
		if idx != want[i] {
			t.Fatalf("indices = %v, want %v", mesh.Indices, want)
		}
	}
}

func TestLayoutTextYUp(t *testing.T) {
	fc := NewFontContext(newTestSource())

	opts := DefaultLayoutOptions()
	opts.YDown = false
	mesh, err := fc.LayoutTextOptions("H", 0, 0, 1, opts)
	if err != nil {
		t.Fatalf("LayoutTextOptions() error = %v", err)
	}
	if mesh.QuadCount() != 1 {
		t.Fatalf("QuadCount() = %d, want 1", mesh.QuadCount())
	}

	// Y-up: the glyph extends to larger y above the baseline, and the
	// bottom-left vertex pairs with UV (0, 0).
	bl := mesh.Vertices[0]
	tl := mesh.Vertices[3]
	if bl.Y != 0 || tl.Y != 1000 {
		t.Errorf("bottom/top = %v/%v, want 0/1000", bl.Y, tl.Y)
	}
	if bl.V != 0 || tl.V != 1000 {
		t.Errorf("bottom/top V = %v/%v, want 0/1000", bl.V, tl.V)
	}
}

func TestLayoutTextSpaceAdvancesWithoutQuad(t *testing.T) {
	fc := NewFontContext(newTestSource())

	mesh, err := fc.LayoutText("H I", 0, 0, 1)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}
	if got := mesh.QuadCount(); got != 2 {
		t.Fatalf("QuadCount() = %d, want 2 (space makes no quad)", got)
	}

	// 'I' starts after H's advance plus the space's advance.
	iLeft := mesh.Vertices[4].X
	if want := float32(1200 + 500); iLeft != want {
		t.Errorf("I left = %v, want %v", iLeft, want)
	}
}

func TestLayoutTextSkipsUnknownRunes(t *testing.T) {
	fc := NewFontContext(newTestSource())

	mesh, err := fc.LayoutText("HZI", 0, 0, 1)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}
	if got := mesh.QuadCount(); got != 2 {
		t.Errorf("QuadCount() = %d, want 2 (unknown rune skipped)", got)
	}
}

func TestLayoutTextDebugBoxes(t *testing.T) {
	fc := NewFontContext(newTestSource())

	opts := DefaultLayoutOptions()
	opts.DebugBoxes = true
	mesh, err := fc.LayoutTextOptions("HI", 0, 100, 0.1, opts)
	if err != nil {
		t.Fatalf("LayoutTextOptions() error = %v", err)
	}

	// Per glyph: one glyph quad + one char box; plus one text box.
	if got := mesh.QuadCount(); got != 5 {
		t.Fatalf("QuadCount() = %d, want 5", got)
	}

	boxes := 0
	textBoxes := 0
	for _, v := range mesh.Vertices {
		switch v.GlyphIndex {
		case GlyphIndexCharBox:
			boxes++
		case GlyphIndexTextBox:
			textBoxes++
		}
	}
	if boxes != 8 {
		t.Errorf("char box vertices = %d, want 8", boxes)
	}
	if textBoxes != 4 {
		t.Errorf("text box vertices = %d, want 4", textBoxes)
	}

	// The text box spans both glyphs.
	tb := mesh.Vertices[len(mesh.Vertices)-4:]
	if tb[0].X != 0 {
		t.Errorf("text box left = %v, want 0", tb[0].X)
	}
	if want := float32(1200*0.1 + 400*0.1); tb[1].X != want {
		t.Errorf("text box right = %v, want %v", tb[1].X, want)
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	fc := NewFontContext(newTestSource())

	mesh, err := fc.LayoutText("", 0, 0, 1)
	if err != nil {
		t.Fatalf("LayoutText(\"\") error = %v", err)
	}
	if mesh.QuadCount() != 0 {
		t.Errorf("QuadCount() = %d, want 0", mesh.QuadCount())
	}
}

func TestLayoutTextMeshTooLarge(t *testing.T) {
	fc := NewFontContext(newTestSource())

	s := strings.Repeat("H", maxQuads+1)
	if _, err := fc.LayoutText(s, 0, 0, 0.01); !errors.Is(err, ErrMeshTooLarge) {
		t.Errorf("LayoutText(%d runes) error = %v, want %v", maxQuads+1, err, ErrMeshTooLarge)
	}

	// Exactly at the limit still fits.
	s = strings.Repeat("H", maxQuads)
	if _, err := fc.LayoutText(s, 0, 0, 0.01); err != nil {
		t.Errorf("LayoutText(%d runes) error = %v, want nil", maxQuads, err)
	}
}

func TestMeasure(t *testing.T) {
	fc := NewFontContext(newTestSource())

	advance, bounds := fc.Measure("HI", 0.5)
	if want := float32(1200+500) * 0.5; advance != want {
		t.Errorf("advance = %v, want %v", advance, want)
	}
	// Bounds are pen-relative and Y-up: baseline at 0, em top at 500.
	if bounds.MinX != 0 || bounds.MinY != 0 {
		t.Errorf("bounds min = (%v, %v), want (0, 0)", bounds.MinX, bounds.MinY)
	}
	if want := float32(1200+400) * 0.5; bounds.MaxX != want {
		t.Errorf("bounds MaxX = %v, want %v", bounds.MaxX, want)
	}
	if bounds.MaxY != 500 {
		t.Errorf("bounds MaxY = %v, want 500", bounds.MaxY)
	}

	// Trailing space adds advance but no geometry.
	withSpace, bounds2 := fc.Measure("HI ", 0.5)
	if want := advance + 250; withSpace != want {
		t.Errorf("advance with space = %v, want %v", withSpace, want)
	}
	if bounds2 != bounds {
		t.Errorf("bounds with space = %+v, want %+v", bounds2, bounds)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{MinX: 10, MinY: 20, MaxX: 110, MaxY: 50}
	if r.Width() != 100 {
		t.Errorf("Width() = %v, want 100", r.Width())
	}
	if r.Height() != 30 {
		t.Errorf("Height() = %v, want 30", r.Height())
	}
}
