package vectortext

import (
	"image"
	"testing"
)

func TestRasterizeSquareGlyph(t *testing.T) {
	fc := NewFontContext(newTestSource())

	// 80px glyph with the left edge off the pixel grid so the edge column
	// actually antialiases.
	mesh, err := fc.LayoutText("H", 10.4, 90, 0.08)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}

	img := Rasterize(fc, mesh, 100, 100, DefaultCoverageParams())
	if img.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds = %v, want 100x100", img.Bounds())
	}

	at := func(x, y int) uint8 { return img.Pix[img.PixOffset(x, y)] }

	if got := at(50, 50); got != 255 {
		t.Errorf("alpha at glyph center = %d, want 255", got)
	}
	for _, p := range [][2]int{{2, 50}, {97, 50}, {50, 2}, {50, 97}} {
		if got := at(p[0], p[1]); got != 0 {
			t.Errorf("alpha outside glyph at %v = %d, want 0", p, got)
		}
	}

	// The pixel column straddling the left edge is partially covered.
	if got := at(10, 50); got == 0 || got == 255 {
		t.Errorf("alpha on edge column = %d, want partial coverage", got)
	}
}

func TestRasterizeSupersample(t *testing.T) {
	fc := NewFontContext(newTestSource())

	mesh, err := fc.LayoutText("H", 10, 90, 0.08)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}

	params := DefaultCoverageParams()
	params.Supersample = true
	img := Rasterize(fc, mesh, 100, 100, params)

	if got := img.Pix[img.PixOffset(50, 50)]; got != 255 {
		t.Errorf("supersampled alpha at center = %d, want 255", got)
	}
}

func TestRasterizeSkipsDebugQuads(t *testing.T) {
	fc := NewFontContext(newTestSource())
	if _, err := fc.GetOrBuildGlyph('H'); err != nil {
		t.Fatalf("GetOrBuildGlyph() error = %v", err)
	}

	// A debug quad covering the whole image must leave it blank.
	mesh := Mesh{}
	quad := Rect{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	if err := appendQuad(&mesh, quad, 0, 1000, 1000, 0, -1, GlyphIndexCharBox); err != nil {
		t.Fatalf("appendQuad() error = %v", err)
	}

	img := Rasterize(fc, mesh, 100, 100, DefaultCoverageParams())
	for i, a := range img.Pix {
		if a != 0 {
			t.Fatalf("debug quad rasterized: pixel %d = %d", i, a)
		}
	}
}

func TestRasterizeClipsToImage(t *testing.T) {
	fc := NewFontContext(newTestSource())

	// Glyph mostly off the left and top of a small target.
	mesh, err := fc.LayoutText("H", -40, 40, 0.08)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}

	img := Rasterize(fc, mesh, 32, 32, DefaultCoverageParams())
	if got := img.Pix[img.PixOffset(10, 20)]; got != 255 {
		t.Errorf("alpha inside visible part = %d, want 255", got)
	}
}

func TestRasterizeZeroSize(t *testing.T) {
	fc := NewFontContext(newTestSource())
	mesh, err := fc.LayoutText("H", 0, 10, 0.01)
	if err != nil {
		t.Fatalf("LayoutText() error = %v", err)
	}

	for _, dims := range [][2]int{{0, 10}, {10, 0}, {0, 0}} {
		img := Rasterize(fc, mesh, dims[0], dims[1], DefaultCoverageParams())
		if len(img.Pix) != 0 {
			t.Errorf("Rasterize(%dx%d) produced %d pixels, want 0", dims[0], dims[1], len(img.Pix))
		}
	}
}

func TestRasterizeEmptyMesh(t *testing.T) {
	fc := NewFontContext(newTestSource())
	img := Rasterize(fc, Mesh{}, 16, 16, DefaultCoverageParams())
	for i, a := range img.Pix {
		if a != 0 {
			t.Fatalf("empty mesh rasterized: pixel %d = %d", i, a)
		}
	}
}
